package crud

// MessageKind tells a success banner from an error banner
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageSuccess
	MessageError
)

// Message is the single transient status line of a view
type Message struct {
	Kind MessageKind
	Text string
}

// IsZero reports whether there is nothing to show
func (m Message) IsZero() bool {
	return m.Kind == MessageNone
}

func successMessage(text string) Message {
	return Message{Kind: MessageSuccess, Text: text}
}

func errorMessage(text string) Message {
	return Message{Kind: MessageError, Text: text}
}

// State is a point-in-time copy of a Manager's view state
type State[R, D any] struct {
	// Loading is true only until the first load finishes
	Loading bool
	Records []R

	FormVisible bool
	// Editing is the id of the record being edited, "" when creating
	Editing string
	Draft   D

	Message Message
}

// IsEditing reports whether the form targets an existing record
func (s State[R, D]) IsEditing() bool {
	return s.Editing != ""
}

func (s State[R, D]) clone() State[R, D] {
	out := s
	if s.Records != nil {
		out.Records = make([]R, len(s.Records))
		copy(out.Records, s.Records)
	}
	return out
}
