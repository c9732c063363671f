// Package crud implements the list/create/edit/delete workflow shared by every
// record management screen: a record list, one form draft, an editing
// reference and a single transient status message.
package crud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrDeclined is returned by Remove when the user did not confirm the delete
var ErrDeclined = errors.New("delete not confirmed")

// Service is the persistence collaborator. It owns no view state.
type Service[R, D any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, draft D) (R, error)
	Update(ctx context.Context, id string, draft D) (R, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Reasoner is implemented by errors that carry a message meant for the user
type Reasoner interface {
	Reason() string
}

// Messages are the user-facing texts the manager shows
type Messages struct {
	LoadFailed    string
	SaveFailed    string
	DeleteFailed  string
	Created       string
	Updated       string
	Deleted       string
	ConfirmDelete string
}

// Options bind the manager to one record type
type Options[R, D any] struct {
	// ID extracts the server-assigned identifier of a record
	ID func(R) string
	// ToDraft copies the editable fields of a record
	ToDraft func(R) D
	// Validate checks a draft before it is sent. Optional.
	Validate func(D) error
	// Describe turns an error into a user-facing reason, or "" if it has none.
	// Defaults to Reason.
	Describe func(error) string

	Messages Messages
	Logger   *slog.Logger
}

// Manager holds the state of one record management view.
// It is safe for concurrent use; overlapping operations resolve last-writer-wins.
type Manager[R, D any] struct {
	svc     Service[R, D]
	confirm Confirmer
	opts    Options[R, D]
	logger  *slog.Logger

	mu    sync.Mutex
	state State[R, D]
}

// New creates a manager in the loading state. A nil confirmer declines every delete.
func New[R, D any](svc Service[R, D], confirm Confirmer, opts Options[R, D]) *Manager[R, D] {
	if opts.Describe == nil {
		opts.Describe = Reason
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager[R, D]{
		svc:     svc,
		confirm: confirm,
		opts:    opts,
		logger:  logger,
		state:   State[R, D]{Loading: true},
	}
}

// Snapshot returns a copy of the current state
func (m *Manager[R, D]) Snapshot() State[R, D] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Load replaces the record list with the service's current list.
// The loading flag is cleared whatever the outcome.
func (m *Manager[R, D]) Load(ctx context.Context) error {
	records, err := m.svc.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Loading = false
	if err != nil {
		m.logger.Warn("failed to load records", slog.Any("error", err))
		m.state.Message = errorMessage(m.opts.Messages.LoadFailed)
		return fmt.Errorf("failed to list records: %w", err)
	}
	m.state.Records = records
	return nil
}

// Reload clears the status message and loads the list again
func (m *Manager[R, D]) Reload(ctx context.Context) error {
	m.setMessage(Message{})
	return m.Load(ctx)
}

// BeginCreate opens an empty form for a new record
func (m *Manager[R, D]) BeginCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var empty D
	m.state.Draft = empty
	m.state.Editing = ""
	m.state.FormVisible = true
}

// BeginEdit opens the form on a copy of record. A record without an id
// cannot be updated, so the form stays closed and false is returned.
func (m *Manager[R, D]) BeginEdit(record R) bool {
	id := m.opts.ID(record)
	if id == "" {
		m.logger.Warn("refusing to edit record without id")
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Draft = m.opts.ToDraft(record)
	m.state.Editing = id
	m.state.FormVisible = true
	return true
}

// Cancel discards the draft and hides the form
func (m *Manager[R, D]) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetForm()
}

// Submit creates a record, or updates the one being edited.
// On failure the form stays open holding draft.
func (m *Manager[R, D]) Submit(ctx context.Context, draft D) error {
	m.mu.Lock()
	m.state.Message = Message{}
	m.state.Draft = draft
	editing := m.state.Editing
	m.mu.Unlock()

	if m.opts.Validate != nil {
		if err := m.opts.Validate(draft); err != nil {
			m.setMessage(errorMessage(m.reason(err, m.opts.Messages.SaveFailed)))
			return err
		}
	}

	var (
		err     error
		success string
	)
	if editing != "" {
		_, err = m.svc.Update(ctx, editing, draft)
		success = m.opts.Messages.Updated
	} else {
		_, err = m.svc.Create(ctx, draft)
		success = m.opts.Messages.Created
	}
	if err != nil {
		m.logger.Warn("failed to save record",
			slog.String("editing", editing),
			slog.Any("error", err),
		)
		m.setMessage(errorMessage(m.reason(err, m.opts.Messages.SaveFailed)))
		return fmt.Errorf("failed to save record: %w", err)
	}

	m.mu.Lock()
	m.state.Message = successMessage(success)
	m.resetForm()
	m.mu.Unlock()

	return m.Load(ctx)
}

// Remove deletes the record with the given id once the user confirms.
// A declined confirmation returns ErrDeclined and changes nothing.
func (m *Manager[R, D]) Remove(ctx context.Context, id string) error {
	if m.confirm == nil {
		return ErrDeclined
	}
	ok, err := m.confirm.Confirm(ctx, m.opts.Messages.ConfirmDelete)
	if err != nil {
		return fmt.Errorf("failed to confirm delete: %w", err)
	}
	if !ok {
		return ErrDeclined
	}

	m.setMessage(Message{})

	if err := m.svc.Delete(ctx, id); err != nil {
		m.logger.Warn("failed to delete record", slog.String("id", id), slog.Any("error", err))
		m.setMessage(errorMessage(m.opts.Messages.DeleteFailed))
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}

	m.setMessage(successMessage(m.opts.Messages.Deleted))
	return m.Load(ctx)
}

func (m *Manager[R, D]) setMessage(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Message = msg
}

// resetForm must be called with mu held
func (m *Manager[R, D]) resetForm() {
	var empty D
	m.state.Draft = empty
	m.state.Editing = ""
	m.state.FormVisible = false
}

func (m *Manager[R, D]) reason(err error, fallback string) string {
	if r := m.opts.Describe(err); r != "" {
		return r
	}
	return fallback
}

// Reason returns the user-facing reason carried by err, or "" if there is none
func Reason(err error) string {
	var r Reasoner
	if errors.As(err, &r) {
		return r.Reason()
	}
	return ""
}
