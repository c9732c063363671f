package crud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type record struct {
	ID      string
	Name    string
	Address string
}

type draft struct {
	Name    string
	Address string
}

type reasonErr struct{ msg string }

func (e *reasonErr) Error() string  { return "validation: " + e.msg }
func (e *reasonErr) Reason() string { return e.msg }

// fakeService records every call and returns canned results
type fakeService struct {
	records []record

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls   int
	createCalls []draft
	updateCalls []string
	deleteCalls []string
}

func (f *fakeService) List(ctx context.Context) ([]record, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeService) Create(ctx context.Context, d draft) (record, error) {
	f.createCalls = append(f.createCalls, d)
	if f.createErr != nil {
		return record{}, f.createErr
	}
	r := record{ID: "new", Name: d.Name, Address: d.Address}
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeService) Update(ctx context.Context, id string, d draft) (record, error) {
	f.updateCalls = append(f.updateCalls, id)
	if f.updateErr != nil {
		return record{}, f.updateErr
	}
	return record{ID: id, Name: d.Name}, nil
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

type fakeConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (f *fakeConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

var testMessages = Messages{
	LoadFailed:    "load failed",
	SaveFailed:    "save failed",
	DeleteFailed:  "delete failed",
	Created:       "created",
	Updated:       "updated",
	Deleted:       "deleted",
	ConfirmDelete: "really delete?",
}

func newTestManager(svc *fakeService, c Confirmer) *Manager[record, draft] {
	return New[record, draft](svc, c, Options[record, draft]{
		ID:       func(r record) string { return r.ID },
		ToDraft:  func(r record) draft { return draft{Name: r.Name, Address: r.Address} },
		Messages: testMessages,
	})
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("success replaces records and clears loading", func(t *testing.T) {
		svc := &fakeService{records: []record{{ID: "1", Name: "Ana"}}}
		m := newTestManager(svc, nil)
		require.True(t, m.Snapshot().Loading)

		require.NoError(t, m.Load(ctx))

		s := m.Snapshot()
		require.False(t, s.Loading)
		require.Equal(t, []record{{ID: "1", Name: "Ana"}}, s.Records)
		require.True(t, s.Message.IsZero())
	})

	t.Run("failure sets error and clears loading", func(t *testing.T) {
		svc := &fakeService{listErr: errors.New("boom")}
		m := newTestManager(svc, nil)

		require.Error(t, m.Load(ctx))

		s := m.Snapshot()
		require.False(t, s.Loading)
		require.Empty(t, s.Records)
		require.Equal(t, Message{Kind: MessageError, Text: "load failed"}, s.Message)
	})
}

func TestBeginCreateAndEdit(t *testing.T) {
	m := newTestManager(&fakeService{}, nil)

	m.BeginEdit(record{ID: "9", Name: "Ana"})
	s := m.Snapshot()
	require.True(t, s.FormVisible)
	require.True(t, s.IsEditing())
	require.Equal(t, "9", s.Editing)
	require.Equal(t, draft{Name: "Ana", Address: ""}, s.Draft)

	m.BeginCreate()
	s = m.Snapshot()
	require.True(t, s.FormVisible)
	require.False(t, s.IsEditing())
	require.Equal(t, draft{}, s.Draft)

	m.Cancel()
	s = m.Snapshot()
	require.False(t, s.FormVisible)
	require.Equal(t, draft{}, s.Draft)
}

func TestBeginEditRefusesRecordWithoutID(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	m := newTestManager(svc, nil)

	require.False(t, m.BeginEdit(record{Name: "Ana"}))
	s := m.Snapshot()
	require.False(t, s.FormVisible)
	require.False(t, s.IsEditing())

	// A record with an id still edits in place
	require.True(t, m.BeginEdit(record{ID: "9", Name: "Ana"}))
	require.NoError(t, m.Submit(ctx, draft{Name: "Ana"}))
	require.Empty(t, svc.createCalls)
	require.Equal(t, []string{"9"}, svc.updateCalls)
}

func TestSubmitCreate(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{}
	m := newTestManager(svc, nil)
	require.NoError(t, m.Load(ctx))
	svc.listCalls = 0

	m.BeginCreate()
	require.NoError(t, m.Submit(ctx, draft{Name: "Ana"}))

	require.Len(t, svc.createCalls, 1)
	require.Empty(t, svc.updateCalls)
	require.Equal(t, 1, svc.listCalls)

	s := m.Snapshot()
	require.False(t, s.FormVisible)
	require.Equal(t, draft{}, s.Draft)
	require.Empty(t, s.Editing)
	require.Equal(t, Message{Kind: MessageSuccess, Text: "created"}, s.Message)
	require.Len(t, s.Records, 1)
}

func TestSubmitUpdateUsesEditingID(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{records: []record{{ID: "42", Name: "Ana"}}}
	m := newTestManager(svc, nil)

	m.BeginEdit(svc.records[0])
	require.NoError(t, m.Submit(ctx, draft{Name: "Ana Maria"}))

	require.Equal(t, []string{"42"}, svc.updateCalls)
	require.Empty(t, svc.createCalls)

	s := m.Snapshot()
	require.False(t, s.FormVisible)
	require.Equal(t, draft{}, s.Draft)
	require.Equal(t, "updated", s.Message.Text)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("reason from service", func(t *testing.T) {
		svc := &fakeService{
			records:   []record{{ID: "1", Name: "Ana"}},
			createErr: &reasonErr{msg: "CPF já cadastrado"},
		}
		m := newTestManager(svc, nil)
		require.NoError(t, m.Load(ctx))
		svc.listCalls = 0

		m.BeginCreate()
		entered := draft{Name: "Bruno", Address: "Rua A"}
		require.Error(t, m.Submit(ctx, entered))

		s := m.Snapshot()
		require.Equal(t, Message{Kind: MessageError, Text: "CPF já cadastrado"}, s.Message)
		require.True(t, s.FormVisible)
		require.Equal(t, entered, s.Draft)
		require.Equal(t, []record{{ID: "1", Name: "Ana"}}, s.Records)
		require.Zero(t, svc.listCalls)
	})

	t.Run("generic fallback", func(t *testing.T) {
		svc := &fakeService{updateErr: errors.New("connection refused")}
		m := newTestManager(svc, nil)

		m.BeginEdit(record{ID: "3", Name: "Ana"})
		entered := draft{Name: "Ana B"}
		require.Error(t, m.Submit(ctx, entered))

		s := m.Snapshot()
		require.Equal(t, "save failed", s.Message.Text)
		require.True(t, s.FormVisible)
		require.Equal(t, "3", s.Editing)
		require.Equal(t, entered, s.Draft)
	})

	t.Run("client-side validation skips the service", func(t *testing.T) {
		svc := &fakeService{}
		m := New[record, draft](svc, nil, Options[record, draft]{
			ID:      func(r record) string { return r.ID },
			ToDraft: func(r record) draft { return draft{Name: r.Name} },
			Validate: func(d draft) error {
				if d.Name == "" {
					return &reasonErr{msg: "name is required"}
				}
				return nil
			},
			Messages: testMessages,
		})

		m.BeginCreate()
		require.Error(t, m.Submit(ctx, draft{Address: "Rua B"}))

		s := m.Snapshot()
		require.Empty(t, svc.createCalls)
		require.Equal(t, "name is required", s.Message.Text)
		require.Equal(t, draft{Address: "Rua B"}, s.Draft)
		require.True(t, s.FormVisible)
	})
}

func TestSubmitClearsPreviousMessage(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{listErr: errors.New("down")}
	m := newTestManager(svc, nil)
	require.Error(t, m.Load(ctx))
	require.Equal(t, "load failed", m.Snapshot().Message.Text)

	svc.listErr = nil
	m.BeginCreate()
	require.NoError(t, m.Submit(ctx, draft{Name: "Ana"}))
	require.Equal(t, "created", m.Snapshot().Message.Text)
}

func TestReloadClearsMessage(t *testing.T) {
	ctx := context.Background()
	svc := &fakeService{listErr: errors.New("down")}
	m := newTestManager(svc, nil)
	require.Error(t, m.Load(ctx))

	svc.listErr = nil
	svc.records = []record{{ID: "1", Name: "Ana"}}
	require.NoError(t, m.Reload(ctx))

	s := m.Snapshot()
	require.True(t, s.Message.IsZero())
	require.Len(t, s.Records, 1)
	require.Equal(t, 2, svc.listCalls)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("declined makes no call and changes nothing", func(t *testing.T) {
		svc := &fakeService{records: []record{{ID: "1"}}}
		confirm := &fakeConfirmer{answer: false}
		m := newTestManager(svc, confirm)
		require.NoError(t, m.Load(ctx))
		before := m.Snapshot()

		err := m.Remove(ctx, "1")

		require.ErrorIs(t, err, ErrDeclined)
		require.Empty(t, svc.deleteCalls)
		require.Equal(t, []string{"really delete?"}, confirm.prompts)
		require.Equal(t, before, m.Snapshot())
	})

	t.Run("confirmer failure is a decline", func(t *testing.T) {
		svc := &fakeService{}
		m := newTestManager(svc, &fakeConfirmer{err: context.Canceled})

		require.ErrorIs(t, m.Remove(ctx, "1"), context.Canceled)
		require.Empty(t, svc.deleteCalls)
	})

	t.Run("nil confirmer never deletes", func(t *testing.T) {
		svc := &fakeService{}
		m := newTestManager(svc, nil)

		require.ErrorIs(t, m.Remove(ctx, "1"), ErrDeclined)
		require.Empty(t, svc.deleteCalls)
	})

	t.Run("confirmed deletes and reloads", func(t *testing.T) {
		svc := &fakeService{}
		m := newTestManager(svc, &fakeConfirmer{answer: true})

		require.NoError(t, m.Remove(ctx, "7"))

		require.Equal(t, []string{"7"}, svc.deleteCalls)
		require.Equal(t, 1, svc.listCalls)
		require.Equal(t, Message{Kind: MessageSuccess, Text: "deleted"}, m.Snapshot().Message)
	})

	t.Run("service failure sets delete error", func(t *testing.T) {
		svc := &fakeService{deleteErr: &reasonErr{msg: "in use"}}
		m := newTestManager(svc, ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
			return true, nil
		}))

		require.Error(t, m.Remove(ctx, "7"))
		require.Equal(t, Message{Kind: MessageError, Text: "delete failed"}, m.Snapshot().Message)
		require.Zero(t, svc.listCalls)
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	svc := &fakeService{records: []record{{ID: "1", Name: "Ana"}}}
	m := newTestManager(svc, nil)
	require.NoError(t, m.Load(context.Background()))

	s := m.Snapshot()
	s.Records[0].Name = "changed"

	require.Equal(t, "Ana", m.Snapshot().Records[0].Name)
}
