package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/andy/hotelmgr/internal/app"
	"github.com/andy/hotelmgr/internal/crud"
	"github.com/andy/hotelmgr/internal/domain"
	"github.com/andy/hotelmgr/internal/i18n"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// form field indices
const (
	fieldNome = iota
	fieldCPF
	fieldEmail
	fieldTelefone
	fieldEndereco
	fieldNascimento
	fieldCount
)

var fieldKeys = [fieldCount]string{
	"field.nome",
	"field.cpf",
	"field.email",
	"field.telefone",
	"field.endereco",
	"field.dataNascimento",
}

// ClientsModel lists clients in a table and drives the create/edit form
// and the delete confirmation. All view state lives in the manager; the
// model keeps only the cursor and the form inputs.
type ClientsModel struct {
	ctx       context.Context
	manager   *app.ClientManager
	confirmer *promptConfirmer
	tr        *i18n.Translator
	logger    *slog.Logger

	state  crud.State[domain.Client, domain.ClientDraft]
	cursor int
	busy   bool

	spinner spinner.Model

	// Form state
	fields     []textinput.Model
	fieldFocus int

	// Pending delete confirmation
	confirming *confirmRequest
}

// NewClientsModel creates a new clients screen model. Manager operations
// started from the screen run under ctx.
func NewClientsModel(ctx context.Context, manager *app.ClientManager, confirmer *promptConfirmer, tr *i18n.Translator, logger *slog.Logger) *ClientsModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return &ClientsModel{
		ctx:       ctx,
		manager:   manager,
		confirmer: confirmer,
		tr:        tr,
		logger:    logger,
		state:     manager.Snapshot(),
		spinner:   sp,
	}
}

// IsCapturingInput returns true when the form or a confirmation is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.state.FormVisible || m.confirming != nil
}

func (m *ClientsModel) Init() tea.Cmd {
	return tea.Batch(
		m.run("load", m.manager.Load),
		m.confirmer.wait(),
		m.spinner.Tick,
	)
}

// run executes a manager operation off the update loop
func (m *ClientsModel) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return managerUpdatedMsg{op: op, err: fn(ctx)}
	}
}

// start marks the screen busy and runs fn
func (m *ClientsModel) start(op string, fn func(context.Context) error) tea.Cmd {
	m.busy = true
	return tea.Batch(m.run(op, fn), m.spinner.Tick)
}

// sync re-reads the manager state
func (m *ClientsModel) sync() {
	m.state = m.manager.Snapshot()
	if m.cursor >= len(m.state.Records) {
		m.cursor = max(0, len(m.state.Records)-1)
	}
	if !m.state.FormVisible {
		m.fields = nil
	}
}

func (m *ClientsModel) selected() (domain.Client, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Records) {
		return domain.Client{}, false
	}
	return m.state.Records[m.cursor], true
}

func (m *ClientsModel) initForm(draft domain.ClientDraft) tea.Cmd {
	values := [fieldCount]string{
		draft.Nome,
		draft.CPF,
		draft.Email,
		draft.Telefone,
		draft.Endereco,
		draft.DataNascimento,
	}

	// Fixed-format fields are capped, but never below the prefilled value
	limits := [fieldCount]int{
		fieldCPF:        14,
		fieldNascimento: len(domain.BirthDateLayout),
	}

	m.fields = make([]textinput.Model, fieldCount)
	for i := range m.fields {
		ti := textinput.New()
		if n := limits[i]; n > 0 && utf8.RuneCountInString(values[i]) <= n {
			ti.CharLimit = n
		}
		ti.Width = 40
		ti.SetValue(values[i])
		m.fields[i] = ti
	}
	m.fields[fieldCPF].Placeholder = "000.000.000-00"
	m.fields[fieldEmail].Placeholder = "email@example.com"
	m.fields[fieldTelefone].Placeholder = "(00) 00000-0000"
	m.fields[fieldNascimento].Placeholder = "YYYY-MM-DD"
	m.fields[fieldNascimento].Width = 12

	m.fieldFocus = fieldNome
	return m.fields[fieldNome].Focus()
}

func (m *ClientsModel) draftFromFields() domain.ClientDraft {
	return domain.ClientDraft{
		Nome:           m.fields[fieldNome].Value(),
		CPF:            m.fields[fieldCPF].Value(),
		Email:          m.fields[fieldEmail].Value(),
		Telefone:       m.fields[fieldTelefone].Value(),
		Endereco:       m.fields[fieldEndereco].Value(),
		DataNascimento: m.fields[fieldNascimento].Value(),
	}.Normalize()
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case managerUpdatedMsg:
		m.busy = false
		m.sync()
		if msg.err != nil && !errors.Is(msg.err, crud.ErrDeclined) {
			m.logger.Debug("client operation failed",
				slog.String("op", msg.op),
				slog.Any("error", msg.err),
			)
		}
		return m, nil

	case confirmRequestMsg:
		req := msg.req
		m.confirming = &req
		return m, nil

	case spinner.TickMsg:
		if !m.busy && !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.confirming != nil {
			return m.updateConfirm(msg)
		}
		if m.state.FormVisible {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	if m.state.FormVisible && m.fields != nil {
		var cmd tea.Cmd
		m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ClientsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Loading || m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.state.Records)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.manager.BeginCreate()
		m.sync()
		return m, m.initForm(m.state.Draft)
	case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
		if c, ok := m.selected(); ok && m.manager.BeginEdit(c) {
			m.sync()
			return m, m.initForm(m.state.Draft)
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if c, ok := m.selected(); ok {
			id := domain.ClientID(c)
			return m, m.start("delete", func(ctx context.Context) error {
				return m.manager.Remove(ctx, id)
			})
		}
	case key.Matches(msg, DefaultKeyMap.Reload):
		return m, m.start("reload", m.manager.Reload)
	}
	return m, nil
}

func (m *ClientsModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch {
	case key.Matches(msg, DefaultKeyMap.Confirm):
		answer = true
	case key.Matches(msg, DefaultKeyMap.Decline):
		answer = false
	default:
		return m, nil
	}

	m.confirming.reply <- answer
	m.confirming = nil
	return m, m.confirmer.wait()
}

func (m *ClientsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.manager.Cancel()
		m.sync()
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Submit):
		if m.busy {
			return m, nil
		}
		draft := m.draftFromFields()
		return m, m.start("submit", func(ctx context.Context) error {
			return m.manager.Submit(ctx, draft)
		})

	case key.Matches(msg, DefaultKeyMap.NextField):
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % fieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case key.Matches(msg, DefaultKeyMap.PrevField):
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case msg.Type == tea.KeyEnter:
		// Enter advances, and submits from the last field
		if m.fieldFocus == fieldCount-1 {
			return m.updateForm(tea.KeyMsg{Type: tea.KeyCtrlS})
		}
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus++
		return m, m.fields[m.fieldFocus].Focus()
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	var b strings.Builder

	if banner := m.viewBanner(); banner != "" {
		b.WriteString(banner + "\n\n")
	}

	if m.state.FormVisible && m.fields != nil {
		b.WriteString(m.viewForm())
		b.WriteString("\n\n")
	}

	b.WriteString(m.viewList())

	if m.confirming != nil {
		b.WriteString("\n\n" + confirmStyle.Render(m.confirming.prompt))
		b.WriteString("\n" + helpStyle.Render(m.tr.T("clients.confirm_help")))
	}

	return b.String()
}

func (m *ClientsModel) viewBanner() string {
	switch m.state.Message.Kind {
	case crud.MessageSuccess:
		return successStyle.Render("✓ " + m.state.Message.Text)
	case crud.MessageError:
		return errorStyle.Render("✗ " + m.state.Message.Text)
	}
	return ""
}

func (m *ClientsModel) viewForm() string {
	var b strings.Builder

	title, action := m.tr.T("form.new_title"), m.tr.T("form.create")
	if m.state.IsEditing() {
		title, action = m.tr.T("form.edit_title"), m.tr.T("form.update")
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for i := range m.fields {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = focusedLabelStyle
		}
		label := m.tr.T(fieldKeys[i])
		if i < fieldEndereco {
			label += " *"
		}
		label = labelStyle.Render(label)
		fmt.Fprintf(&b, "%s%s\n  %s\n", indicator, label, m.fields[i].View())
	}

	if m.busy {
		b.WriteString("\n" + m.spinner.View())
	}
	b.WriteString("\n" + helpStyle.Render(m.tr.T("form.help", action)))
	return b.String()
}

func (m *ClientsModel) viewList() string {
	if m.state.Loading {
		return m.spinner.View() + " " + m.tr.T("app.loading")
	}

	var b strings.Builder
	heading := m.tr.T("clients.heading", len(m.state.Records))
	if m.busy && !m.state.FormVisible {
		heading += " " + m.spinner.View()
	}
	b.WriteString(titleStyle.Render(heading) + "\n\n")

	if len(m.state.Records) == 0 {
		b.WriteString(subtitleStyle.Render("  "+m.tr.T("clients.empty")) + "\n")
	} else {
		b.WriteString(m.viewTable() + "\n")
	}

	if !m.state.FormVisible {
		b.WriteString("\n" + helpStyle.Render(m.tr.T("clients.help")))
	}
	return b.String()
}

func (m *ClientsModel) viewTable() string {
	cursor := m.cursor
	if m.state.FormVisible {
		cursor = -2
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		Headers(
			m.tr.T("column.nome"),
			m.tr.T("field.cpf"),
			m.tr.T("field.email"),
			m.tr.T("field.telefone"),
		).
		Rows(clientRows(m.state.Records)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case row == cursor:
				return tableCursorStyle
			default:
				return tableCellStyle
			}
		})
	return t.String()
}
