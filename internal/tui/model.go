package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/hotelmgr/internal/app"
	"github.com/andy/hotelmgr/internal/i18n"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root Bubble Tea model
type Model struct {
	tr      *i18n.Translator
	clients tea.Model
	width   int
	height  int
}

// New creates a new root model around the clients screen
func New(tr *i18n.Translator, clients tea.Model) Model {
	return Model{
		tr:      tr,
		clients: clients,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.clients.Init()
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, the quit key is passed to the screen.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) screenCapturingInput() bool {
	if ic, ok := m.clients.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.screenCapturingInput() && key.Matches(msg, DefaultKeyMap.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.clients, cmd = m.clients.Update(msg)
	return m, cmd
}

// View implements tea.Model - renders header + screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return m.tr.T("app.loading")
	}

	header := headerStyle.Render(m.tr.T("app.title"))
	footer := footerStyle.Render(m.tr.T("app.footer"))

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, divider, m.clients.View(), divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(max(m.height-4, 0)) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI. Cancelling ctx stops the program and any pending
// request or confirmation.
func Run(ctx context.Context, a *app.App) error {
	confirmer := newPromptConfirmer()
	manager := a.NewClientManager(confirmer)
	clients := NewClientsModel(ctx, manager, confirmer, a.Messages, a.Logger)

	p := tea.NewProgram(New(a.Messages, clients), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
