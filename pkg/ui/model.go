// Package ui implements the terminal interface: a room sidebar, a
// message viewport, a multi-line input box, and a masked overlay for
// entering the API key.
package ui

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"roomchat/pkg/chat"
	"roomchat/pkg/commands"
	"roomchat/pkg/ui/styles"
)

const (
	sidebarWidth  = 22
	inputHeight   = 3
	statusHeight  = 1
	noticeHeight  = 1
	chromeHeight  = inputHeight + statusHeight + noticeHeight + 2
	minBodyHeight = 3
)

// turnResultMsg carries the outcome of a completed turn back into the
// update loop.
type turnResultMsg struct {
	room     string
	appended []chat.Message
	err      error
}

// Model is the root bubbletea model.
type Model struct {
	store      *chat.Store
	controller *chat.TurnController
	dispatcher *commands.Dispatcher

	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	keys     keyPrompt

	providerName string
	modelName    string

	width   int
	height  int
	ready   bool
	pending bool
	notice  string

	// panel holds multi-line command output (help, room list) shown as
	// a centered overlay until the next keypress.
	panelTitle string
	panelBody  string
}

// New builds the root model around an already-wired store and
// controller.
func New(store *chat.Store, controller *chat.TurnController, providerName, modelName string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type a message or /help"
	ta.SetHeight(inputHeight)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorAccent)

	m := Model{
		store:        store,
		controller:   controller,
		dispatcher:   commands.NewDispatcher(),
		input:        ta,
		spinner:      sp,
		keys:         newKeyPrompt(),
		providerName: providerName,
		modelName:    modelName,
	}
	if !store.HasCredential() {
		m.keys.Show()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshViewport()
		m.ready = true
		return m, nil

	case turnResultMsg:
		m.pending = false
		if msg.err != nil {
			m.notice = styles.ErrorStyle.Render(msg.err.Error())
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.panelBody != "" {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.panelTitle = ""
		m.panelBody = ""
		return m, nil
	}

	if m.keys.Visible() {
		switch msg.String() {
		case "enter":
			value := m.keys.Value()
			m.keys.Hide()
			if value == "" {
				m.notice = styles.TextMutedStyle.Render("API key unchanged")
				return m, nil
			}
			if err := m.store.SetCredential(value); err != nil {
				m.notice = styles.ErrorStyle.Render(err.Error())
				return m, nil
			}
			m.notice = styles.SuccessStyle.Render("API key set")
			return m, nil
		case "esc":
			m.keys.Hide()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		cmd := m.keys.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+n":
		return m.switchRoom(+1)
	case "ctrl+p":
		return m.switchRoom(-1)
	case "ctrl+y":
		return m, m.copyLastReply()
	case "enter":
		return m.submit()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) switchRoom(step int) (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	next := cycleRoom(m.store.ListRooms(), m.store.ActiveRoom(), step)
	if err := m.store.SelectRoom(next); err != nil {
		m.notice = styles.ErrorStyle.Render(err.Error())
		return m, nil
	}
	m.notice = ""
	m.refreshViewport()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}

	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.input.Reset()
		return m, nil
	}
	m.input.Reset()

	if commands.IsCommand(text) {
		return m.runCommand(text)
	}

	m.pending = true
	m.notice = ""
	room := m.store.ActiveRoom()
	store, controller := m.store, m.controller
	turn := func() tea.Msg {
		appended, err := controller.Submit(context.Background(), store, text)
		return turnResultMsg{room: room, appended: appended, err: err}
	}
	m.refreshViewport()
	return m, tea.Batch(turn, m.spinner.Tick)
}

func (m Model) runCommand(text string) (tea.Model, tea.Cmd) {
	result := m.dispatcher.Dispatch(text, &commands.Context{Store: m.store})

	switch result.Action {
	case commands.ActionQuit:
		return m, tea.Quit
	case commands.ActionPromptCredential:
		m.keys.Show()
		return m, nil
	}

	switch {
	case result.Error != nil:
		m.notice = styles.ErrorStyle.Render(result.Content)
	case strings.Contains(result.Content, "\n"):
		m.panelTitle = result.Title
		m.panelBody = result.Content
		m.notice = ""
	case result.Content != "":
		m.notice = styles.TextMutedStyle.Render(result.Content)
	default:
		m.notice = ""
	}
	m.refreshViewport()
	return m, nil
}

// copyLastReply sends the most recent assistant message to the system
// clipboard via OSC 52. The escape sequence goes to stderr so the
// renderer's stdout stream stays untouched.
func (m Model) copyLastReply() tea.Cmd {
	history, err := m.store.History(m.store.ActiveRoom())
	if err != nil {
		return nil
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != chat.RoleAssistant {
			continue
		}
		content := history[i].Content
		return func() tea.Msg {
			if _, err := osc52.New(content).WriteTo(os.Stderr); err != nil {
				slog.Warn("clipboard_copy_failed", "error", err)
			}
			return nil
		}
	}
	return nil
}

func (m *Model) layout() {
	bodyHeight := m.height - chromeHeight
	if bodyHeight < minBodyHeight {
		bodyHeight = minBodyHeight
	}
	viewportWidth := m.width - sidebarWidth - 4
	if viewportWidth < 10 {
		viewportWidth = 10
	}

	if m.ready {
		m.viewport.Width = viewportWidth
		m.viewport.Height = bodyHeight
	} else {
		m.viewport = viewport.New(viewportWidth, bodyHeight)
	}
	m.input.SetWidth(m.width - 2)
}

func (m *Model) refreshViewport() {
	if m.viewport.Width <= 0 {
		return
	}
	history, err := m.store.History(m.store.ActiveRoom())
	if err != nil {
		return
	}
	m.viewport.SetContent(renderHistory(history, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	sidebar := styles.SidebarStyle.
		Width(sidebarWidth).
		Height(m.viewport.Height).
		Render(renderRoomList(m.store.ListRooms(), m.store.ActiveRoom(), sidebarWidth-2))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, m.viewport.View())

	notice := m.notice
	if m.pending {
		notice = m.spinner.View() + styles.TextMutedStyle.Render(" waiting for reply")
	}

	status := renderStatusBar(
		m.store.ActiveRoom(),
		m.providerName,
		m.modelName,
		m.store.HasCredential(),
		m.pending,
		m.width,
	)

	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(notice)
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(status)

	if m.keys.Visible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.keys.View())
	}
	if m.panelBody != "" {
		panel := styles.TitleStyle.Render(m.panelTitle) + "\n\n" +
			styles.TextStyle.Render(m.panelBody) + "\n\n" +
			styles.FooterStyle.Render("press any key to close")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, styles.BoxStyle.Render(panel))
	}
	return sb.String()
}
