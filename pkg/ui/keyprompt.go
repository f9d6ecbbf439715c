package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"roomchat/pkg/ui/styles"
)

// keyPrompt is the modal overlay for entering the API key. Input is
// masked; Enter submits, Esc cancels.
type keyPrompt struct {
	input   textinput.Model
	visible bool
}

func newKeyPrompt() keyPrompt {
	ti := textinput.New()
	ti.Placeholder = "sk-..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 256
	ti.Width = 48
	return keyPrompt{input: ti}
}

func (k *keyPrompt) Show() {
	k.visible = true
	k.input.SetValue("")
	k.input.Focus()
}

func (k *keyPrompt) Hide() {
	k.visible = false
	k.input.Blur()
}

func (k *keyPrompt) Visible() bool { return k.visible }

func (k *keyPrompt) Value() string { return strings.TrimSpace(k.input.Value()) }

func (k *keyPrompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	k.input, cmd = k.input.Update(msg)
	return cmd
}

func (k *keyPrompt) View() string {
	var sb strings.Builder
	sb.WriteString(styles.TitleStyle.Render("Set API Key"))
	sb.WriteString("\n\n")
	sb.WriteString(k.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(styles.FooterStyle.Render("enter save · esc cancel"))
	return styles.BoxStyle.Render(sb.String())
}
