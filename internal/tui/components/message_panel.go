package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/tui/tuistyles"
)

// MessagePanel shows the outcome of a calculation until dismissed
type MessagePanel struct {
	Kind  domain.MessageKind
	Title string
	Body  string
	Width int
}

// NewMessagePanel creates a panel for msg
func NewMessagePanel(msg domain.Message) *MessagePanel {
	return &MessagePanel{
		Kind:  msg.Kind,
		Title: msg.Title,
		Body:  msg.Body,
		Width: 50,
	}
}

// WithWidth sets the panel width
func (p *MessagePanel) WithWidth(width int) *MessagePanel {
	p.Width = width
	return p
}

// Render returns the styled panel
func (p *MessagePanel) Render() string {
	style := tuistyles.InfoStyle
	if p.Kind == domain.MessageError {
		style = tuistyles.ErrorStyle
	}

	title := lipgloss.NewStyle().Bold(true).Render(p.Title)
	hint := tuistyles.SubtitleStyle.Render("enter/esc/click to dismiss")

	return style.Width(p.Width).Render(lipgloss.JoinVertical(lipgloss.Left, title, p.Body, hint))
}
