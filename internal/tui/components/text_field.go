package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/calcform/internal/tui/tuistyles"
)

// TextField frames a text input with its title. The input itself is rendered
// by the caller (a bubbles textinput) and passed in as View.
type TextField struct {
	Title     string
	View      string
	HasValue  bool
	IsFocused bool
	Width     int
}

// NewTextField creates a field showing inputView
func NewTextField(title, inputView string) *TextField {
	return &TextField{
		Title: title,
		View:  inputView,
		Width: 12,
	}
}

// WithWidth sets the field width
func (f *TextField) WithWidth(width int) *TextField {
	f.Width = width
	return f
}

// WithValue records whether the input holds text; the title is only shown
// above a filled field since the placeholder already names an empty one.
func (f *TextField) WithValue(hasValue bool) *TextField {
	f.HasValue = hasValue
	return f
}

// SetFocused sets the focus state
func (f *TextField) SetFocused(focused bool) *TextField {
	f.IsFocused = focused
	return f
}

// Render returns the styled field
func (f *TextField) Render() string {
	title := " "
	if f.HasValue {
		title = f.Title
	}
	label := tuistyles.FieldLabelStyle.Render(title)

	box := tuistyles.BorderStyle
	if f.IsFocused {
		box = tuistyles.ActiveBorderStyle
	}
	input := box.Width(f.Width).Render(f.View)

	return lipgloss.JoinVertical(lipgloss.Left, label, input)
}
