package components

import "github.com/rgehrsitz/calcform/internal/tui/tuistyles"

// Button renders an action that may be disabled
type Button struct {
	Label      string
	IsDisabled bool
	IsFocused  bool
}

// NewButton creates a button
func NewButton(label string) *Button {
	return &Button{Label: label}
}

// WithDisabled sets whether the button can be activated
func (b *Button) WithDisabled(disabled bool) *Button {
	b.IsDisabled = disabled
	return b
}

// SetFocused sets the focus state
func (b *Button) SetFocused(focused bool) *Button {
	b.IsFocused = focused
	return b
}

// Render returns the styled button
func (b *Button) Render() string {
	if b.IsDisabled {
		return tuistyles.DisabledStyle.Render("[ " + b.Label + " ]")
	}
	style := tuistyles.ButtonStyle
	if b.IsFocused {
		style = style.Background(tuistyles.ColorAccent).Bold(true)
	}
	return style.Render(b.Label)
}
