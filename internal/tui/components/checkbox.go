package components

import "github.com/rgehrsitz/calcform/internal/tui/tuistyles"

// CheckBox renders a labelled boolean toggle
type CheckBox struct {
	Label     string
	Checked   bool
	IsFocused bool
}

// NewCheckBox creates a checkbox
func NewCheckBox(label string, checked bool) *CheckBox {
	return &CheckBox{Label: label, Checked: checked}
}

// SetFocused sets the focus state
func (c *CheckBox) SetFocused(focused bool) *CheckBox {
	c.IsFocused = focused
	return c
}

// Render returns the styled checkbox
func (c *CheckBox) Render() string {
	mark := "[ ]"
	if c.Checked {
		mark = "[x]"
	}
	style := tuistyles.UnselectedItemStyle
	if c.IsFocused {
		style = tuistyles.SelectedItemStyle
	}
	return style.Render(mark + " " + c.Label)
}
