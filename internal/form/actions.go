package form

import "github.com/rgehrsitz/calcform/internal/domain"

// Action is a named transition of the form state. The set is closed: only
// the types in this file implement it.
type Action interface {
	isAction()
}

// SetMultiplier replaces the multiplier when Text is acceptable
type SetMultiplier struct {
	Text string
}

// SetDivider replaces the divider when Text is acceptable
type SetDivider struct {
	Text string
}

// SetValue replaces one month slot when the text is acceptable
type SetValue struct {
	domain.ValueData
}

// SetChecked toggles the "Enable calculation" flag
type SetChecked struct {
	Checked bool
}

// SetSelectedYears replaces the set of years being edited
type SetSelectedYears struct {
	Years []int
}

// SetMessage shows a message, or clears the panel when Message is nil
type SetMessage struct {
	Message *domain.Message
}

func (SetMultiplier) isAction()    {}
func (SetDivider) isAction()       {}
func (SetValue) isAction()         {}
func (SetChecked) isAction()       {}
func (SetSelectedYears) isAction() {}
func (SetMessage) isAction()       {}
