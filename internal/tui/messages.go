package tui

import (
	"github.com/rgehrsitz/calcform/internal/tui/tuimsg"
)

// FocusArea identifies which widget receives keyboard input
type FocusArea int

const (
	FocusYears FocusArea = iota
	FocusMultiplier
	FocusDivider
	FocusMonth
	FocusCheckbox
	FocusButton
)

func (f FocusArea) String() string {
	switch f {
	case FocusYears:
		return "Years"
	case FocusMultiplier:
		return "Multiplier"
	case FocusDivider:
		return "Divider"
	case FocusMonth:
		return "Month"
	case FocusCheckbox:
		return "Enable calculation"
	case FocusButton:
		return "Start calculation"
	default:
		return "Unknown"
	}
}

// focusTarget is one stop of the focus ring. Year and Month are only set
// for FocusMonth; Month is 0-based.
type focusTarget struct {
	Area  FocusArea
	Year  int
	Month int
}

// Message types for the Bubble Tea update cycle

// QuitMsg signals the application should exit
type QuitMsg struct{}

type (
	CalculationCompleteMsg = tuimsg.CalculationCompleteMsg
	YearsChangedMsg        = tuimsg.YearsChangedMsg
)
