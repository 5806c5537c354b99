package tuimsg

import (
	"github.com/rgehrsitz/calcform/internal/domain"
)

// CalculationCompleteMsg carries the message produced by a finished
// calculation, success or failure alike
type CalculationCompleteMsg struct {
	Message *domain.Message
}

// YearsChangedMsg signals the picker produced a new selection
type YearsChangedMsg struct {
	Years []int
}
