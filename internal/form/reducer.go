package form

import (
	"slices"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/validation"
)

// Reduce applies action to state and returns the resulting state.
//
// Reduce never mutates its input. A rejected action returns state as given,
// so callers can detect a no-op by comparing with Equal.
func Reduce(catalog domain.Catalog, state domain.FormState, action Action) domain.FormState {
	switch a := action.(type) {
	case SetMultiplier:
		if !validation.IsAcceptable(a.Text) {
			return state
		}
		next := state.Clone()
		next.Multiplier = a.Text
		return next

	case SetDivider:
		if !validation.IsAcceptable(a.Text) {
			return state
		}
		next := state.Clone()
		next.Divider = a.Text
		return next

	case SetValue:
		if a.YearIndex < 0 || a.YearIndex >= len(state.Values) {
			return state
		}
		if a.MonthIndex < 0 || a.MonthIndex >= domain.MonthsPerYear {
			return state
		}
		if !validation.IsAcceptable(a.Text) {
			return state
		}
		next := state.Clone()
		next.Values[a.YearIndex][a.MonthIndex] = a.Text
		return next

	case SetChecked:
		next := state.Clone()
		next.Checked = a.Checked
		return next

	case SetSelectedYears:
		if !validSelection(catalog, a.Years) {
			return state
		}
		next := state.Clone()
		next.SelectedYears = slices.Clone(a.Years)
		slices.Sort(next.SelectedYears)
		return next

	case SetMessage:
		next := state.Clone()
		if a.Message != nil {
			msg := *a.Message
			next.Message = &msg
		} else {
			next.Message = nil
		}
		return next
	}

	return state
}

// validSelection reports whether years is a duplicate-free catalog subset
// within the selection bound.
func validSelection(catalog domain.Catalog, years []int) bool {
	if len(years) > domain.MaxSelectedYears {
		return false
	}
	seen := make(map[int]bool, len(years))
	for _, y := range years {
		if !catalog.Contains(y) || seen[y] {
			return false
		}
		seen[y] = true
	}
	return true
}

// Equal reports whether two states hold the same values
func Equal(a, b domain.FormState) bool {
	if a.Multiplier != b.Multiplier || a.Divider != b.Divider || a.Checked != b.Checked {
		return false
	}
	if !slices.Equal(a.Values, b.Values) || !slices.Equal(a.SelectedYears, b.SelectedYears) {
		return false
	}
	switch {
	case a.Message == nil && b.Message == nil:
		return true
	case a.Message == nil || b.Message == nil:
		return false
	default:
		return *a.Message == *b.Message
	}
}
