package components

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/calcform/internal/tui/tuistyles"
)

// YearSelect renders the year picker: a summary line and, while open, the
// catalog as a checklist.
type YearSelect struct {
	Title     string
	Years     []int
	Selected  []int
	Cursor    int // catalog year under the cursor
	IsOpen    bool
	IsFocused bool
	Width     int
}

// NewYearSelect creates a picker view over years
func NewYearSelect(years, selected []int) *YearSelect {
	return &YearSelect{
		Title:    "Select years",
		Years:    years,
		Selected: selected,
		Width:    30,
	}
}

// WithCursor sets the highlighted catalog year
func (y *YearSelect) WithCursor(year int) *YearSelect {
	y.Cursor = year
	return y
}

// WithOpen shows or hides the dropdown
func (y *YearSelect) WithOpen(open bool) *YearSelect {
	y.IsOpen = open
	return y
}

// SetFocused sets the focus state
func (y *YearSelect) SetFocused(focused bool) *YearSelect {
	y.IsFocused = focused
	return y
}

// Summary is the closed-state text, e.g. "Select years: 2024,2025"
func (y *YearSelect) Summary() string {
	if len(y.Selected) == 0 {
		return y.Title
	}
	parts := make([]string, len(y.Selected))
	for i, year := range y.Selected {
		parts[i] = strconv.Itoa(year)
	}
	return y.Title + ": " + strings.Join(parts, ",")
}

// Render returns the styled picker
func (y *YearSelect) Render() string {
	opener := "▾"
	if y.IsOpen {
		opener = "▴"
	}
	clearMark := ""
	if len(y.Selected) > 0 {
		clearMark = " ✕"
	}

	box := tuistyles.BorderStyle
	if y.IsFocused {
		box = tuistyles.ActiveBorderStyle
	}
	header := box.Width(y.Width).Render(fmt.Sprintf("%s%s %s", y.Summary(), clearMark, opener))

	if !y.IsOpen {
		return header
	}

	rows := make([]string, 0, len(y.Years))
	for _, year := range y.Years {
		mark := "[ ]"
		if slices.Contains(y.Selected, year) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %d", mark, year)
		if year == y.Cursor {
			rows = append(rows, tuistyles.SelectedItemStyle.Render("> "+line))
		} else {
			rows = append(rows, tuistyles.UnselectedItemStyle.Render("  "+line))
		}
	}
	list := tuistyles.BorderStyle.Width(y.Width).Render(strings.Join(rows, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, list)
}
