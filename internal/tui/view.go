package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/tui/components"
	"github.com/rgehrsitz/calcform/internal/validation"
)

const monthsPerRow = 6

// View renders the current state of the application
func (m Model) View() string {
	state := m.store.State()

	sections := []string{
		m.renderTitleBar(),
		m.renderYears(state),
		SectionStyle.Render("Global factors"),
		m.renderFactors(state),
	}

	if len(state.SelectedYears) > 0 {
		sections = append(sections, SectionStyle.Render("Month values"))
		for _, y := range state.SelectedYears {
			sections = append(sections, m.renderYearRow(state, y))
		}
	}

	sections = append(sections, m.renderFooter(state), m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTitleBar renders the application title
func (m Model) renderTitleBar() string {
	return TitleStyle.Render("Calculation Form")
}

func (m Model) renderYears(state domain.FormState) string {
	return components.NewYearSelect(m.catalog.Years(), state.SelectedYears).
		WithCursor(m.picker.Cursor()).
		WithOpen(m.picker.IsOpen()).
		SetFocused(m.focus.Area == FocusYears).
		Render()
}

func (m Model) renderFactors(state domain.FormState) string {
	mul := components.NewTextField("Multiplier", m.multiplier.View()).
		WithWidth(16).
		WithValue(state.Multiplier != "").
		SetFocused(m.focus.Area == FocusMultiplier).
		Render()
	div := components.NewTextField("Divider", m.divider.View()).
		WithWidth(16).
		WithValue(state.Divider != "").
		SetFocused(m.focus.Area == FocusDivider).
		Render()
	return lipgloss.JoinHorizontal(lipgloss.Top, mul, " ", div)
}

// renderYearRow renders the twelve month fields of one year in two rows
func (m Model) renderYearRow(state domain.FormState, year int) string {
	slot := m.catalog.Index(year)
	if slot < 0 {
		return ""
	}

	var rows []string
	var row []string
	for mon := 0; mon < domain.MonthsPerYear; mon++ {
		focused := m.focus == focusTarget{Area: FocusMonth, Year: year, Month: mon}
		field := components.NewTextField(monthTitle(year, mon), m.months[slot][mon].View()).
			WithWidth(8).
			WithValue(state.Values[slot][mon] != "").
			SetFocused(focused).
			Render()
		row = append(row, field)

		if len(row) == monthsPerRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderFooter(state domain.FormState) string {
	parts := []string{
		components.NewCheckBox("Enable calculation", state.Checked).
			SetFocused(m.focus.Area == FocusCheckbox).
			Render(),
	}

	if state.Message != nil {
		parts = append(parts, components.NewMessagePanel(*state.Message).
			WithWidth(max(30, min(m.width-4, 70))).
			Render())
	}

	parts = append(parts, components.NewButton("Start calculation").
		WithDisabled(!validation.CanSubmit(state)).
		SetFocused(m.focus.Area == FocusButton).
		Render())

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next"),
		formatShortcut("shift+tab", "previous"),
		formatShortcut("enter", "open/select"),
		formatShortcut("space", "toggle"),
		formatShortcut("x", "clear years"),
		formatShortcut("ctrl+c", "quit"),
	}

	statusText := strings.Join(shortcuts, " • ")
	if m.inFlight > 0 {
		statusText += SubtitleStyle.Render(fmt.Sprintf("  %d calculating", m.inFlight))
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}
