package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/form"
	"github.com/rgehrsitz/calcform/internal/logging"
	"github.com/rgehrsitz/calcform/internal/years"
)

// Calculator runs one calculation for a form snapshot and returns the
// message to show. It is called off the update loop.
type Calculator func(state domain.FormState) *domain.Message

var monthLabels = [domain.MonthsPerYear]string{
	"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12",
}

// Model represents the entire application state
type Model struct {
	// Form state and collaborators
	store     *form.Store
	catalog   domain.Catalog
	picker    *years.Picker
	calculate Calculator
	logger    logging.Logger

	// Text inputs; months has one row per catalog slot
	multiplier textinput.Model
	divider    textinput.Model
	months     [][domain.MonthsPerYear]textinput.Model

	focus    focusTarget
	inFlight int

	// Terminal dimensions
	width  int
	height int
}

// NewModel creates a new application model
func NewModel(store *form.Store, calculate Calculator, logger logging.Logger) Model {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	catalog := store.Catalog()
	state := store.State()

	m := Model{
		store:      store,
		catalog:    catalog,
		picker:     years.NewPicker(catalog, state.SelectedYears),
		calculate:  calculate,
		logger:     logger,
		multiplier: newInput("Multiplier", 14),
		divider:    newInput("Divider", 14),
		months:     make([][domain.MonthsPerYear]textinput.Model, catalog.Len()),
		focus:      focusTarget{Area: FocusYears},
		width:      100,
		height:     30,
	}
	m.multiplier.SetValue(state.Multiplier)
	m.divider.SetValue(state.Divider)

	for slot, y := range catalog.Years() {
		for mon := 0; mon < domain.MonthsPerYear; mon++ {
			in := newInput(monthTitle(y, mon), 6)
			in.SetValue(state.Values[slot][mon])
			m.months[slot][mon] = in
		}
	}

	m.picker.Focus()
	return m
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 16
	ti.Width = width
	return ti
}

// monthTitle labels a month field, e.g. "03.24"
func monthTitle(year, month int) string {
	return fmt.Sprintf("%s.%02d", monthLabels[month], year%100)
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// State returns the current form state
func (m Model) State() domain.FormState {
	return m.store.State()
}

// Focus returns the focused area
func (m Model) Focus() FocusArea {
	return m.focus.Area
}

// InFlight returns the number of calculations awaiting a response
func (m Model) InFlight() int {
	return m.inFlight
}

// focusRing lists the focus stops in tab order for the current selection
func (m Model) focusRing(state domain.FormState) []focusTarget {
	ring := []focusTarget{
		{Area: FocusYears},
		{Area: FocusMultiplier},
		{Area: FocusDivider},
	}
	for _, y := range state.SelectedYears {
		for mon := 0; mon < domain.MonthsPerYear; mon++ {
			ring = append(ring, focusTarget{Area: FocusMonth, Year: y, Month: mon})
		}
	}
	return append(ring, focusTarget{Area: FocusCheckbox}, focusTarget{Area: FocusButton})
}

// input returns the text input behind a focus target, or nil
func (m *Model) input(t focusTarget) *textinput.Model {
	switch t.Area {
	case FocusMultiplier:
		return &m.multiplier
	case FocusDivider:
		return &m.divider
	case FocusMonth:
		slot := m.catalog.Index(t.Year)
		if slot < 0 {
			return nil
		}
		return &m.months[slot][t.Month]
	}
	return nil
}

// startCalculationCmd returns a command that runs one calculation against a
// snapshot of the form
func startCalculationCmd(calculate Calculator, snapshot domain.FormState) tea.Cmd {
	return func() tea.Msg {
		return CalculationCompleteMsg{Message: calculate(snapshot)}
	}
}

// yearsChangedCmd reports a picker selection back to the update loop
func yearsChangedCmd(selected []int) tea.Cmd {
	return func() tea.Msg {
		return YearsChangedMsg{Years: selected}
	}
}
