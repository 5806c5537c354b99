package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/calcform/internal/calculation"
	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/form"
	"github.com/rgehrsitz/calcform/internal/validation"
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("ctrl+c"))
	keyDismiss = key.NewBinding(key.WithKeys("enter", "esc"))
	keyNext    = key.NewBinding(key.WithKeys("tab"))
	keyPrev    = key.NewBinding(key.WithKeys("shift+tab"))
	keyEnter   = key.NewBinding(key.WithKeys("enter"))
	keyEsc     = key.NewBinding(key.WithKeys("esc"))
	keyToggle  = key.NewBinding(key.WithKeys(" ", "space"))
	keyUp      = key.NewBinding(key.WithKeys("up", "k"))
	keyDown    = key.NewBinding(key.WithKeys("down", "j"))
	keyClear   = key.NewBinding(key.WithKeys("x", "delete", "backspace"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	// Custom messages
	case QuitMsg:
		return m, tea.Quit

	case YearsChangedMsg:
		m.store.Dispatch(form.SetSelectedYears{Years: msg.Years})
		m.picker.Sync(m.store.State().SelectedYears)
		return m, nil

	case CalculationCompleteMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		m.store.Dispatch(form.SetMessage{Message: msg.Message})
		return m, nil
	}

	// Cursor blink and similar messages go to the focused input
	return m.updateFocusedInput(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keyQuit) {
		return m, tea.Quit
	}

	// A visible message swallows its dismiss keys so they never reach the
	// focused widget.
	if m.store.State().Message != nil && key.Matches(msg, keyDismiss) {
		m.store.Dismiss()
		return m, nil
	}

	switch {
	case key.Matches(msg, keyNext):
		return m.moveFocus(1)
	case key.Matches(msg, keyPrev):
		return m.moveFocus(-1)
	}

	switch m.focus.Area {
	case FocusYears:
		return m.updateYears(msg)

	case FocusCheckbox:
		if key.Matches(msg, keyToggle) || key.Matches(msg, keyEnter) {
			m.store.Dispatch(form.SetChecked{Checked: !m.store.State().Checked})
		}
		return m, nil

	case FocusButton:
		if key.Matches(msg, keyToggle) || key.Matches(msg, keyEnter) {
			return m.startCalculation()
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// handleMouse dismisses the message panel on a left click
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.store.State().Message != nil {
		m.store.Dismiss()
	}
	return m, nil
}

// updateYears drives the year picker
func (m Model) updateYears(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker

	switch {
	case key.Matches(msg, keyEsc):
		p.Close()

	case key.Matches(msg, keyEnter):
		if !p.IsOpen() {
			p.Open()
			return m, nil
		}
		return m, yearsChangedCmd(p.Toggle(p.Cursor()))

	case key.Matches(msg, keyToggle):
		if p.IsOpen() {
			return m, yearsChangedCmd(p.Toggle(p.Cursor()))
		}

	case key.Matches(msg, keyUp):
		p.CursorUp()

	case key.Matches(msg, keyDown):
		if !p.IsOpen() {
			p.Open()
			return m, nil
		}
		p.CursorDown()

	case key.Matches(msg, keyClear):
		return m, yearsChangedCmd(p.Clear())
	}

	return m, nil
}

// updateFocusedInput feeds msg to the focused text input and offers the
// resulting text to the store. A rejected edit snaps the input back to the
// stored value.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	in := m.input(m.focus)
	if in == nil {
		return m, nil
	}

	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	if in.Value() == before {
		return m, cmd
	}

	m.store.Dispatch(m.fieldAction(m.focus, in.Value()))
	if stored := m.storedValue(m.focus); in.Value() != stored {
		m.logger.Debugf("rejected %s edit %q", m.focus.Area, in.Value())
		in.SetValue(stored)
	}
	return m, cmd
}

func (m Model) fieldAction(t focusTarget, text string) form.Action {
	switch t.Area {
	case FocusMultiplier:
		return form.SetMultiplier{Text: text}
	case FocusDivider:
		return form.SetDivider{Text: text}
	default:
		return form.SetValue{ValueData: domain.ValueData{
			YearIndex:  m.catalog.Index(t.Year),
			MonthIndex: t.Month,
			Text:       text,
		}}
	}
}

func (m Model) storedValue(t focusTarget) string {
	state := m.store.State()
	switch t.Area {
	case FocusMultiplier:
		return state.Multiplier
	case FocusDivider:
		return state.Divider
	default:
		return state.Month(m.catalog.Index(t.Year), t.Month)
	}
}

// moveFocus steps through the focus ring, wrapping at either end
func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	ring := m.focusRing(m.store.State())
	idx := slices.Index(ring, m.focus)
	if idx < 0 {
		idx = 0
	}
	next := ring[(idx+delta+len(ring))%len(ring)]
	return m.setFocus(next)
}

func (m Model) setFocus(t focusTarget) (tea.Model, tea.Cmd) {
	if m.focus.Area == FocusYears {
		m.picker.Blur()
	}
	if in := m.input(m.focus); in != nil {
		in.Blur()
	}

	m.focus = t

	if t.Area == FocusYears {
		m.picker.Focus()
		return m, nil
	}
	if in := m.input(t); in != nil {
		return m, in.Focus()
	}
	return m, nil
}

// startCalculation shows the progress message and launches a request.
// Overlapping requests are allowed; the last to finish sets the message.
func (m Model) startCalculation() (tea.Model, tea.Cmd) {
	state := m.store.State()
	if !validation.CanSubmit(state) {
		return m, nil
	}

	m.store.Dispatch(form.SetMessage{Message: calculation.ProgressMessage()})
	m.inFlight++
	m.logger.Infof("starting calculation for years %v", state.SelectedYears)

	return m, startCalculationCmd(m.calculate, m.store.State())
}
