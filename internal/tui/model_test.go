package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/calcform/internal/calculation"
	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/encoder"
	"github.com/rgehrsitz/calcform/internal/form"
)

var testCatalog = domain.NewCatalog(2024)

type fakeSubmitter struct {
	calls int
	reply string
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, _ encoder.Payload) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestModel(t *testing.T, sub *fakeSubmitter) Model {
	t.Helper()
	store := form.NewStore(testCatalog)
	runner := calculation.NewRunner(sub, testCatalog)
	calculate := func(state domain.FormState) *domain.Message {
		return runner.Start(context.Background(), state)
	}
	return NewModel(store, calculate, nil)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

// typeText sends one key per rune, the way a terminal delivers them
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, runes(string(r)))
	}
	return m
}

func focusOn(t *testing.T, m Model, area FocusArea) Model {
	t.Helper()
	for i := 0; i < 100 && m.Focus() != area; i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, area, m.Focus())
	return m
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	assert.Equal(t, FocusYears, m.Focus())
	assert.Equal(t, []int{2024}, m.State().SelectedYears)
	assert.Nil(t, m.Init())
}

func TestFocusRingWraps(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	// years, multiplier, divider, 12 months, checkbox, button
	ring := m.focusRing(m.State())
	assert.Len(t, ring, 3+12+2)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FocusButton, m.Focus())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusYears, m.Focus())
}

func TestTypingIntoFields(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	m = focusOn(t, m, FocusMultiplier)
	m = typeText(t, m, "3,5")
	assert.Equal(t, "3,5", m.State().Multiplier)
	assert.Equal(t, "3,5", m.multiplier.Value())

	// "3,5a" is not a number: the edit is dropped and the field snaps back
	m = typeText(t, m, "a")
	assert.Equal(t, "3,5", m.State().Multiplier)
	assert.Equal(t, "3,5", m.multiplier.Value())

	m = focusOn(t, m, FocusDivider)
	m = typeText(t, m, "5000")
	assert.Equal(t, "500", m.State().Divider, "the last digit would exceed 1000")
}

func TestTypingIntoMonth(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	m = focusOn(t, m, FocusMonth)
	assert.Equal(t, focusTarget{Area: FocusMonth, Year: 2024, Month: 0}, m.focus)

	m = typeText(t, m, "10,25")
	assert.Equal(t, "10,25", m.State().Values[testCatalog.Index(2024)][0])
}

func TestYearPicker(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	// open, move to 2023 (catalog starts at 2022) and toggle it on
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.picker.IsOpen())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	assert.Equal(t, []int{2023, 2024}, m.State().SelectedYears)

	// toggling 2023 again removes it
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(t, m, cmd())
	assert.Equal(t, []int{2024}, m.State().SelectedYears)

	// esc closes the dropdown; x clears the selection
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.picker.IsOpen())

	m, cmd = press(t, m, runes("x"))
	m, _ = press(t, m, cmd())
	assert.Empty(t, m.State().SelectedYears)

	// leaving the picker closes it
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.picker.IsOpen())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.picker.IsOpen())
}

func fillSubmittable(t *testing.T, m Model) Model {
	t.Helper()
	m = focusOn(t, m, FocusMultiplier)
	m = typeText(t, m, "3,5")
	m = focusOn(t, m, FocusDivider)
	m = typeText(t, m, "2")
	m = focusOn(t, m, FocusCheckbox)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.State().Checked)
	return focusOn(t, m, FocusButton)
}

func TestButtonDisabledUntilSubmittable(t *testing.T) {
	sub := &fakeSubmitter{reply: "42.0"}
	m := newTestModel(t, sub)

	m = focusOn(t, m, FocusButton)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Nil(t, m.State().Message)
	assert.Equal(t, 0, sub.calls)
}

func TestStartCalculation_Success(t *testing.T) {
	sub := &fakeSubmitter{reply: "42.0"}
	m := fillSubmittable(t, newTestModel(t, sub))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := m.State().Message
	require.NotNil(t, msg)
	assert.Equal(t, "Calculating...", msg.Body)
	assert.Equal(t, 1, m.InFlight())

	m, _ = press(t, m, cmd())
	msg = m.State().Message
	require.NotNil(t, msg)
	assert.Equal(t, domain.MessageInfo, msg.Kind)
	assert.Equal(t, "Calculation result", msg.Title)
	assert.Equal(t, "42.0", msg.Body)
	assert.Equal(t, 0, m.InFlight())
	assert.Equal(t, 1, sub.calls)
}

func TestDismissConsumesKey(t *testing.T) {
	sub := &fakeSubmitter{reply: "42.0"}
	m := fillSubmittable(t, newTestModel(t, sub))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = press(t, m, cmd())
	require.NotNil(t, m.State().Message)

	// enter dismisses rather than pressing the focused button again
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Nil(t, m.State().Message)
	assert.Equal(t, 1, sub.calls)

	// esc on an open picker dismisses the message but leaves the picker open
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	require.NotNil(t, m.State().Message)
	assert.Equal(t, 2, sub.calls)

	m = focusOn(t, m, FocusYears)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.True(t, m.picker.IsOpen())
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.State().Message)
	assert.True(t, m.picker.IsOpen())
}

func TestMouseClickDismisses(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m.store.Dispatch(form.SetMessage{Message: &domain.Message{Kind: domain.MessageError, Title: "t", Body: "b"}})

	m, _ = press(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Nil(t, m.State().Message)
}

func TestEditsWhileInFlight(t *testing.T) {
	sub := &fakeSubmitter{reply: "first"}
	m := fillSubmittable(t, newTestModel(t, sub))

	m, first := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, first)

	// dismiss the progress message and keep editing
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = focusOn(t, m, FocusMultiplier)
	m = typeText(t, m, "0")
	assert.Equal(t, "3,50", m.State().Multiplier)

	m, _ = press(t, m, first())
	assert.Equal(t, "first", m.State().Message.Body)
}

func TestView(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := m.View()
	assert.Contains(t, out, "Calculation Form")
	assert.Contains(t, out, "Select years: 2024")
	assert.Contains(t, out, "Month values")
	assert.Contains(t, out, "01.24")
	assert.Contains(t, out, "Enable calculation")
	assert.Contains(t, out, "Start calculation")
}

func TestMonthTitle(t *testing.T) {
	assert.Equal(t, "03.24", monthTitle(2024, 2))
	assert.Equal(t, "12.05", monthTitle(2005, 11))
}

func TestTypingHugeExponentIsRejected(t *testing.T) {
	m := newTestModel(t, &fakeSubmitter{})

	// a paste arrives as one key event carrying every rune
	m = focusOn(t, m, FocusMultiplier)
	m, _ = press(t, m, runes("1e99999999"))
	assert.Empty(t, m.State().Multiplier)
	assert.Empty(t, m.multiplier.Value())

	m, _ = press(t, m, runes("1e-400"))
	assert.Equal(t, "1e-400", m.State().Multiplier, "underflow reads as zero")
}

func TestCalculatorReceivesSnapshot(t *testing.T) {
	store := form.NewStore(testCatalog)
	var got []domain.FormState
	calculate := func(state domain.FormState) *domain.Message {
		got = append(got, state)
		return &domain.Message{Kind: domain.MessageInfo, Title: "Calculation result", Body: "ok"}
	}
	m := fillSubmittable(t, NewModel(store, calculate, nil))

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Empty(t, got, "the calculation runs in the command, not in Update")

	m, _ = press(t, m, cmd())
	require.Len(t, got, 1)
	assert.Equal(t, "3,5", got[0].Multiplier)
	assert.Equal(t, "ok", m.State().Message.Body)
}
