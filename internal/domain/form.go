package domain

import "slices"

// MonthsPerYear is the number of value slots kept for every catalog year
const MonthsPerYear = 12

// MaxSelectedYears bounds how many catalog years can be edited at once
const MaxSelectedYears = 3

// catalogSpan is how many years either side of the current year are offered
const catalogSpan = 2

// Catalog is the fixed, ordered list of years offered for selection.
// It is built once per session and never mutated.
type Catalog struct {
	current int
	years   []int
}

// NewCatalog builds the catalog current-2 … current+2
func NewCatalog(currentYear int) Catalog {
	years := make([]int, 0, 2*catalogSpan+1)
	for y := currentYear - catalogSpan; y <= currentYear+catalogSpan; y++ {
		years = append(years, y)
	}
	return Catalog{current: currentYear, years: years}
}

// Years returns a copy of the catalog years in ascending order
func (c Catalog) Years() []int {
	return slices.Clone(c.years)
}

// Current returns the year the catalog is centered on
func (c Catalog) Current() int {
	return c.current
}

// Len returns the number of catalog slots
func (c Catalog) Len() int {
	return len(c.years)
}

// Index returns the slot of year y, or -1 when y is not offered
func (c Catalog) Index(y int) int {
	return slices.Index(c.years, y)
}

// Contains reports whether y is a catalog year
func (c Catalog) Contains(y int) bool {
	return c.Index(y) >= 0
}

// MessageKind classifies the message panel content
type MessageKind int

const (
	MessageNone MessageKind = iota
	MessageInfo
	MessageError
)

func (k MessageKind) String() string {
	switch k {
	case MessageInfo:
		return "info"
	case MessageError:
		return "error"
	default:
		return "none"
	}
}

// Message is the single-slot notification shown for a calculation
type Message struct {
	Kind  MessageKind
	Title string
	Body  string
}

// ValueData routes a raw month edit to one slot of the values grid
type ValueData struct {
	YearIndex  int
	MonthIndex int
	Text       string
}

// FormState is everything the calculation form holds.
//
// Values has one slot per catalog year, each with exactly MonthsPerYear
// entries; an empty string means no value was entered. SelectedYears is an
// ascending subset of the catalog with at most MaxSelectedYears elements.
type FormState struct {
	Multiplier    string
	Divider       string
	Values        [][MonthsPerYear]string
	Checked       bool
	SelectedYears []int
	Message       *Message
}

// NewFormState returns the initial state for a catalog: nothing entered,
// calculation disabled and only the current year selected.
func NewFormState(catalog Catalog) FormState {
	return FormState{
		Values:        make([][MonthsPerYear]string, catalog.Len()),
		SelectedYears: []int{catalog.Current()},
	}
}

// Clone returns a deep copy that shares no memory with s
func (s FormState) Clone() FormState {
	out := s
	out.Values = slices.Clone(s.Values)
	out.SelectedYears = slices.Clone(s.SelectedYears)
	if s.Message != nil {
		msg := *s.Message
		out.Message = &msg
	}
	return out
}

// Month returns the stored text for a slot, or "" when out of range
func (s FormState) Month(yearIndex, monthIndex int) string {
	if yearIndex < 0 || yearIndex >= len(s.Values) || monthIndex < 0 || monthIndex >= MonthsPerYear {
		return ""
	}
	return s.Values[yearIndex][monthIndex]
}
