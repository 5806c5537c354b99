package years

import (
	"slices"

	"github.com/rgehrsitz/calcform/internal/domain"
)

// Picker implements the year selection policy behind the year dropdown.
//
// Selection is bounded to domain.MaxSelectedYears. When a new year is added
// to a full selection, the year that was added earliest is evicted. Callers
// always receive the selection in ascending order.
type Picker struct {
	catalog domain.Catalog
	order   []int // insertion order
	open    bool
	focused bool
	cursor  int
}

// NewPicker creates a picker seeded with an existing selection
func NewPicker(catalog domain.Catalog, selected []int) *Picker {
	p := &Picker{catalog: catalog}
	p.Sync(selected)
	return p
}

// Sync replaces the tracked selection. Years already tracked keep their
// insertion position; new ones are appended in ascending order.
func (p *Picker) Sync(selected []int) {
	incoming := slices.Clone(selected)
	slices.Sort(incoming)

	order := make([]int, 0, len(incoming))
	for _, y := range p.order {
		if slices.Contains(incoming, y) {
			order = append(order, y)
		}
	}
	for _, y := range incoming {
		if p.catalog.Contains(y) && !slices.Contains(order, y) {
			order = append(order, y)
		}
	}
	p.order = order
}

// Selected returns the selection in ascending order
func (p *Picker) Selected() []int {
	out := slices.Clone(p.order)
	slices.Sort(out)
	return out
}

// Toggle removes y when selected, otherwise adds it, evicting the earliest
// added year if the selection is full. Years outside the catalog are ignored.
func (p *Picker) Toggle(y int) []int {
	if !p.catalog.Contains(y) {
		return p.Selected()
	}

	if i := slices.Index(p.order, y); i >= 0 {
		p.order = slices.Delete(p.order, i, i+1)
		return p.Selected()
	}

	if len(p.order) >= domain.MaxSelectedYears {
		p.order = p.order[1:]
	}
	p.order = append(slices.Clone(p.order), y)
	return p.Selected()
}

// Clear empties the selection and closes the dropdown
func (p *Picker) Clear() []int {
	p.order = nil
	p.open = false
	return p.Selected()
}

// IsSelected reports whether y is in the selection
func (p *Picker) IsSelected(y int) bool {
	return slices.Contains(p.order, y)
}

// Open shows the dropdown. The picker must hold focus.
func (p *Picker) Open() {
	if p.focused {
		p.open = true
	}
}

// Close hides the dropdown
func (p *Picker) Close() {
	p.open = false
}

// IsOpen reports whether the dropdown is showing
func (p *Picker) IsOpen() bool {
	return p.open
}

// Focus marks the picker as the active widget
func (p *Picker) Focus() {
	p.focused = true
}

// Blur releases focus. The dropdown never outlives focus, so it is closed
// here too.
func (p *Picker) Blur() {
	p.focused = false
	p.open = false
}

// Focused reports whether the picker is the active widget
func (p *Picker) Focused() bool {
	return p.focused
}

// Cursor returns the catalog year under the dropdown cursor
func (p *Picker) Cursor() int {
	years := p.catalog.Years()
	return years[p.cursor]
}

// CursorUp moves the dropdown cursor to the previous catalog year
func (p *Picker) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// CursorDown moves the dropdown cursor to the next catalog year
func (p *Picker) CursorDown() {
	if p.cursor < p.catalog.Len()-1 {
		p.cursor++
	}
}

// Catalog returns the years offered by the dropdown
func (p *Picker) Catalog() domain.Catalog {
	return p.catalog
}
