package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/form"
	"github.com/rgehrsitz/calcform/internal/validation"
)

// FormInput is a form filled in ahead of time, used for headless submission
type FormInput struct {
	Multiplier string           `yaml:"multiplier"`
	Divider    string           `yaml:"divider"`
	Checked    bool             `yaml:"checked"`
	Years      map[int][]string `yaml:"years"`
}

// InputParser handles parsing of form input files
type InputParser struct {
	catalog domain.Catalog
}

// NewInputParser creates a parser validating against catalog
func NewInputParser(catalog domain.Catalog) *InputParser {
	return &InputParser{catalog: catalog}
}

// LoadFromFile loads a form input from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*FormInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML form input
func (ip *InputParser) Parse(data []byte) (*FormInput, error) {
	var input FormInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("form validation failed: %w", err)
	}
	return &input, nil
}

// ValidateInput applies the same acceptance rules as interactive editing
func (ip *InputParser) ValidateInput(input *FormInput) error {
	if !validation.IsAcceptable(input.Multiplier) {
		return &domain.InvalidFieldError{Field: "multiplier"}
	}
	if !validation.IsAcceptable(input.Divider) {
		return &domain.InvalidFieldError{Field: "divider"}
	}

	if len(input.Years) > domain.MaxSelectedYears {
		return fmt.Errorf("at most %d years can be selected, got %d", domain.MaxSelectedYears, len(input.Years))
	}
	for _, year := range input.SortedYears() {
		if !ip.catalog.Contains(year) {
			return fmt.Errorf("year %d is not one of %v", year, ip.catalog.Years())
		}
		values := input.Years[year]
		if len(values) > domain.MonthsPerYear {
			return fmt.Errorf("year %d has %d values, at most %d allowed", year, len(values), domain.MonthsPerYear)
		}
		for m, v := range values {
			if !validation.IsAcceptable(v) {
				return domain.NewInvalidMonthError(year, m+1)
			}
		}
	}
	return nil
}

// SortedYears returns the input years in ascending order
func (input *FormInput) SortedYears() []int {
	years := make([]int, 0, len(input.Years))
	for y := range input.Years {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Apply feeds the input through the store's transitions. Missing months
// stay empty; an absent years key keeps the store's selection.
func (input *FormInput) Apply(store *form.Store) {
	catalog := store.Catalog()

	store.Dispatch(form.SetMultiplier{Text: input.Multiplier})
	store.Dispatch(form.SetDivider{Text: input.Divider})
	store.Dispatch(form.SetChecked{Checked: input.Checked})

	if input.Years == nil {
		return
	}
	years := input.SortedYears()
	store.Dispatch(form.SetSelectedYears{Years: years})
	for _, y := range years {
		for m, v := range input.Years[y] {
			store.Dispatch(form.SetValue{ValueData: domain.ValueData{
				YearIndex:  catalog.Index(y),
				MonthIndex: m,
				Text:       v,
			}})
		}
	}
}
