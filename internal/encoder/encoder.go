package encoder

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/validation"
)

// ContentType is the media type of an encoded payload
const ContentType = "application/x-www-form-urlencoded"

// Pair is a single form field
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Payload is an ordered list of form fields. Unlike url.Values it keeps
// insertion order, so repeated keys stay in calendar order on the wire.
type Payload []Pair

// Add appends a field
func (p *Payload) Add(key, value string) {
	*p = append(*p, Pair{Key: key, Value: value})
}

// Values returns every value stored under key, in order
func (p Payload) Values(key string) []string {
	var out []string
	for _, pair := range p {
		if pair.Key == key {
			out = append(out, pair.Value)
		}
	}
	return out
}

// Encode renders the payload as an application/x-www-form-urlencoded body
func (p Payload) Encode() string {
	var b strings.Builder
	for i, pair := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

// Encode converts the form state into a request payload.
//
// multiplier and divider come first, then for every selected year at
// position i (1-based) a yearN field followed by twelve valuesN fields.
// Any field that cannot be parsed fails the whole encode with an
// *domain.InvalidFieldError and no payload.
func Encode(state domain.FormState, catalog domain.Catalog) (Payload, error) {
	var payload Payload

	if err := addNumeric(&payload, "multiplier", state.Multiplier); err != nil {
		return nil, err
	}
	if err := addNumeric(&payload, "divider", state.Divider); err != nil {
		return nil, err
	}

	for i, year := range state.SelectedYears {
		slot := catalog.Index(year)
		if slot < 0 || slot >= len(state.Values) {
			return nil, &domain.InvalidFieldError{Field: "year " + strconv.Itoa(year)}
		}

		n := strconv.Itoa(i + 1)
		payload.Add("year"+n, strconv.Itoa(year))

		for m, text := range state.Values[slot] {
			value, ok := validation.Canonical(text)
			if !ok {
				return nil, domain.NewInvalidMonthError(year, m+1)
			}
			payload.Add("values"+n, value)
		}
	}

	return payload, nil
}

func addNumeric(p *Payload, name, text string) error {
	value, ok := validation.Canonical(text)
	if !ok {
		return &domain.InvalidFieldError{Field: name}
	}
	p.Add(name, value)
	return nil
}
