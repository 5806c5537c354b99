package encoder

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/calcform/internal/domain"
)

var catalog = domain.NewCatalog(2024)

func TestEncode_SingleYear(t *testing.T) {
	state := domain.NewFormState(catalog)
	state.Multiplier = "3,5"
	state.Divider = "2"
	state.Values[catalog.Index(2024)][0] = "10,25"

	payload, err := Encode(state, catalog)
	require.NoError(t, err)

	want := Payload{
		{"multiplier", "3.5"},
		{"divider", "2"},
		{"year1", "2024"},
		{"values1", "10.25"},
	}
	for i := 1; i < domain.MonthsPerYear; i++ {
		want = append(want, Pair{"values1", ""})
	}
	assert.Equal(t, want, payload)
}

func TestEncode_MultipleYearsKeepOrder(t *testing.T) {
	state := domain.NewFormState(catalog)
	state.Multiplier = "1"
	state.Divider = "1"
	state.SelectedYears = []int{2022, 2025}
	state.Values[catalog.Index(2022)][11] = "12"
	state.Values[catalog.Index(2025)][0] = "0,5"

	payload, err := Encode(state, catalog)
	require.NoError(t, err)

	assert.Equal(t, []string{"2022"}, payload.Values("year1"))
	assert.Equal(t, []string{"2025"}, payload.Values("year2"))
	assert.Empty(t, payload.Values("year3"))

	v1 := payload.Values("values1")
	require.Len(t, v1, 12)
	assert.Equal(t, "12", v1[11])

	v2 := payload.Values("values2")
	require.Len(t, v2, 12)
	assert.Equal(t, "0.5", v2[0])

	// year2 must come after all of year1's values
	var keys []string
	for _, p := range payload {
		keys = append(keys, p.Key)
	}
	assert.Equal(t, "year2", keys[2+1+12])
}

func TestEncode_NoYears(t *testing.T) {
	state := domain.NewFormState(catalog)
	state.Multiplier = "1"
	state.Divider = "1"
	state.SelectedYears = nil

	payload, err := Encode(state, catalog)
	require.NoError(t, err)
	assert.Len(t, payload, 2)
}

func TestEncode_InvalidFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.FormState)
		wantMsg string
	}{
		{"multiplier", func(s *domain.FormState) { s.Multiplier = "abc" }, "Wrong multiplier"},
		{"divider", func(s *domain.FormState) { s.Divider = "1.2.3" }, "Wrong divider"},
		{"month", func(s *domain.FormState) { s.Values[catalog.Index(2024)][2] = "x" }, "Wrong value for year 2024 month 3"},
		{"year outside catalog", func(s *domain.FormState) { s.SelectedYears = []int{2030} }, "Wrong year 2030"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.NewFormState(catalog)
			state.Multiplier = "1"
			state.Divider = "1"
			tt.mutate(&state)

			payload, err := Encode(state, catalog)
			assert.Nil(t, payload, "no partial payload on failure")
			require.Error(t, err)

			var fieldErr *domain.InvalidFieldError
			assert.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestPayloadEncode(t *testing.T) {
	p := Payload{{"multiplier", "3.5"}, {"values1", ""}, {"values1", "a b&c"}}

	body := p.Encode()
	assert.Equal(t, "multiplier=3.5&values1=&values1=a+b%26c", body)

	parsed, err := url.ParseQuery(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "a b&c"}, parsed["values1"])
}
