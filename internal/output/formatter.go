package output

import (
	"slices"
	"strings"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/encoder"
)

// Result is the record of one submitted calculation
type Result struct {
	Endpoint string          `json:"endpoint"`
	Years    []int           `json:"years"`
	Status   string          `json:"status"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Fields   encoder.Payload `json:"fields,omitempty"`
}

// NewResult builds the record for msg. payload may be nil when encoding
// failed before anything was sent.
func NewResult(endpoint string, state domain.FormState, payload encoder.Payload, msg *domain.Message) *Result {
	r := &Result{
		Endpoint: endpoint,
		Years:    slices.Clone(state.SelectedYears),
		Fields:   payload,
	}
	if msg != nil {
		r.Status = msg.Kind.String()
		r.Title = msg.Title
		r.Body = msg.Body
	}
	return r
}

// Failed reports whether the calculation ended in an error message
func (r *Result) Failed() bool {
	return r.Status == domain.MessageError.String()
}

// Formatter renders a Result
type Formatter interface {
	Name() string
	Format(result *Result) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(result *Result) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *Result) ([]byte, error) { return f.F(result) }

var formatters = []Formatter{
	TextFormatter{},
	JSONFormatter{},
	CSVSummarizer{},
	HTMLFormatter{},
}

var formatAliases = map[string]string{
	"console": "text",
	"plain":   "text",
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for _, f := range formatters {
		names = append(names, f.Name())
	}
	return names
}

// AvailableFormatAliases lists the accepted alternative names
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for a := range formatAliases {
		aliases = append(aliases, a)
	}
	slices.Sort(aliases)
	return aliases
}
