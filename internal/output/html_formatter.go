package output

import (
	"bytes"
	_ "embed"
	"html/template"
)

// HTMLFormatter produces a standalone HTML page for a calculation
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/result.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("result").Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(result *Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
