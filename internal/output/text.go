package output

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TextFormatter prints the response body the way the message panel shows it
type TextFormatter struct{}

func (TextFormatter) Name() string { return "text" }

func (TextFormatter) Format(result *Result) ([]byte, error) {
	var buf bytes.Buffer
	if result.Failed() {
		fmt.Fprintf(&buf, "%s: %s\n", result.Title, result.Body)
		return buf.Bytes(), nil
	}
	fmt.Fprintln(&buf, result.Body)
	return buf.Bytes(), nil
}

// JSONFormatter produces the full record as indented JSON
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result *Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
