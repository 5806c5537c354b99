package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVSummarizer implements the one-row CSV summary of a calculation
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Endpoint", "Years", "Status", "Title", "Body"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	years := make([]string, len(result.Years))
	for i, y := range result.Years {
		years[i] = strconv.Itoa(y)
	}
	row := []string{
		result.Endpoint,
		strings.Join(years, " "),
		result.Status,
		result.Title,
		result.Body,
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
