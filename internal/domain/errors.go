package domain

import "fmt"

// InvalidFieldError reports a form field that cannot be parsed as a number
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return "Wrong " + e.Field
}

// NewInvalidMonthError reports a month value that cannot be encoded.
// month is 1-based.
func NewInvalidMonthError(year, month int) error {
	return &InvalidFieldError{Field: fmt.Sprintf("value for year %d month %d", year, month)}
}

// RequestFailedError is returned when the calculation endpoint answers with a
// non-success status. Message is the response body, or the status reason
// phrase when the body is empty.
type RequestFailedError struct {
	StatusCode int
	Message    string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure where no response was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
