package calculation

import (
	"context"

	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/encoder"
	"github.com/rgehrsitz/calcform/internal/logging"
)

const (
	// ResultTitle is the message title for both outcomes of a calculation
	ResultTitle = "Calculation result"

	progressTitle = "Message"
	progressBody  = "Calculating..."
)

// Submitter sends an encoded payload and returns the response text
type Submitter interface {
	Submit(ctx context.Context, payload encoder.Payload) (string, error)
}

// Runner encodes a form snapshot, submits it and turns the outcome into
// a message for the panel.
type Runner struct {
	Submitter Submitter
	Catalog   domain.Catalog
	Logger    logging.Logger
}

// NewRunner creates a runner with a no-op logger
func NewRunner(s Submitter, catalog domain.Catalog) *Runner {
	return &Runner{
		Submitter: s,
		Catalog:   catalog,
		Logger:    logging.NopLogger{},
	}
}

// SetLogger sets the logger; nil selects a no-op logger
func (r *Runner) SetLogger(l logging.Logger) {
	if l == nil {
		l = logging.NopLogger{}
	}
	r.Logger = l
}

// ProgressMessage is shown while a calculation is in flight
func ProgressMessage() *domain.Message {
	return &domain.Message{Kind: domain.MessageInfo, Title: progressTitle, Body: progressBody}
}

// Start runs one calculation for state. It never fails: every error is
// folded into an error-kind message. Encoding problems are reported before
// any request is made.
func (r *Runner) Start(ctx context.Context, state domain.FormState) *domain.Message {
	msg, _ := r.Run(ctx, state)
	return msg
}

// Run is Start that also returns the payload it submitted. The payload is
// nil when encoding failed and nothing was sent.
func (r *Runner) Run(ctx context.Context, state domain.FormState) (*domain.Message, encoder.Payload) {
	payload, err := encoder.Encode(state, r.Catalog)
	if err != nil {
		return r.failed(err), nil
	}
	r.Logger.Debugf("encoded %d fields for years %v", len(payload), state.SelectedYears)

	text, err := r.Submitter.Submit(ctx, payload)
	if err != nil {
		return r.failed(err), payload
	}
	return &domain.Message{Kind: domain.MessageInfo, Title: ResultTitle, Body: text}, payload
}

func (r *Runner) failed(err error) *domain.Message {
	r.Logger.Warnf("calculation failed: %v", err)
	return &domain.Message{Kind: domain.MessageError, Title: ResultTitle, Body: err.Error()}
}
