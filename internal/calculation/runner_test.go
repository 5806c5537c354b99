package calculation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/calcform/internal/client"
	"github.com/rgehrsitz/calcform/internal/domain"
	"github.com/rgehrsitz/calcform/internal/encoder"
	"github.com/rgehrsitz/calcform/internal/form"
	"github.com/rgehrsitz/calcform/internal/logging"
)

var catalog = domain.NewCatalog(2024)

type stubSubmitter struct {
	calls int
	text  string
	err   error
}

func (s *stubSubmitter) Submit(_ context.Context, _ encoder.Payload) (string, error) {
	s.calls++
	return s.text, s.err
}

func validState() domain.FormState {
	s := domain.NewFormState(catalog)
	s.Multiplier = "3,5"
	s.Divider = "2"
	s.Checked = true
	return s
}

func TestNewRunner(t *testing.T) {
	r := NewRunner(&stubSubmitter{}, catalog)
	assert.IsType(t, logging.NopLogger{}, r.Logger)

	r.SetLogger(nil)
	assert.IsType(t, logging.NopLogger{}, r.Logger, "Should fall back to no-op logger")
}

func TestStart_InvalidMultiplierSkipsNetwork(t *testing.T) {
	sub := &stubSubmitter{text: "never"}
	r := NewRunner(sub, catalog)

	state := validState()
	state.Multiplier = "abc"

	msg := r.Start(context.Background(), state)

	assert.Equal(t, 0, sub.calls, "no request may be made")
	assert.Equal(t, domain.MessageError, msg.Kind)
	assert.Equal(t, ResultTitle, msg.Title)
	assert.Contains(t, msg.Body, "multiplier")
}

func TestStart_SubmitterError(t *testing.T) {
	sub := &stubSubmitter{err: &domain.NetworkError{Err: errors.New("connection refused")}}
	r := NewRunner(sub, catalog)

	msg := r.Start(context.Background(), validState())

	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, domain.MessageError, msg.Kind)
	assert.Equal(t, "connection refused", msg.Body)
}

func TestStart_AgainstServer(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.MessageKind
		wantBody string
	}{
		{"success", http.StatusOK, "42.0", domain.MessageInfo, "42.0"},
		{"failure with body", http.StatusUnprocessableEntity, "bad input", domain.MessageError, "bad input"},
		{"failure without body", http.StatusInternalServerError, "", domain.MessageError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "3.5", r.PostForm.Get("multiplier"))
				assert.Equal(t, "2024", r.PostForm.Get("year1"))
				assert.Len(t, r.PostForm["values1"], domain.MonthsPerYear)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := client.New(srv.URL, client.DefaultEndpoint)
			require.NoError(t, err)

			msg := NewRunner(c, catalog).Start(context.Background(), validState())
			assert.Equal(t, tt.wantKind, msg.Kind)
			assert.Equal(t, ResultTitle, msg.Title)
			assert.Equal(t, tt.wantBody, msg.Body)
		})
	}
}

// Two overlapping runs are independent; whichever result is dispatched last
// is what the panel shows.
func TestStart_LastWriteWins(t *testing.T) {
	var n atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) == 1 {
			<-release
			_, _ = w.Write([]byte("first"))
			return
		}
		_, _ = w.Write([]byte("second"))
	}))
	defer srv.Close()

	c, err := client.New(srv.URL, client.DefaultEndpoint)
	require.NoError(t, err)
	r := NewRunner(c, catalog)

	store := form.NewStore(catalog)
	store.Dispatch(form.SetMessage{Message: ProgressMessage()})

	firstDone := make(chan *domain.Message)
	go func() { firstDone <- r.Start(context.Background(), validState()) }()

	// wait until the first request is parked in the handler
	for n.Load() < 1 {
		runtime.Gosched()
	}

	second := r.Start(context.Background(), validState())
	store.Dispatch(form.SetMessage{Message: second})
	close(release)
	store.Dispatch(form.SetMessage{Message: <-firstDone})

	assert.Equal(t, "first", store.State().Message.Body)
}

func TestRun_ReturnsSubmittedPayload(t *testing.T) {
	sub := &stubSubmitter{text: "42"}
	r := NewRunner(sub, catalog)

	msg, payload := r.Run(context.Background(), validState())

	assert.Equal(t, domain.MessageInfo, msg.Kind)
	assert.Equal(t, "42", msg.Body)
	require.NotNil(t, payload)
	assert.Equal(t, []string{"3.5"}, payload.Values("multiplier"))
	assert.Equal(t, []string{"2024"}, payload.Values("year1"))
	assert.Len(t, payload.Values("values1"), domain.MonthsPerYear)

	// a failed request still reports what was sent
	sub.err = errors.New("boom")
	msg, payload = r.Run(context.Background(), validState())
	assert.Equal(t, domain.MessageError, msg.Kind)
	assert.NotNil(t, payload)
}

func TestRun_EncodeFailureHasNoPayload(t *testing.T) {
	sub := &stubSubmitter{}
	state := validState()
	state.Divider = "x"

	msg, payload := NewRunner(sub, catalog).Run(context.Background(), state)

	assert.Equal(t, domain.MessageError, msg.Kind)
	assert.Nil(t, payload)
	assert.Equal(t, 0, sub.calls)
}
