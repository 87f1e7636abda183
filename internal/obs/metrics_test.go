package obs

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentTransport_CountsRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)
	c := &http.Client{Transport: m.InstrumentTransport(http.DefaultTransport)}

	for i := 0; i < 2; i++ {
		resp, err := c.Get(srv.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("418", "get")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestTransition_Increments(t *testing.T) {
	m := NewClientMetrics(prometheus.NewRegistry())

	m.Transition("login")
	m.Transition("login")
	m.Transition("logout")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("login")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("logout")))
}

func TestWriteText_DumpsFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)
	m.Transition("hydrated")

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	assert.Contains(t, buf.String(), `sweetshop_session_transitions_total{transition="hydrated"} 1`)
}
