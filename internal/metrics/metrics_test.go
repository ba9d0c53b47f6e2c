package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/notes/{id}", "404"))

	ObserveRequest("GET", "/api/notes/{id}", http.StatusNotFound, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/notes/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestObserveRequestUnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	ObserveRequest("GET", "", http.StatusNotFound, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestAuthAttempt(t *testing.T) {
	okBefore := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", ResultSuccess))
	failBefore := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", ResultFailure))

	AuthAttempt("login", true)
	AuthAttempt("login", false)
	AuthAttempt("login", false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", ResultSuccess)))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues("login", ResultFailure)))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Init()
	NoteOperation("create")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `note_operations_total{operation="create"}`)
}
