package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsTransitionsAndExpiry(t *testing.T) {
	r := NewRecorder("marketplace")
	r.ApplicationTransition("", "pending")
	r.ApplicationTransition("pending", "accepted")
	r.ApplicationTransition("pending", "accepted")
	r.CampaignsExpired(3)
	r.CampaignsExpired(0)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("none", "pending")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.transitions.WithLabelValues("pending", "accepted")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.expiredCampaign))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := NewRecorder("marketplace")
	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/v1/campaigns/{campaign_id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.Handle("/metrics", r.Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/campaigns/abc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("/v1/campaigns/{campaign_id}", http.MethodGet, "418")))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marketplace_http_requests_total")
}
