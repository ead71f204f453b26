package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestWithMetrics_LabelsByRoutePattern(t *testing.T) {
	h, ts, _ := newTestHandler(t, 0)
	ts.items.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(itemFixture(), nil).Times(2)
	router := h.Init()

	serve(router, http.MethodGet, "/items/1", "")
	serve(router, http.MethodGet, "/items/2", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(h.metrics.requests.WithLabelValues("GET", "/items/{id}", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(h.metrics.durations))
}

func TestWithMetrics_UnmatchedRoute(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)

	serve(h.Init(), http.MethodGet, "/does/not/exist", "")

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.requests.WithLabelValues("GET", unmatchedRoute, "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.problems.WithLabelValues(testProblemBase+"not-found")))
}

func TestWithMetrics_ImplicitStatus(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	h.withMetrics(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.requests.WithLabelValues("GET", unmatchedRoute, "200")))
}
