package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplelens/internal/config"
	"peoplelens/internal/testkit"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func newTestServer(t *testing.T) *Server {
	t.Helper()

	kit := testkit.NewTestKit()
	bundle, err := kit.Bundle()
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: "test"},
		Charts: config.ChartConfig{RenderLimit: 2, RatePerSec: 1000, Burst: 1000},
	}

	server, err := NewServer(cfg, bundle)
	require.NoError(t, err)
	return server
}

func doGet(t *testing.T, handler http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestDashboardIndexRendersFullPage(t *testing.T) {
	server := newTestServer(t)

	rec := doGet(t, server.Router(), "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "PeopleLens")
	assert.Contains(t, body, "Attrition Model")
	for _, dept := range server.engine.Departments() {
		assert.Contains(t, body, dept)
	}
}

func TestDashboardFragmentIsPartial(t *testing.T) {
	server := newTestServer(t)

	rec := doGet(t, server.Router(), "/fragments/dashboard?filter=1&departments=Sales",
		map[string]string{"HX-Request": "true"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Attrition Rate")
	assert.NotContains(t, body, "<!DOCTYPE html>")
	assert.NotContains(t, body, "<form")
}

func TestDashboardEmptySelectionShowsNotice(t *testing.T) {
	server := newTestServer(t)

	rec := doGet(t, server.Router(), "/fragments/dashboard?filter=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No employees match")
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doGet(t, server.Router(), "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
	assert.Greater(t, payload["rows"].(float64), 0.0)
}

func TestChartEndpointServesPNG(t *testing.T) {
	server := newTestServer(t)

	rec := doGet(t, server.Router(), "/charts/importance", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.GreaterOrEqual(t, rec.Body.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, rec.Body.Bytes()[:len(pngMagic)])
}

func TestChartEndpointEmptySelectionReturnsNoContent(t *testing.T) {
	server := newTestServer(t)

	rec := doGet(t, server.Router(), "/charts/departments?filter=1", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestGroupChartUnknownDimension(t *testing.T) {
	server := newTestServer(t)

	rec := doGet(t, server.Router(), "/charts/groups/shoe_size", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestChartRateLimitExhaustion(t *testing.T) {
	kit := testkit.NewTestKit()
	bundle, err := kit.Bundle()
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: "test"},
		Charts: config.ChartConfig{RenderLimit: 1, RatePerSec: 0.001, Burst: 1},
	}
	server, err := NewServer(cfg, bundle)
	require.NoError(t, err)

	first := doGet(t, server.Router(), "/charts/importance", nil)
	require.Equal(t, http.StatusOK, first.Code)

	second := doGet(t, server.Router(), "/charts/importance", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
