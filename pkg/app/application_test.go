package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"roomledger/pkg/config"
	apperrors "roomledger/pkg/errors"
	httputil "roomledger/pkg/http"
	"roomledger/pkg/logger"
	"roomledger/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/ping", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		_ = httputil.WriteSuccess(w, logger.RequestID(r.Context()))
	})
}

func newTestApp(t *testing.T) *Application {
	t.Helper()
	a := NewApplication(config.Default(logger.Discard()))
	a.SetApp(pingHandler{})
	t.Cleanup(a.Close)
	return a
}

func TestApplicationRoutes(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body httputil.SuccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), body.Data)
}

func TestApplicationUnknownRoute(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeNotFound, body.Code)
}

func TestApplicationHealth(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestReadyReportsFailingDependency(t *testing.T) {
	h := NewHealthHandler(map[string]Check{
		"mongo": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}, logger.Discard())

	router := httprouter.New()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body.Status)
	assert.Equal(t, "ok", body.Dependencies["mongo"])
	assert.Equal(t, "error", body.Dependencies["redis"])
}
