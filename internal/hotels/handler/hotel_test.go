package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roomledger/internal/hotels/service"
	"roomledger/internal/hotels/validator"
	"roomledger/internal/storage/memory"
	"roomledger/pkg/config"
	"roomledger/pkg/logger"
	"roomledger/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *httprouter.Router {
	store := memory.NewStore()
	cfg := config.Default(logger.Discard())
	svc := service.NewHotelService(store.Hotels(), store.RoomTypes(), validator.NewHotelValidator(cfg.Log), cfg)

	router := httprouter.New()
	NewHotelHandler(svc, cfg.Log).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminFlow(t *testing.T) {
	router := newRouter()

	w := do(router, http.MethodPost, "/api/v1/admin/hotels", `{"name":"Lakeside","location":"Geneva"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data model.Hotel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	w = do(router, http.MethodPost, "/api/v1/admin/room-types",
		`{"hotel_id":"`+created.Data.ID+`","name":"Lake view","price":320,"total_rooms":6}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "inventory_version")

	w = do(router, http.MethodGet, "/api/v1/admin/hotels/id/"+created.Data.ID+"/room-types", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_rooms":6`)

	w = do(router, http.MethodGet, "/api/v1/admin/hotels?limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":1`)
	assert.Contains(t, w.Body.String(), `"limit":5`)
}

func TestAdminErrors(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		expectCode int
	}{
		{name: "bad body", method: http.MethodPost, path: "/api/v1/admin/hotels", body: `{`, expectCode: http.StatusBadRequest},
		{name: "invalid hotel", method: http.MethodPost, path: "/api/v1/admin/hotels", body: `{"name":""}`, expectCode: http.StatusUnprocessableEntity},
		{name: "bad limit", method: http.MethodGet, path: "/api/v1/admin/hotels?limit=ten", expectCode: http.StatusBadRequest},
		{name: "unknown hotel", method: http.MethodGet, path: "/api/v1/admin/hotels/id/65f1c0a2b3d4e5f607182930", expectCode: http.StatusNotFound},
		{name: "malformed id", method: http.MethodGet, path: "/api/v1/admin/hotels/id/xyz/room-types", expectCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectCode, w.Code, w.Body.String())
		})
	}
}
