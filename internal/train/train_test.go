package train

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mateusmacedo/train-booking/internal/train/domain"
	"github.com/mateusmacedo/train-booking/internal/train/infrastructure"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/zaplogger/adapter"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := zapAdapter.NewZapAppLoggerFrom(zap.NewNop())
	slice := NewTrainSlice(infrastructure.NewInMemoryTrainRepository(logger), pkgInfra.GenerateUUID, logger)

	router := chi.NewRouter()
	slice.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func trainPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":           "Test Train",
		"route":          uuid.NewString(),
		"departureTime":  "2026-06-01T08:00:00Z",
		"arrivalTime":    "2026-06-01T12:00:00Z",
		"availableSeats": 100,
		"availableDates": []map[string]interface{}{
			{"date": "2026-06-01T08:00:00Z", "availableSeats": 100, "seatsBooked": 0},
		},
	}
}

func TestCreateAndGetTrain(t *testing.T) {
	router := setupRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/trains", trainPayload())
	require.Equal(t, http.StatusCreated, rr.Code)

	var created domain.Train
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.Len(t, created.AvailableDates, 1)
	assert.Equal(t, "2026-06-01", created.AvailableDates[0].Date.Format("2006-01-02"))

	rr = doJSON(t, router, http.MethodGet, "/trains/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var fetched domain.Train
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, "Test Train", fetched.Name)
	assert.Equal(t, 100, fetched.AvailableDates[0].AvailableSeats)
}

func TestCreateTrainValidation(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name    string
		mutate  func(p map[string]interface{})
		message string
	}{
		{"missing name", func(p map[string]interface{}) { delete(p, "name") }, "name is required"},
		{"missing route", func(p map[string]interface{}) { delete(p, "route") }, "route is required"},
		{"malformed route", func(p map[string]interface{}) { p["route"] = "abc" }, "Invalid route ID format"},
		{"overbooked record", func(p map[string]interface{}) {
			p["availableDates"] = []map[string]interface{}{{"date": "2026-06-01T00:00:00Z", "availableSeats": 1, "seatsBooked": 2}}
		}, "availableDates[0] must satisfy 0 <= seatsBooked <= availableSeats"},
		{"duplicate day", func(p map[string]interface{}) {
			p["availableDates"] = []map[string]interface{}{
				{"date": "2026-06-01T00:00:00Z", "availableSeats": 1},
				{"date": "2026-06-01T18:00:00Z", "availableSeats": 1},
			}
		}, "availableDates[1] duplicates 2026-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := trainPayload()
			tt.mutate(payload)

			rr := doJSON(t, router, http.MethodPost, "/trains", payload)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, rr.Body.String())
		})
	}
}

func TestUpdateAndDeleteTrain(t *testing.T) {
	router := setupRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/trains", trainPayload())
	require.Equal(t, http.StatusCreated, rr.Code)
	var created domain.Train
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, router, http.MethodPut, "/trains/"+created.ID, map[string]interface{}{"name": "Night Train"})
	require.Equal(t, http.StatusOK, rr.Code)
	var updated domain.Train
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Night Train", updated.Name)
	assert.Len(t, updated.AvailableDates, 1)

	rr = doJSON(t, router, http.MethodDelete, "/trains/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Train successfully deleted"}`, rr.Body.String())

	rr = doJSON(t, router, http.MethodGet, "/trains/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Train not found"}`, rr.Body.String())
}
