package trains

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func setupTrainTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/trains")
	SetupTrainRoutes(group, NewController(svc))
	return engine
}

func searchTrains(t *testing.T, engine *gin.Engine, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	req := httptest.NewRequest(http.MethodPost, "/trains/search", &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestSearchTrainsEndpoint(t *testing.T) {
	engine := setupTrainTestRouter(newTestService(NewMemoryCatalog()))

	rec, env := searchTrains(t, engine, testSearchRequest())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Trains found successfully", env.Message)

	var trains []Train
	require.NoError(t, json.Unmarshal(env.Data, &trains))
	require.Len(t, trains, 5)
	assert.Equal(t, "Rajdhani Express", trains[0].TrainName)
	assert.Equal(t, "New Delhi", trains[0].From)
	assert.Equal(t, "Howrah", trains[0].To)
}

func TestSearchTrainsEndpointValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *SearchRequest)
	}{
		{"missing origin", func(r *SearchRequest) { r.From = "" }},
		{"missing destination", func(r *SearchRequest) { r.To = "" }},
		{"impossible journey date", func(r *SearchRequest) { r.JourneyDate = "2025-13-40" }},
		{"zero passengers", func(r *SearchRequest) { r.Passengers = 0 }},
		{"too many passengers", func(r *SearchRequest) { r.Passengers = 7 }},
		{"unknown class", func(r *SearchRequest) { r.Class = "4A" }},
		{"unknown quota", func(r *SearchRequest) { r.Quota = "XX" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := setupTrainTestRouter(newTestService(NewMemoryCatalog()))

			req := testSearchRequest()
			tt.mutate(&req)

			rec, env := searchTrains(t, engine, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "Validation failed", env.Error)
			assert.NotEmpty(t, env.Errors)
		})
	}
}

func TestSearchTrainsEndpointSourceFailure(t *testing.T) {
	engine := setupTrainTestRouter(newTestService(&failingCatalog{err: assert.AnError}))

	rec, env := searchTrains(t, engine, testSearchRequest())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Search failed. Please try again.", env.Error)
}

func TestGetTrainEndpoint(t *testing.T) {
	engine := setupTrainTestRouter(newTestService(NewMemoryCatalog()))

	req := httptest.NewRequest(http.MethodGet, "/trains/12273", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)

	var train Train
	require.NoError(t, json.Unmarshal(env.Data, &train))
	assert.Equal(t, "Duronto Express", train.TrainName)
	require.NotNil(t, train.Classes["SL"].WaitlistCount)
	assert.Equal(t, 45, *train.Classes["SL"].WaitlistCount)
}

func TestGetTrainEndpointNotFound(t *testing.T) {
	engine := setupTrainTestRouter(newTestService(NewMemoryCatalog()))

	req := httptest.NewRequest(http.MethodGet, "/trains/99999", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Train not found", env.Error)
}
