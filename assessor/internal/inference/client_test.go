package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
)

func scenario() risk.HealthParameters {
	return risk.HealthParameters{
		Age:         45,
		Height:      170,
		Weight:      80,
		Gender:      risk.GenderMale,
		SystolicBP:  150,
		DiastolicBP: 95,
		Cholesterol: risk.LevelAboveNormal,
		Glucose:     risk.LevelNormal,
		Smokes:      true,
	}
}

func TestNewPredictRequest_EncodesCodes(t *testing.T) {
	req, err := NewPredictRequest(scenario())
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":45,"height":170,"weight":80,"gender":1,"ap_hi":150,"ap_lo":95,
		"cholesterol":2,"gluc":1,"smoke":true,"alco":false,"active":false}`, string(data))

	p := scenario()
	p.Gender = ""
	_, err = NewPredictRequest(p)
	assert.Error(t, err)
}

func TestClient_PredictAgainstStub(t *testing.T) {
	srv := httptest.NewServer(NewStubHandler(zap.NewNop()))
	defer srv.Close()

	client := NewClient(srv.URL, 0, zap.NewNop())
	got, err := client.Predict(context.Background(), scenario())
	require.NoError(t, err)

	assert.Equal(t, 27.68, got.BMI)
	assert.GreaterOrEqual(t, got.Probability, 0.0)
	assert.LessOrEqual(t, got.Probability, 100.0)
	if got.Probability > 50 {
		assert.Equal(t, "High Risk", got.RiskResult)
	} else {
		assert.Equal(t, "Low Risk", got.RiskResult)
	}
}

func TestClient_PredictSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, predictPath, r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "'ap_hi'"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, zap.NewNop()).Predict(context.Background(), scenario())

	var inferr *Error
	require.ErrorAs(t, err, &inferr)
	assert.Equal(t, http.StatusInternalServerError, inferr.StatusCode)
	assert.Equal(t, "'ap_hi'", inferr.Message)
}

func TestClient_PredictGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, zap.NewNop()).Predict(context.Background(), scenario())

	var inferr *Error
	require.ErrorAs(t, err, &inferr)
	assert.Equal(t, "Failed to get prediction", inferr.Message)
}

func TestClient_PredictUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0, zap.NewNop()).Predict(context.Background(), scenario())

	var inferr *Error
	require.ErrorAs(t, err, &inferr)
	assert.Equal(t, "Failed to get prediction", inferr.Message)
	assert.Error(t, errors.Unwrap(inferr))
}

func TestClient_ModelMetrics(t *testing.T) {
	srv := httptest.NewServer(NewStubHandler(zap.NewNop()))
	defer srv.Close()

	got, err := NewClient(srv.URL, 0, zap.NewNop()).ModelMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StubMetrics, *got)
	assert.Equal(t, 14000, got.ConfusionMatrix.Total())
}

func TestClient_ModelMetricsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0, zap.NewNop()).ModelMetrics(context.Background())
	assert.ErrorIs(t, err, ErrMetricsUnavailable)
}

func TestStub_RejectsZeroHeight(t *testing.T) {
	srv := httptest.NewServer(NewStubHandler(zap.NewNop()))
	defer srv.Close()

	p := scenario()
	p.Height = 0
	_, err := NewClient(srv.URL, 0, zap.NewNop()).Predict(context.Background(), p)

	var inferr *Error
	require.ErrorAs(t, err, &inferr)
	assert.Equal(t, "float division by zero", inferr.Message)
}
