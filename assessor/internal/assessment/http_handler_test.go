package assessment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/inference"
	"github.com/Krimson/cardio-risk/assessor/internal/observability"
	"github.com/Krimson/cardio-risk/assessor/internal/risk"
	"github.com/Krimson/cardio-risk/assessor/internal/store"
)

const scenarioBody = `{
	"age": 45, "height": 170, "weight": 80, "gender": "1",
	"systolic_bp": 150, "diastolic_bp": 95,
	"cholesterol": "2", "glucose": "1",
	"smokes": true, "drinks_alcohol": false, "physically_active": false
}`

func newTestRouter(t *testing.T, upstreamURL string, opts ...Option) *mux.Router {
	t.Helper()
	logger := zap.NewNop()
	client := inference.NewClient(upstreamURL, 2*time.Second, logger)
	svc := NewService(client, observability.NewMetrics(), logger, opts...)

	router := mux.NewRouter()
	NewHTTPHandler(svc, logger).RegisterRoutes(router)
	return router
}

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(inference.NewStubHandler(zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHTTPHandler_CreateAssessment(t *testing.T) {
	stub := newStubServer(t)
	records := &fakeStore{}
	router := newTestRouter(t, stub.URL, WithRecordStore(records))

	rec := doRequest(router, http.MethodPost, "/api/assessments", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result struct {
		ID          string  `json:"id"`
		Probability float64 `json:"probability"`
		BMI         float64 `json:"bmi"`
		Tier        struct {
			Name  string `json:"tier"`
			Label string `json:"label"`
		} `json:"tier"`
		Parameters struct {
			Gender      string `json:"gender"`
			Cholesterol string `json:"cholesterol"`
		} `json:"parameters"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, 27.68, result.BMI)
	assert.Equal(t, risk.Classify(result.Probability).String(), result.Tier.Name)
	assert.Equal(t, risk.Describe(result.Probability).Label, result.Tier.Label)
	assert.Equal(t, "male", result.Parameters.Gender)
	assert.Equal(t, "above-normal", result.Parameters.Cholesterol)
	require.Len(t, records.records, 1)
}

func TestHTTPHandler_CreateAssessmentScenario(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req inference.PredictRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 45.0, req.Age)
		assert.True(t, req.Smoke)
		assert.False(t, req.Active)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction":1,"risk_result":"High Risk","probability":62,"bmi":27.68}`))
	}))
	defer upstream.Close()
	router := newTestRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodPost, "/api/assessments", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 62.0, result.Probability)
	assert.Equal(t, "moderate", result.Tier.Name)
	assert.Equal(t, "Moderate Risk", result.Tier.Label)
}

func TestHTTPHandler_CreateAssessmentValidation(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	body := `{"age": 0, "height": 170, "weight": 80, "gender": "male",
		"systolic_bp": 120, "diastolic_bp": 80, "cholesterol": "normal", "glucose": "normal"}`
	rec := doRequest(router, http.MethodPost, "/api/assessments", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "age", resp.Violations[0].Field)
	assert.Equal(t, risk.ReasonOutOfRange, resp.Violations[0].Reason)
}

func TestHTTPHandler_CreateAssessmentBadBody(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := doRequest(router, http.MethodPost, "/api/assessments", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPHandler_CreateAssessmentUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Model not loaded"}`))
	}))
	defer upstream.Close()
	router := newTestRouter(t, upstream.URL)

	rec := doRequest(router, http.MethodPost, "/api/assessments", scenarioBody)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Model not loaded", resp.Error)
}

func TestHTTPHandler_ValidateParameters(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := doRequest(router, http.MethodPost, "/api/validate", `{"age": 200}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Len(t, resp.Violations, 8)

	rec = doRequest(router, http.MethodPost, "/api/validate", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid": true, "violations": []}`, rec.Body.String())
}

func TestHTTPHandler_ModelMetrics(t *testing.T) {
	stub := newStubServer(t)
	router := newTestRouter(t, stub.URL)

	rec := doRequest(router, http.MethodGet, "/api/model-metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var metrics inference.ModelMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	assert.Equal(t, inference.StubMetrics, metrics)

	stub.Close()
	rec = doRequest(router, http.MethodGet, "/api/model-metrics", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to load model metrics")
}

func TestHTTPHandler_RiskTiers(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := doRequest(router, http.MethodGet, "/api/risk-tiers", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tiers []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiers))
	require.Len(t, tiers, 4)
	assert.Equal(t, "low", tiers[0]["tier"])
	assert.Equal(t, "high", tiers[3]["tier"])
}

func TestHTTPHandler_PredictionsDisabled(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	rec := doRequest(router, http.MethodGet, "/api/predictions", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/predictions/export", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHTTPHandler_PredictionsAndExport(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	params := scenarioParams()
	records := &fakeStore{records: []*store.PredictionRecord{
		store.NewPredictionRecord("b", createdAt.Add(time.Minute), params, 27.68, "High Risk", 62),
		store.NewPredictionRecord("a", createdAt, params, 27.68, "Low Risk", 25),
	}}
	router := newTestRouter(t, "http://127.0.0.1:1", WithRecordStore(records))

	rec := doRequest(router, http.MethodGet, "/api/predictions?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Limit)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "b", resp.Predictions[0].ID)

	rec = doRequest(router, http.MethodGet, "/api/predictions?limit=abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, store.MaxHistory, records.lastLimit)

	rec = doRequest(router, http.MethodGet, "/api/predictions/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exportContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "predictions.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, HistoryExportHeader, rows[0])
	assert.Equal(t, "b", rows[1][0])
	assert.Equal(t, "Above Normal", rows[1][8])
	assert.Equal(t, "Moderate Risk", rows[1][16])
	assert.Equal(t, "Low Risk", rows[2][16])
}
