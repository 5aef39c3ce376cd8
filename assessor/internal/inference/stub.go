package inference

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
)

// StubMetrics are the model metrics served by the stub.
var StubMetrics = ModelMetrics{
	Algorithm: "Logistic Regression",
	Accuracy:  0.7263,
	Precision: 0.7488,
	Recall:    0.6805,
	F1Score:   0.7130,
	ROCAUC:    0.7912,
	ConfusionMatrix: ConfusionMatrix{
		TN: 5408,
		FP: 1597,
		FN: 2235,
		TP: 4760,
	},
}

// Stub is a stand-in for the inference service used in local runs and tests.
// It scores requests with a fixed logistic formula, not the trained model.
type Stub struct {
	logger *zap.Logger
}

// NewStubHandler returns a router serving /api/predict and /api/model-metrics.
func NewStubHandler(logger *zap.Logger) http.Handler {
	s := &Stub{logger: logger}

	router := mux.NewRouter()
	router.HandleFunc(predictPath, s.Predict).Methods(http.MethodPost)
	router.HandleFunc(modelMetricsPath, s.ModelMetrics).Methods(http.MethodGet)
	return router
}

func (s *Stub) Predict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	if req.Height <= 0 {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "float division by zero"})
		return
	}

	bmi := risk.BMI(req.Weight, req.Height)
	probability := risk.Round2(StubScore(&req, bmi) * 100)

	resp := Prediction{
		Probability: probability,
		BMI:         bmi,
		RiskResult:  "Low Risk",
	}
	if probability > 50 {
		resp.Prediction = 1
		resp.RiskResult = "High Risk"
	}

	s.logger.Info("Stub prediction",
		zap.Float64("age", req.Age),
		zap.Int("ap_hi", req.APHi),
		zap.Float64("probability", probability),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Stub) ModelMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StubMetrics)
}

// StubScore is the stub's probability in [0,1].
func StubScore(req *PredictRequest, bmi float64) float64 {
	z := -5.0 +
		0.06*req.Age +
		0.035*float64(req.APHi-120) +
		0.02*float64(req.APLo-80) +
		0.45*float64(req.Cholesterol-1) +
		0.15*float64(req.Gluc-1) +
		0.04*(bmi-25)
	if req.Smoke {
		z += 0.15
	}
	if req.Alco {
		z += 0.1
	}
	if req.Active {
		z -= 0.25
	}
	return 1 / (1 + math.Exp(-z))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
