package inference

import (
	"fmt"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
)

// PredictRequest is the wire body of POST /api/predict.
type PredictRequest struct {
	Age         float64 `json:"age"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Gender      int     `json:"gender"`
	APHi        int     `json:"ap_hi"`
	APLo        int     `json:"ap_lo"`
	Cholesterol int     `json:"cholesterol"`
	Gluc        int     `json:"gluc"`
	Smoke       bool    `json:"smoke"`
	Alco        bool    `json:"alco"`
	Active      bool    `json:"active"`
}

// NewPredictRequest encodes p with the numeric codes the model was trained on.
func NewPredictRequest(p risk.HealthParameters) (*PredictRequest, error) {
	gender, ok := p.Gender.Code()
	if !ok {
		return nil, fmt.Errorf("unknown gender %q", p.Gender)
	}
	cholesterol, ok := p.Cholesterol.Code()
	if !ok {
		return nil, fmt.Errorf("unknown cholesterol level %q", p.Cholesterol)
	}
	gluc, ok := p.Glucose.Code()
	if !ok {
		return nil, fmt.Errorf("unknown glucose level %q", p.Glucose)
	}

	return &PredictRequest{
		Age:         float64(p.Age),
		Height:      p.Height,
		Weight:      p.Weight,
		Gender:      gender,
		APHi:        p.SystolicBP,
		APLo:        p.DiastolicBP,
		Cholesterol: cholesterol,
		Gluc:        gluc,
		Smoke:       p.Smokes,
		Alco:        p.DrinksAlcohol,
		Active:      p.PhysicallyActive,
	}, nil
}

// Prediction is the response of POST /api/predict.
type Prediction struct {
	Prediction  int     `json:"prediction"`
	RiskResult  string  `json:"risk_result"`
	Probability float64 `json:"probability"` // percent, 0-100
	BMI         float64 `json:"bmi"`
}

// ConfusionMatrix holds the test-set classification counts.
type ConfusionMatrix struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// Total is the number of evaluated samples.
func (m ConfusionMatrix) Total() int {
	return m.TN + m.FP + m.FN + m.TP
}

// ModelMetrics is the response of GET /api/model-metrics. Ratios are in [0,1].
type ModelMetrics struct {
	Algorithm       string          `json:"algorithm"`
	Accuracy        float64         `json:"accuracy"`
	Precision       float64         `json:"precision"`
	Recall          float64         `json:"recall"`
	F1Score         float64         `json:"f1_score"`
	ROCAUC          float64         `json:"roc_auc"`
	ConfusionMatrix ConfusionMatrix `json:"confusion_matrix"`
}

type errorBody struct {
	Error string `json:"error"`
}
