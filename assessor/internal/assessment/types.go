package assessment

import (
	"time"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
	"github.com/Krimson/cardio-risk/assessor/internal/store"
)

// Assessment is the full result shown after a successful submission.
type Assessment struct {
	ID          string                `json:"id"`
	CreatedAt   time.Time             `json:"created_at"`
	Parameters  risk.HealthParameters `json:"parameters"`
	Prediction  int                   `json:"prediction"`
	RiskResult  string                `json:"risk_result"`
	Probability float64               `json:"probability"`
	BMI         float64               `json:"bmi"`
	BMICategory string                `json:"bmi_category"`

	Tier            risk.Descriptor      `json:"tier"`
	Recommendations risk.Recommendations `json:"recommendations"`

	CholesterolLabel string `json:"cholesterol_label"`
	GlucoseLabel     string `json:"glucose_label"`
}

// ValidationResponse is the body of POST /api/validate.
type ValidationResponse struct {
	Valid      bool             `json:"valid"`
	Violations []risk.Violation `json:"violations"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// ValidationErrorResponse is the 422 body of POST /api/assessments.
type ValidationErrorResponse struct {
	Error      string           `json:"error"`
	Status     int              `json:"status"`
	Violations []risk.Violation `json:"violations"`
}

// HistoryResponse is the body of GET /api/predictions.
type HistoryResponse struct {
	Predictions []*store.PredictionRecord `json:"predictions"`
	Limit       int                       `json:"limit"`
	Count       int                       `json:"count"`
}
