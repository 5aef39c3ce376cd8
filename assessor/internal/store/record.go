package store

import (
	"time"

	"github.com/Krimson/cardio-risk/assessor/internal/risk"
)

// MaxHistory - максимальное число записей в выдаче истории.
const MaxHistory = 50

// PredictionRecord - одна сохранённая оценка.
type PredictionRecord struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	Age              int       `json:"age"`
	Height           float64   `json:"height"`
	Weight           float64   `json:"weight"`
	Gender           string    `json:"gender"`
	SystolicBP       int       `json:"systolic_bp"`
	DiastolicBP      int       `json:"diastolic_bp"`
	Cholesterol      string    `json:"cholesterol"`
	Glucose          string    `json:"glucose"`
	Smoking          bool      `json:"smoking"`
	Alcohol          bool      `json:"alcohol"`
	PhysicalActivity bool      `json:"physical_activity"`
	BMI              float64   `json:"bmi"`
	RiskResult       string    `json:"risk_result"`
	Probability      float64   `json:"probability"`
}

// NewPredictionRecord раскладывает параметры и результат оценки в плоскую запись.
func NewPredictionRecord(id string, createdAt time.Time, p risk.HealthParameters, bmi float64, riskResult string, probability float64) *PredictionRecord {
	return &PredictionRecord{
		ID:               id,
		CreatedAt:        createdAt,
		Age:              p.Age,
		Height:           p.Height,
		Weight:           p.Weight,
		Gender:           string(p.Gender),
		SystolicBP:       p.SystolicBP,
		DiastolicBP:      p.DiastolicBP,
		Cholesterol:      string(p.Cholesterol),
		Glucose:          string(p.Glucose),
		Smoking:          p.Smokes,
		Alcohol:          p.DrinksAlcohol,
		PhysicalActivity: p.PhysicallyActive,
		BMI:              bmi,
		RiskResult:       riskResult,
		Probability:      probability,
	}
}

// ClampLimit ограничивает запрошенный размер выдачи диапазоном 1..MaxHistory.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxHistory {
		return MaxHistory
	}
	return limit
}
