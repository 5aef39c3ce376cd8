package risk

import "github.com/shopspring/decimal"

// BMI returns weight / height² (kg/m²) rounded to two decimals.
// Zero height yields zero.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	h := decimal.NewFromFloat(heightCm).Div(decimal.NewFromInt(100))
	bmi := decimal.NewFromFloat(weightKg).Div(h.Mul(h))
	return Round2(bmi.InexactFloat64())
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// BMICategory buckets a body-mass index.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// Recommendations is the canned advice shown with an assessment.
type Recommendations struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

var (
	recommendedActions = []string{
		"Consult with a cardiologist for comprehensive evaluation",
		"Monitor blood pressure and cholesterol levels regularly",
		"Adopt a heart-healthy diet low in saturated fats and sodium",
		"Engage in at least 150 minutes of moderate exercise per week",
		"Quit smoking and limit alcohol consumption",
		"Manage stress through relaxation techniques",
		"Take prescribed medications as directed by your doctor",
		"Schedule regular health check-ups",
	}
	preventiveMeasures = []string{
		"Continue maintaining a healthy lifestyle",
		"Regular physical activity and balanced diet",
		"Monitor blood pressure and cholesterol periodically",
		"Avoid smoking and excessive alcohol consumption",
		"Maintain a healthy weight",
		"Schedule annual health check-ups",
		"Stay informed about cardiovascular health",
	}
)

// RecommendationsFor returns a fresh copy of the advice for tier t.
func RecommendationsFor(t Tier) Recommendations {
	if t.Elevated() {
		return Recommendations{Heading: "Recommended Actions", Items: append([]string(nil), recommendedActions...)}
	}
	return Recommendations{Heading: "Preventive Measures", Items: append([]string(nil), preventiveMeasures...)}
}
