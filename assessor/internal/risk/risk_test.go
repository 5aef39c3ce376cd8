package risk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParameters() HealthParameters {
	return HealthParameters{
		Age:              45,
		Height:           170,
		Weight:           80,
		Gender:           GenderMale,
		SystolicBP:       150,
		DiastolicBP:      95,
		Cholesterol:      LevelAboveNormal,
		Glucose:          LevelNormal,
		Smokes:           true,
		DrinksAlcohol:    false,
		PhysicallyActive: false,
	}
}

func TestValidate_ValidRecord(t *testing.T) {
	assert.Empty(t, Validate(validParameters()))
	assert.NoError(t, Check(validParameters()))
}

func TestValidate_RangeBoundaries(t *testing.T) {
	tests := []struct {
		field string
		set   func(p *HealthParameters, v float64)
		b     Bounds
	}{
		{FieldAge, func(p *HealthParameters, v float64) { p.Age = int(v) }, AgeBounds},
		{FieldHeight, func(p *HealthParameters, v float64) { p.Height = v }, HeightBounds},
		{FieldWeight, func(p *HealthParameters, v float64) { p.Weight = v }, WeightBounds},
		{FieldSystolicBP, func(p *HealthParameters, v float64) { p.SystolicBP = int(v) }, SystolicBPBounds},
		{FieldDiastolicBP, func(p *HealthParameters, v float64) { p.DiastolicBP = int(v) }, DiastolicBPBounds},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			for _, v := range []float64{tt.b.Min, tt.b.Max} {
				p := validParameters()
				tt.set(&p, v)
				assert.Empty(t, Validate(p), "value %v should be accepted", v)
			}
			for _, v := range []float64{tt.b.Min - 1, tt.b.Max + 1, 0} {
				p := validParameters()
				tt.set(&p, v)
				got := Validate(p)
				require.Len(t, got, 1, "value %v should be rejected", v)
				assert.Equal(t, tt.field, got[0].Field)
				assert.Equal(t, ReasonOutOfRange, got[0].Reason)
			}
		})
	}
}

func TestValidate_AgeZeroIsSingleViolation(t *testing.T) {
	p := validParameters()
	p.Age = 0

	got := Validate(p)
	require.Len(t, got, 1)
	assert.Equal(t, FieldAge, got[0].Field)
	assert.Equal(t, ReasonOutOfRange, got[0].Reason)
	assert.Equal(t, "Age must be between 1 and 120", got[0].Message)
}

func TestValidate_MissingEnums(t *testing.T) {
	p := validParameters()
	p.Gender = ""
	p.Cholesterol = ""
	p.Glucose = "sky-high"

	got := Validate(p)
	require.Len(t, got, 3)
	for i, field := range []string{FieldGender, FieldCholesterol, FieldGlucose} {
		assert.Equal(t, field, got[i].Field)
		assert.Equal(t, ReasonMissing, got[i].Reason)
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	got := Validate(HealthParameters{})
	assert.Len(t, got, 8)

	var err *ValidationError
	require.ErrorAs(t, Check(HealthParameters{}), &err)
	assert.Equal(t, got, err.Violations)
}

func TestValidate_Idempotent(t *testing.T) {
	p := validParameters()
	p.Weight = 400
	p.Gender = ""
	assert.Equal(t, Validate(p), Validate(p))
}

func TestHealthParameters_DecodesFormCodes(t *testing.T) {
	body := `{"age":45,"height":170,"weight":80,"gender":"1","systolic_bp":150,"diastolic_bp":95,
		"cholesterol":2,"glucose":"Normal","smokes":true}`

	var p HealthParameters
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	assert.Equal(t, GenderMale, p.Gender)
	assert.Equal(t, LevelAboveNormal, p.Cholesterol)
	assert.Equal(t, LevelNormal, p.Glucose)
	assert.True(t, p.Smokes)
	assert.Empty(t, Validate(p))
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		p    float64
		want Tier
	}{
		{0, TierLow},
		{30, TierLow},
		{30.0001, TierBorderline},
		{50, TierBorderline},
		{50.0001, TierModerate},
		{62, TierModerate},
		{70, TierModerate},
		{70.0001, TierHigh},
		{100, TierHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.p), "probability %v", tt.p)
	}
}

func TestClassify_TotalOverRange(t *testing.T) {
	tiers := Tiers()
	for i := 0; i <= 100000; i++ {
		p := float64(i) / 1000

		matches := 0
		lower := -1.0
		for _, d := range tiers {
			if p > lower && p <= d.UpperBound {
				matches++
				assert.Equal(t, d.Tier, Classify(p), "probability %v", p)
			}
			lower = d.UpperBound
		}
		require.Equal(t, 1, matches, "probability %v", p)
	}
}

func TestTier_Descriptor(t *testing.T) {
	assert.Equal(t, "Moderate Risk", Describe(62).Label)
	assert.Equal(t, "#ef4444", TierHigh.Descriptor().Color)

	data, err := json.Marshal(TierBorderline)
	require.NoError(t, err)
	assert.JSONEq(t, `"borderline"`, string(data))
}

func TestBMI(t *testing.T) {
	assert.Equal(t, 27.68, BMI(80, 170))
	assert.Equal(t, 0.0, BMI(80, 0))

	assert.Equal(t, "Underweight", BMICategory(18.49))
	assert.Equal(t, "Normal", BMICategory(18.5))
	assert.Equal(t, "Overweight", BMICategory(27.68))
	assert.Equal(t, "Obese", BMICategory(30))
}

func TestRecommendationsFor(t *testing.T) {
	low := RecommendationsFor(TierBorderline)
	assert.Equal(t, "Preventive Measures", low.Heading)
	assert.Len(t, low.Items, 7)

	high := RecommendationsFor(TierModerate)
	assert.Equal(t, "Recommended Actions", high.Heading)
	assert.Len(t, high.Items, 8)

	high.Items[0] = "changed"
	assert.NotEqual(t, "changed", RecommendationsFor(TierHigh).Items[0])
}
