package risk

import (
	"fmt"
	"strings"
)

// Reason is the machine readable cause of a field violation.
type Reason string

const (
	ReasonOutOfRange Reason = "OutOfRange"
	ReasonMissing    Reason = "Missing"
)

// Field names reported in violations; they match the JSON keys of HealthParameters.
const (
	FieldAge         = "age"
	FieldHeight      = "height"
	FieldWeight      = "weight"
	FieldGender      = "gender"
	FieldSystolicBP  = "systolic_bp"
	FieldDiastolicBP = "diastolic_bp"
	FieldCholesterol = "cholesterol"
	FieldGlucose     = "glucose"
)

// Bounds of the ranged fields, inclusive on both ends.
var (
	AgeBounds         = Bounds{Min: 1, Max: 120}
	HeightBounds      = Bounds{Min: 50, Max: 250}
	WeightBounds      = Bounds{Min: 20, Max: 300}
	SystolicBPBounds  = Bounds{Min: 80, Max: 200}
	DiastolicBPBounds = Bounds{Min: 40, Max: 130}
)

// Bounds is an inclusive numeric range.
type Bounds struct {
	Min float64
	Max float64
}

// Contains reports whether v lies in [Min, Max].
func (b Bounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Violation describes one invalid field.
type Violation struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// ValidationError wraps a non-empty violation set.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fmt.Sprintf("invalid health parameters: %s", strings.Join(fields, ", "))
}

// Validate checks every field of p independently and returns all violations.
// An empty result means the record can be submitted.
func Validate(p HealthParameters) []Violation {
	var out []Violation

	ranged := func(field string, v float64, b Bounds, msg string) {
		if v == 0 || !b.Contains(v) {
			out = append(out, Violation{Field: field, Reason: ReasonOutOfRange, Message: msg})
		}
	}
	required := func(field string, ok bool, msg string) {
		if !ok {
			out = append(out, Violation{Field: field, Reason: ReasonMissing, Message: msg})
		}
	}

	ranged(FieldAge, float64(p.Age), AgeBounds, "Age must be between 1 and 120")
	ranged(FieldHeight, p.Height, HeightBounds, "Height must be between 50 and 250 cm")
	ranged(FieldWeight, p.Weight, WeightBounds, "Weight must be between 20 and 300 kg")

	_, genderOK := p.Gender.Code()
	required(FieldGender, genderOK, "Please select gender")

	ranged(FieldSystolicBP, float64(p.SystolicBP), SystolicBPBounds, "Systolic BP must be between 80 and 200")
	ranged(FieldDiastolicBP, float64(p.DiastolicBP), DiastolicBPBounds, "Diastolic BP must be between 40 and 130")

	_, cholesterolOK := p.Cholesterol.Code()
	required(FieldCholesterol, cholesterolOK, "Please select cholesterol level")
	_, glucoseOK := p.Glucose.Code()
	required(FieldGlucose, glucoseOK, "Please select glucose level")

	return out
}

// Check is Validate as an error: nil when valid, *ValidationError otherwise.
func Check(p HealthParameters) error {
	if v := Validate(p); len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}
