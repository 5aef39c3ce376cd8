package risk

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Gender is the biological sex selected on the form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Code returns the numeric code the inference endpoint expects (1 = male, 2 = female).
func (g Gender) Code() (int, bool) {
	switch g {
	case GenderMale:
		return 1, true
	case GenderFemale:
		return 2, true
	}
	return 0, false
}

// UnmarshalJSON accepts both names and the form option codes ("1", 2, ...).
func (g *Gender) UnmarshalJSON(data []byte) error {
	raw, err := decodeEnum(data)
	if err != nil {
		return err
	}
	switch raw {
	case "1":
		*g = GenderMale
	case "2":
		*g = GenderFemale
	default:
		*g = Gender(strings.ToLower(raw))
	}
	return nil
}

// Level is a lab measurement bucket used for cholesterol and glucose.
type Level string

const (
	LevelNormal          Level = "normal"
	LevelAboveNormal     Level = "above-normal"
	LevelWellAboveNormal Level = "well-above-normal"
)

// Code returns the numeric code the inference endpoint expects (1..3).
func (l Level) Code() (int, bool) {
	switch l {
	case LevelNormal:
		return 1, true
	case LevelAboveNormal:
		return 2, true
	case LevelWellAboveNormal:
		return 3, true
	}
	return 0, false
}

// Label returns the human readable name shown next to the level.
func (l Level) Label() string {
	switch l {
	case LevelNormal:
		return "Normal"
	case LevelAboveNormal:
		return "Above Normal"
	case LevelWellAboveNormal:
		return "Well Above Normal"
	}
	return "Unknown"
}

func (l *Level) UnmarshalJSON(data []byte) error {
	raw, err := decodeEnum(data)
	if err != nil {
		return err
	}
	switch raw {
	case "1":
		*l = LevelNormal
	case "2":
		*l = LevelAboveNormal
	case "3":
		*l = LevelWellAboveNormal
	default:
		*l = Level(strings.ToLower(raw))
	}
	return nil
}

// decodeEnum reads a JSON string, number or null into a trimmed string.
func decodeEnum(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// HealthParameters is one submission of the health-parameter form.
type HealthParameters struct {
	Age              int     `json:"age" example:"45"`
	Height           float64 `json:"height" example:"170"`
	Weight           float64 `json:"weight" example:"80"`
	Gender           Gender  `json:"gender" example:"male"`
	SystolicBP       int     `json:"systolic_bp" example:"150"`
	DiastolicBP      int     `json:"diastolic_bp" example:"95"`
	Cholesterol      Level   `json:"cholesterol" example:"above-normal"`
	Glucose          Level   `json:"glucose" example:"normal"`
	Smokes           bool    `json:"smokes"`
	DrinksAlcohol    bool    `json:"drinks_alcohol"`
	PhysicallyActive bool    `json:"physically_active"`
}
