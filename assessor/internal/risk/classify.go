package risk

import "encoding/json"

// Tier is a discrete risk bucket derived from a probability percentage.
type Tier int

const (
	TierLow Tier = iota
	TierBorderline
	TierModerate
	TierHigh
)

// Upper (inclusive) probability thresholds of the lower tiers.
const (
	LowMax        = 30.0
	BorderlineMax = 50.0
	ModerateMax   = 70.0
)

// Severity is the colour band a tier is rendered with.
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityCaution Severity = "caution"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Descriptor carries the display metadata of a tier.
type Descriptor struct {
	Tier       Tier     `json:"-"`
	Name       string   `json:"tier"`
	Label      string   `json:"label"`
	Severity   Severity `json:"severity"`
	Color      string   `json:"color"`
	Background string   `json:"background"`
	// UpperBound is the inclusive upper probability of the tier.
	UpperBound float64 `json:"upper_bound"`
}

// Classify maps a probability in [0,100] to its tier.
// 30, 50 and 70 belong to the lower tier; anything above escalates.
func Classify(probability float64) Tier {
	switch {
	case probability <= LowMax:
		return TierLow
	case probability <= BorderlineMax:
		return TierBorderline
	case probability <= ModerateMax:
		return TierModerate
	default:
		return TierHigh
	}
}

// Describe is Classify followed by Descriptor.
func Describe(probability float64) Descriptor {
	return Classify(probability).Descriptor()
}

// Descriptor returns the display metadata of t.
func (t Tier) Descriptor() Descriptor {
	switch t {
	case TierLow:
		return Descriptor{Tier: t, Name: "low", Label: "Low Risk", Severity: SeverityOK,
			Color: "#22c55e", Background: "#dcfce7", UpperBound: LowMax}
	case TierBorderline:
		return Descriptor{Tier: t, Name: "borderline", Label: "Borderline", Severity: SeverityCaution,
			Color: "#eab308", Background: "#fef9c3", UpperBound: BorderlineMax}
	case TierModerate:
		return Descriptor{Tier: t, Name: "moderate", Label: "Moderate Risk", Severity: SeverityWarning,
			Color: "#f97316", Background: "#ffedd5", UpperBound: ModerateMax}
	case TierHigh:
		return Descriptor{Tier: t, Name: "high", Label: "High Risk", Severity: SeverityDanger,
			Color: "#ef4444", Background: "#fee2e2", UpperBound: 100}
	}
	panic("risk: unknown tier")
}

func (t Tier) String() string {
	return t.Descriptor().Name
}

func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Elevated reports whether the tier calls for action rather than prevention
// (probability above 50).
func (t Tier) Elevated() bool {
	return t == TierModerate || t == TierHigh
}

// Tiers returns all tiers in ascending order of threshold.
func Tiers() []Descriptor {
	return []Descriptor{
		TierLow.Descriptor(),
		TierBorderline.Descriptor(),
		TierModerate.Descriptor(),
		TierHigh.Descriptor(),
	}
}
