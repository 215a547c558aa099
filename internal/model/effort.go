package model

import (
	"encoding/json"
	"fmt"
)

// EffortKind discriminates the two effort representations.
type EffortKind int

const (
	// EffortLabel means the task carries a t-shirt size estimate.
	EffortLabel EffortKind = iota + 1
	// EffortPoints means the task carries a numeric point estimate.
	EffortPoints
)

// effortLabels is the allowed set of t-shirt size labels.
var effortLabels = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true, "XL": true, "XXL": true,
}

// ValidEffortLabel reports whether label is a known t-shirt size.
func ValidEffortLabel(label string) bool {
	return effortLabels[label]
}

// Effort is a tagged union: either a t-shirt size label or a numeric point
// value. On the wire it serializes to a bare JSON string or number,
// matching the export format.
type Effort struct {
	Kind   EffortKind
	Label  string
	Points float64
}

// LabelEffort returns a label-kind effort. The label is not validated
// here; the write operations and UnmarshalJSON reject unknown labels.
func LabelEffort(label string) *Effort {
	return &Effort{Kind: EffortLabel, Label: label}
}

// PointsEffort returns a points-kind effort.
func PointsEffort(points float64) *Effort {
	return &Effort{Kind: EffortPoints, Points: points}
}

func (e Effort) String() string {
	switch e.Kind {
	case EffortLabel:
		return e.Label
	case EffortPoints:
		return fmt.Sprintf("%g", e.Points)
	default:
		return ""
	}
}

// MarshalJSON writes the effort as a bare string or number.
func (e Effort) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case EffortLabel:
		return json.Marshal(e.Label)
	case EffortPoints:
		return json.Marshal(e.Points)
	default:
		return nil, fmt.Errorf("marshaling effort: unset kind")
	}
}

// UnmarshalJSON accepts either a size label string or a number.
func (e *Effort) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		if !effortLabels[label] {
			return fmt.Errorf("unknown effort label %q", label)
		}
		*e = Effort{Kind: EffortLabel, Label: label}
		return nil
	}

	var points float64
	if err := json.Unmarshal(data, &points); err != nil {
		return fmt.Errorf("effort must be a size label or a number: %w", err)
	}
	*e = Effort{Kind: EffortPoints, Points: points}
	return nil
}
