package model

import "strings"

// Confidence is the qualitative certainty tier attached to a detected rest
// event. Tiers form a strict total order: high > medium > low.
type Confidence string

// Confidence tiers.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ParseConfidence maps a wire string to a tier. Absent or unrecognized
// values default to the lowest tier.
func ParseConfidence(s string) Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Rank returns the tier's position in the total order; higher is stronger.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	default:
		return 1
	}
}

// RestType classifies why a runner stopped.
type RestType string

// Rest types.
const (
	RestTypeCrew     RestType = "crew"
	RestTypeMedical  RestType = "medical"
	RestTypeResupply RestType = "resupply"
	RestTypeOther    RestType = "other"
)

// ParseRestType maps a wire string to a RestType, defaulting to other.
func ParseRestType(s string) RestType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "crew":
		return RestTypeCrew
	case "medical":
		return RestTypeMedical
	case "resupply":
		return RestTypeResupply
	default:
		return RestTypeOther
	}
}
