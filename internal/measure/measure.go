// Package measure defines the emission measurements tracked by the
// dashboard (CO and CO2 concentrations in ppm) and their severity
// classification against fixed regulatory-style thresholds.
package measure

import (
	"fmt"
	"time"
)

// Kind identifies a tracked emission measurement.
type Kind int

const (
	CO Kind = iota
	CO2
)

// String returns the display label for the kind.
func (k Kind) String() string {
	switch k {
	case CO:
		return "CO"
	case CO2:
		return "CO2"
	default:
		return "unknown"
	}
}

// Tier classifies a measurement value against its kind's thresholds.
type Tier int

const (
	TierOK Tier = iota
	TierWarning
	TierDanger
)

// String returns the display label for the tier.
func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierDanger:
		return "danger"
	default:
		return "ok"
	}
}

// Spec holds the fixed per-kind parameters: valid range, alert
// thresholds, random-walk step bound, initial value and display
// precision.
type Spec struct {
	Kind     Kind
	Unit     string
	Min      float64
	Max      float64
	Warn     float64
	Danger   float64
	Step     float64 // max per-tick perturbation magnitude
	Initial  float64
	Decimals int
}

var specs = map[Kind]Spec{
	CO: {
		Kind: CO, Unit: "ppm",
		Min: 5, Max: 40,
		Warn: 20, Danger: 25,
		Step: 1, Initial: 18.0, Decimals: 1,
	},
	CO2: {
		Kind: CO2, Unit: "ppm",
		Min: 350, Max: 600,
		Warn: 450, Danger: 500,
		Step: 5, Initial: 420, Decimals: 0,
	},
}

// SpecFor returns the fixed parameters for a measurement kind.
func SpecFor(kind Kind) Spec {
	return specs[kind]
}

// Kinds returns all tracked kinds in display order.
func Kinds() []Kind {
	return []Kind{CO, CO2}
}

// Classify maps a value to its severity tier. Pure and total: any real
// value yields a tier, values at the warn threshold are still ok and
// values at the danger threshold are still warning.
func Classify(kind Kind, value float64) Tier {
	s := specs[kind]
	switch {
	case value > s.Danger:
		return TierDanger
	case value > s.Warn:
		return TierWarning
	default:
		return TierOK
	}
}

// Clamp bounds a value into the kind's valid [Min, Max] range.
func Clamp(kind Kind, value float64) float64 {
	s := specs[kind]
	if value < s.Min {
		return s.Min
	}
	if value > s.Max {
		return s.Max
	}
	return value
}

// Reading is a single measurement value at a point in time.
type Reading struct {
	Kind  Kind
	Value float64
	Time  time.Time
}

// Key returns the history identifier for this measurement.
func (r Reading) Key() string {
	return r.Kind.String()
}

// Tier returns the severity tier of the reading.
func (r Reading) Tier() Tier {
	return Classify(r.Kind, r.Value)
}

// Format renders the value with the kind's display precision,
// e.g. "18.4" for CO and "423" for CO2.
func (r Reading) Format() string {
	s := specs[r.Kind]
	return fmt.Sprintf("%.*f", s.Decimals, r.Value)
}

// FormatUnit renders the value with its unit suffix, e.g. "18.4 ppm".
func (r Reading) FormatUnit() string {
	return r.Format() + " " + specs[r.Kind].Unit
}
