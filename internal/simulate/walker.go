// Package simulate produces plausible live sensor drift in the absence
// of a real emissions feed. Each tracked value follows a bounded random
// walk: a uniform perturbation per tick, clamped to the measurement's
// valid range after the step.
package simulate

import (
	"math/rand"
	"time"

	"github.com/mkale/emissia/internal/measure"
)

// Walker holds the drifting value for one measurement kind.
type Walker struct {
	kind  measure.Kind
	value float64
	rng   *rand.Rand
}

// NewWalker creates a walker at the kind's fixed initial value using a
// time-seeded random source.
func NewWalker(kind measure.Kind) *Walker {
	return NewWalkerWithSource(kind, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWalkerWithSource creates a walker with an explicit random source,
// so tests can drive it deterministically.
func NewWalkerWithSource(kind measure.Kind, rng *rand.Rand) *Walker {
	return &Walker{
		kind:  kind,
		value: measure.SpecFor(kind).Initial,
		rng:   rng,
	}
}

// Kind returns the measurement kind this walker drives.
func (w *Walker) Kind() measure.Kind {
	return w.kind
}

// Value returns the current value. Always within the kind's range.
func (w *Walker) Value() float64 {
	return w.value
}

// Step perturbs the value by a uniform amount in [-step, +step] and
// clamps the result to the kind's [Min, Max]. Clamping happens after
// the perturbation, never before. Returns the new value.
func (w *Walker) Step() float64 {
	s := measure.SpecFor(w.kind)
	delta := (w.rng.Float64()*2 - 1) * s.Step
	w.value = measure.Clamp(w.kind, w.value+delta)
	return w.value
}

// Reading returns the current value as a timestamped reading.
func (w *Walker) Reading(t time.Time) measure.Reading {
	return measure.Reading{Kind: w.kind, Value: w.value, Time: t}
}
