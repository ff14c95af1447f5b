package simulate

import (
	"math/rand"
	"testing"

	"github.com/mkale/emissia/internal/measure"
)

func TestWalkerStartsAtInitial(t *testing.T) {
	for _, kind := range measure.Kinds() {
		w := NewWalker(kind)
		if w.Value() != measure.SpecFor(kind).Initial {
			t.Errorf("%s: got %v, want initial %v", kind, w.Value(), measure.SpecFor(kind).Initial)
		}
	}
}

func TestWalkerStaysInBounds(t *testing.T) {
	for _, kind := range measure.Kinds() {
		s := measure.SpecFor(kind)
		w := NewWalkerWithSource(kind, rand.New(rand.NewSource(1)))

		for i := 0; i < 10000; i++ {
			v := w.Step()
			if v < s.Min || v > s.Max {
				t.Fatalf("%s: value %v escaped [%v, %v] at step %d", kind, v, s.Min, s.Max, i)
			}
		}
	}
}

func TestWalkerStepBounded(t *testing.T) {
	for _, kind := range measure.Kinds() {
		s := measure.SpecFor(kind)
		w := NewWalkerWithSource(kind, rand.New(rand.NewSource(42)))

		prev := w.Value()
		for i := 0; i < 1000; i++ {
			v := w.Step()
			delta := v - prev
			if delta > s.Step || delta < -s.Step {
				// A clamped step may be smaller than the raw
				// perturbation but never larger.
				t.Fatalf("%s: step %v exceeds bound %v", kind, delta, s.Step)
			}
			prev = v
		}
	}
}

func TestWalkerDeterministicWithSource(t *testing.T) {
	a := NewWalkerWithSource(measure.CO, rand.New(rand.NewSource(7)))
	b := NewWalkerWithSource(measure.CO, rand.New(rand.NewSource(7)))

	for i := 0; i < 100; i++ {
		if a.Step() != b.Step() {
			t.Fatalf("walkers with the same source diverged at step %d", i)
		}
	}
}
