package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mkale/emissia/internal/measure"
	"github.com/mkale/emissia/internal/profile"
)

func newTestModel() Model {
	return New(nil, "U1", zerolog.Nop()).WithTickPeriod(10 * time.Millisecond)
}

func readings(m Model) map[measure.Kind]float64 {
	out := make(map[measure.Kind]float64)
	for _, kind := range measure.Kinds() {
		out[kind] = m.Reading(kind).Value
	}
	return out
}

func TestTickStepsWalkers(t *testing.T) {
	m := newTestModel()

	now := time.Now()
	next, cmd := m.Update(tickMsg(now))
	m = next.(Model)

	if cmd == nil {
		t.Error("active tick must reschedule the timer")
	}
	if m.lastTick != now {
		t.Errorf("lastTick: got %v, want %v", m.lastTick, now)
	}
	for _, kind := range measure.Kinds() {
		s := measure.SpecFor(kind)
		v := m.Reading(kind).Value
		if v < s.Min || v > s.Max {
			t.Errorf("%s: value %v escaped [%v, %v]", kind, v, s.Min, s.Max)
		}
	}
}

func TestNoTicksAfterDeactivation(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if m.Active() {
		t.Fatal("quit must deactivate the screen")
	}

	before := readings(m)
	for i := 0; i < 5; i++ {
		next, cmd := m.Update(tickMsg(time.Now().Add(time.Duration(i) * time.Second)))
		m = next.(Model)
		if cmd != nil {
			t.Fatal("a tick after deactivation must not reschedule")
		}
	}
	after := readings(m)

	for kind, v := range before {
		if after[kind] != v {
			t.Errorf("%s changed after deactivation: %v -> %v", kind, v, after[kind])
		}
	}
}

func TestPausedTickHoldsValues(t *testing.T) {
	m := newTestModel()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = next.(Model)

	before := readings(m)
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)

	if cmd == nil {
		t.Error("paused screen still owns its timer")
	}
	after := readings(m)
	for kind, v := range before {
		if after[kind] != v {
			t.Errorf("%s changed while paused: %v -> %v", kind, v, after[kind])
		}
	}
}

func TestProfileApplied(t *testing.T) {
	m := newTestModel()

	acme := profile.Profile{Name: "Acme Steel", Location: "Ohio", Industry: "metal_production", Rating: 4}
	next, _ := m.Update(profileMsg{gen: m.gen, profile: acme})
	m = next.(Model)

	if m.Profile() != acme {
		t.Errorf("profile not applied: got %+v", m.Profile())
	}
	if m.profilePending {
		t.Error("fetch must no longer be pending")
	}
}

func TestStaleProfileDiscarded(t *testing.T) {
	m := newTestModel()

	acme := profile.Profile{Name: "Acme Steel", Location: "Ohio", Industry: "metal_production", Rating: 4}
	next, _ := m.Update(profileMsg{gen: m.gen + 1, profile: acme})
	m = next.(Model)

	if m.Profile() != profile.Placeholder() {
		t.Errorf("stale result must be discarded, got %+v", m.Profile())
	}
}

func TestLateProfileAfterDeactivationDiscarded(t *testing.T) {
	m := newTestModel()
	gen := m.gen

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)

	acme := profile.Profile{Name: "Acme Steel", Location: "Ohio", Industry: "metal_production", Rating: 4}
	next, _ = m.Update(profileMsg{gen: gen, profile: acme})
	m = next.(Model)

	if m.Profile() != profile.Placeholder() {
		t.Errorf("late result after deactivation must be discarded, got %+v", m.Profile())
	}
}
