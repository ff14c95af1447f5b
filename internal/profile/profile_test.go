package profile

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := Profile{Name: "Acme Steel", Location: "Ohio", Industry: "metal_production", Rating: 4}
	if err := s.Put(ctx, "U1", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "U1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("Get: got %+v, want %+v", got, want)
	}
}

func TestSQLiteStoreNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "U2")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStorePutReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "U1", Profile{Name: "Old Name", Location: "X", Industry: "y", Rating: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "U1", Profile{Name: "New Name", Location: "X", Industry: "y", Rating: 2}); err != nil {
		t.Fatalf("Put replace: %v", err)
	}

	got, err := s.Get(ctx, "U1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "New Name" || got.Rating != 2 {
		t.Errorf("replace: got %+v", got)
	}
}

// failingStore simulates a transient store failure.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, userID string) (Profile, error) {
	return Profile{}, errors.New("connection refused")
}

func TestFetchPresent(t *testing.T) {
	s := newTestStore(t)
	want := Profile{Name: "Acme Steel", Location: "Ohio", Industry: "metal_production", Rating: 4}
	if err := s.Put(context.Background(), "U1", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var buf bytes.Buffer
	got := Fetch(context.Background(), s, "U1", zerolog.New(&buf))
	if got != want {
		t.Errorf("Fetch: got %+v, want %+v", got, want)
	}
}

func TestFetchNotFound(t *testing.T) {
	s := newTestStore(t)

	var buf bytes.Buffer
	got := Fetch(context.Background(), s, "U2", zerolog.New(&buf))
	if got != Placeholder() {
		t.Errorf("Fetch: got %+v, want placeholder", got)
	}
	if !strings.Contains(buf.String(), "profile_not_found") {
		t.Errorf("expected profile_not_found event, log: %s", buf.String())
	}
	if strings.Contains(buf.String(), "profile_fetch_failed") {
		t.Errorf("not-found must not be reported as a fetch failure, log: %s", buf.String())
	}
}

func TestFetchStoreError(t *testing.T) {
	var buf bytes.Buffer
	got := Fetch(context.Background(), failingStore{}, "U1", zerolog.New(&buf))
	if got != Placeholder() {
		t.Errorf("Fetch: got %+v, want placeholder", got)
	}
	if !strings.Contains(buf.String(), "profile_fetch_failed") {
		t.Errorf("expected profile_fetch_failed event, log: %s", buf.String())
	}
}

func TestFetchNilStore(t *testing.T) {
	var buf bytes.Buffer
	got := Fetch(context.Background(), nil, "U1", zerolog.New(&buf))
	if got != Placeholder() {
		t.Errorf("Fetch with nil store: got %+v, want placeholder", got)
	}
}

func TestDisplayStrings(t *testing.T) {
	p := Profile{Name: "Acme Steel", Location: "Ohio", Industry: "metal_production", Rating: 4}
	if got := p.DisplayName(); got != "Acme Steel Dashboard" {
		t.Errorf("DisplayName: got %q", got)
	}
	if got := p.DisplayLocation(); got != "Ohio • metal production" {
		t.Errorf("DisplayLocation: got %q", got)
	}

	ph := Placeholder()
	if got := ph.DisplayName(); got != "Your Factory Dashboard" {
		t.Errorf("placeholder DisplayName: got %q", got)
	}
	if got := ph.DisplayLocation(); got != "Location • Industry" {
		t.Errorf("placeholder DisplayLocation: got %q", got)
	}
	if ph.Rating != 0 {
		t.Errorf("placeholder rating: got %d, want 0", ph.Rating)
	}
}
