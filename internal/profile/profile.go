// Package profile fetches the factory profile record shown in the
// dashboard header. Profiles live in a local SQLite document store keyed
// by user id; the dashboard reads one record per mount and never writes.
package profile

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound reports that no profile record exists for the given user.
// Callers can distinguish it from transient store failures, which are
// returned as wrapped driver errors.
var ErrNotFound = errors.New("profile not found")

// Profile is a read-only factory profile record.
type Profile struct {
	Name     string
	Location string
	Industry string
	Rating   int
}

// Store is a keyed point-lookup source of profile records.
type Store interface {
	Get(ctx context.Context, userID string) (Profile, error)
}

// Placeholder returns the fallback profile displayed when no record is
// available, for any reason.
func Placeholder() Profile {
	return Profile{
		Name:     "Your Factory",
		Location: "Location",
		Industry: "Industry",
		Rating:   0,
	}
}

// DisplayName returns the dashboard title, e.g. "Acme Steel Dashboard".
func (p Profile) DisplayName() string {
	return p.Name + " Dashboard"
}

// DisplayLocation returns the header subtitle, e.g.
// "Ohio • metal production". Industry identifiers use underscores in
// the store and are humanized for display.
func (p Profile) DisplayLocation() string {
	return p.Location + " • " + strings.ReplaceAll(p.Industry, "_", " ")
}
