package profile

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

const fetchTimeout = 5 * time.Second

// Fetch performs the single profile lookup for a user. Exactly one
// attempt, no retry. A missing record and a store failure are both
// masked behind the placeholder profile so the screen always has
// something to render, but they are logged as distinct events so a
// future caller can treat them differently.
func Fetch(ctx context.Context, store Store, userID string, log zerolog.Logger) Profile {
	if store == nil {
		log.Warn().Str("user_id", userID).Msg("profile store unavailable, using placeholder")
		return Placeholder()
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	p, err := store.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		log.Info().Str("user_id", userID).Msg("profile_not_found")
		return Placeholder()
	case err != nil:
		log.Error().Err(err).Str("user_id", userID).Msg("profile_fetch_failed")
		return Placeholder()
	}

	log.Debug().Str("user_id", userID).Str("factory", p.Name).Msg("profile loaded")
	return p
}
