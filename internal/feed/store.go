package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"rally_timecomp/internal/log"
)

// LoadFunc produces a complete snapshot.
type LoadFunc func(ctx context.Context) (*Snapshot, error)

// Store hands out the current snapshot. Reload swaps in a fully loaded
// replacement, readers never observe a partial one.
type Store struct {
	load    LoadFunc
	current atomic.Pointer[Snapshot]
}

var ErrNotLoaded = errors.New("no data loaded")

func NewStore(load LoadFunc) *Store {
	return &Store{load: load}
}

// Current returns the latest snapshot or nil before the first Reload.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Reload loads a new snapshot and installs it. On failure the previous
// snapshot stays in place.
func (s *Store) Reload(ctx context.Context) error {
	snap, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.current.Store(snap)
	log.Info("data loaded",
		log.Strings("seasons", snap.Seasons),
		log.Int("identities", len(snap.Identities)))
	return nil
}

// Run reloads every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				log.Warn("reload failed, keeping previous data", log.ErrorField(err))
			}
		}
	}
}
