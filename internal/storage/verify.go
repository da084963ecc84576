package storage

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/breakout"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/replay"
)

// ErrHashMismatch is returned by Verify when a replay ends in a different state.
var ErrHashMismatch = errors.New("storage: replay hash mismatch")

// Verify re-simulates recording id from its stored config, seed and journal
// and checks the final snapshot against the stored hash. The replayed
// snapshot is returned even on a mismatch.
func (s *Store) Verify(id int64) (*Recording, breakout.Snapshot, error) {
	rec, err := s.Recording(id)
	if err != nil {
		return nil, breakout.Snapshot{}, err
	}
	journal, err := s.Commands(id)
	if err != nil {
		return rec, breakout.Snapshot{}, err
	}
	cfg, err := config.Decode(rec.Config)
	if err != nil {
		return rec, breakout.Snapshot{}, fmt.Errorf("storage: recording %d: %w", id, err)
	}

	snap, err := replay.Run(cfg, rec.Seed, journal, rec.Ticks)
	if err != nil {
		return rec, snap, fmt.Errorf("storage: recording %d: %w", id, err)
	}
	if got := snap.Hash(); got != rec.Hash {
		return rec, snap, fmt.Errorf("%w: recording %d: got %d, stored %d", ErrHashMismatch, id, got, rec.Hash)
	}
	return rec, snap, nil
}
