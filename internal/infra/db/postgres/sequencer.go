package postgres

import (
	"context"
	"fmt"
)

// Sequencer hands out the per-year quote correlative. The upsert makes the
// increment atomic, so concurrent callers never see the same number.
type Sequencer struct {
	db *DB
}

func NewSequencer(db *DB) *Sequencer { return &Sequencer{db: db} }

func (s *Sequencer) NextNumber(ctx context.Context, year int) (int, string, error) {
	const q = `
		insert into quote_counters (year, last_seq)
		values ($1, 1)
		on conflict (year)
		do update set last_seq = quote_counters.last_seq + 1
		returning last_seq`

	var seq int
	if err := s.db.Pool.QueryRow(ctx, q, year).Scan(&seq); err != nil {
		return 0, "", fmt.Errorf("next quote number for %d: %w", year, err)
	}
	return seq, fmt.Sprintf("%d-%04d", year, seq), nil
}
