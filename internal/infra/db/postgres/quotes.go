package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cokeke26/cotizador/internal/domain/quote"
)

type QuoteRepo struct {
	db *DB
}

func NewQuoteRepo(db *DB) *QuoteRepo { return &QuoteRepo{db: db} }

// Save inserts the quote header and its items in one transaction and
// returns the new record id. A header without items is never persisted.
func (r *QuoteRepo) Save(ctx context.Context, q quote.Quote, year, seq int) (int64, error) {
	if len(q.Items) == 0 {
		return 0, quote.ErrNoItems
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin save quote: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertQuote = `
		insert into quotes (
			year, seq, quote_number, issue_date,
			brand_name, brand_email, brand_phone,
			client_name, client_email, client_company,
			discount_pct, notes, validity_days
		)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		returning id`

	var id int64
	err = tx.QueryRow(ctx, insertQuote,
		year, seq, q.Number, q.IssueDate,
		q.Brand.Name, q.Brand.Email, q.Brand.Phone,
		q.Client.Name, q.Client.Email, q.Client.Company,
		q.DiscountPct.String(), q.Notes, q.ValidityDays,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert quote %s: %w", q.Number, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"quote_items"},
		[]string{"quote_id", "description", "qty", "unit_price"},
		pgx.CopyFromSlice(len(q.Items), func(i int) ([]any, error) {
			it := q.Items[i]
			return []any{id, it.Description, it.Qty.String(), it.UnitPrice.String()}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("insert quote items for %s: %w", q.Number, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit quote %s: %w", q.Number, err)
	}
	return id, nil
}
