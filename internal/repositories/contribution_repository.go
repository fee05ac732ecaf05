package repositories

import (
	"context"
	"database/sql"
	"errors"

	"wishlyBack/internal/models"
)

type ContributionRepository struct {
	DB *sql.DB
}

// Contribute records a pledge. The funding-cap check is a conditional
// UPDATE of the item's running total: the row lock serialises concurrent
// contributions on the same item, so two amounts that individually fit but
// jointly overshoot can never both pass. The contribution row is inserted
// in the same transaction.
func (r *ContributionRepository) Contribute(ctx context.Context, c models.Contribution) (models.Contribution, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Contribution{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE items
		SET contributed_cents = contributed_cents + $2
		WHERE id = $1
		  AND target_cents IS NOT NULL AND target_cents > 0
		  AND contributed_cents + $2 <= target_cents`,
		c.ItemID, c.AmountCents)
	if err != nil {
		return models.Contribution{}, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return models.Contribution{}, err
	}
	if rows == 0 {
		err = r.classifyRejection(ctx, tx, c.ItemID)
		return models.Contribution{}, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO contributions (id, item_id, amount_cents, contributed_by_nickname, contributed_by_user)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING contributed_at`,
		c.ID, c.ItemID, c.AmountCents, c.Nickname, c.UserID).Scan(&c.ContributedAt)
	if err != nil {
		return models.Contribution{}, err
	}

	if err = tx.Commit(); err != nil {
		return models.Contribution{}, err
	}
	return c, nil
}

// classifyRejection decides which typed error the failed conditional update
// stands for.
func (r *ContributionRepository) classifyRejection(ctx context.Context, tx *sql.Tx, itemID string) error {
	var target sql.NullInt64
	err := tx.QueryRowContext(ctx, `SELECT target_cents FROM items WHERE id = $1`, itemID).Scan(&target)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		return err
	}
	if !target.Valid || target.Int64 <= 0 {
		return models.ErrNoFundingTarget
	}
	return models.ErrExceedsTarget
}

// Total returns the accumulated contribution amount for an item.
func (r *ContributionRepository) Total(ctx context.Context, itemID string) (int64, error) {
	var total int64
	err := r.DB.QueryRowContext(ctx, `SELECT contributed_cents FROM items WHERE id = $1`, itemID).Scan(&total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrNotFound
		}
		return 0, err
	}
	return total, nil
}
