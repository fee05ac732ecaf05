package repositories

import (
	"context"
	"database/sql"
	"errors"

	"wishlyBack/internal/models"
)

type ReservationRepository struct {
	DB *sql.DB
}

// Reserve creates the single live reservation for an item. The reservations
// table carries UNIQUE (item_id), so of two concurrent calls exactly one
// inserts and the other reports models.ErrAlreadyReserved; there is no
// read-then-write window.
func (r *ReservationRepository) Reserve(ctx context.Context, res models.Reservation) (models.Reservation, error) {
	query := `
		INSERT INTO reservations (id, item_id, reserved_by_nickname, reserved_by_user)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO NOTHING
		RETURNING reserved_at`
	err := r.DB.QueryRowContext(ctx, query, res.ID, res.ItemID, res.Nickname, res.UserID).Scan(&res.ReservedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reservation{}, models.ErrAlreadyReserved
		}
		return models.Reservation{}, err
	}
	return res, nil
}

func (r *ReservationRepository) GetByItem(ctx context.Context, itemID string) (models.Reservation, error) {
	var res models.Reservation
	query := `
		SELECT id, item_id, reserved_by_nickname, reserved_by_user, reserved_at
		FROM reservations WHERE item_id = $1`
	err := r.DB.QueryRowContext(ctx, query, itemID).Scan(&res.ID, &res.ItemID, &res.Nickname, &res.UserID, &res.ReservedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reservation{}, models.ErrNotReserved
		}
		return models.Reservation{}, err
	}
	return res, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, reservationID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, reservationID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotReserved
	}
	return nil
}
