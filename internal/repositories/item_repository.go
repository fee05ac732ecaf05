package repositories

import (
	"context"
	"database/sql"
	"errors"

	"wishlyBack/internal/models"
)

type ItemRepository struct {
	DB *sql.DB
}

// CreateItem appends the item at the end of the list. The wishlist row is
// locked first: a plain INSERT ... SELECT MAX(position)+1 runs on a snapshot
// that cannot see another transaction's uncommitted insert, so without the
// lock two concurrent adds would both compute the same position. The deferred
// unique constraint on (wishlist_id, position) backstops the lock.
func (r *ItemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Item{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockWishlist(ctx, tx, item.WishlistID); err != nil {
		return models.Item{}, err
	}

	query := `
		INSERT INTO items (id, wishlist_id, title, url, image_url, price_cents, target_cents, is_unavailable, position)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, COALESCE(MAX(position) + 1, 0)
		FROM items WHERE wishlist_id = $2
		RETURNING position, created_at`
	err = tx.QueryRowContext(ctx, query,
		item.ID, item.WishlistID, item.Title, item.URL, item.ImageURL,
		item.PriceCents, item.TargetCents, item.IsUnavailable,
	).Scan(&item.Position, &item.CreatedAt)
	if err != nil {
		return models.Item{}, err
	}
	if err = tx.Commit(); err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// lockWishlist takes the parent list's row lock, serialising position
// assignment across concurrent adds and reorders of the same list.
func lockWishlist(ctx context.Context, tx *sql.Tx, wishlistID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM wishlists WHERE id = $1 FOR UPDATE`, wishlistID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *ItemRepository) GetItem(ctx context.Context, id string) (models.Item, error) {
	var it models.Item
	query := `
		SELECT id, wishlist_id, title, url, image_url, price_cents, target_cents,
		       contributed_cents, is_unavailable, position, created_at
		FROM items WHERE id = $1`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&it.ID, &it.WishlistID, &it.Title, &it.URL, &it.ImageURL, &it.PriceCents,
		&it.TargetCents, &it.ContributedCents, &it.IsUnavailable, &it.Position, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, models.ErrNotFound
		}
		return models.Item{}, err
	}
	return it, nil
}

func (r *ItemRepository) UpdateItem(ctx context.Context, id string, fields models.ItemFields) error {
	query := `
		UPDATE items
		SET title = $2, url = $3, image_url = $4, price_cents = $5, target_cents = $6, is_unavailable = $7
		WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, fields.Title, fields.URL, fields.ImageURL,
		fields.PriceCents, fields.TargetCents, fields.IsUnavailable)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteItem removes the item only while its contribution total is zero.
// The guard and the delete are one statement, so a contribution that commits
// first always wins the race and blocks the delete.
func (r *ItemRepository) DeleteItem(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id = $1 AND contributed_cents = 0`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return models.ErrHasContributions
	}
	return models.ErrNotFound
}

// ReorderItems rewrites positions to match orderedIDs. The given set must be
// exactly the list's current item ids; anything added, dropped or duplicated
// fails with models.ErrInvalidOrder and leaves positions untouched.
func (r *ItemRepository) ReorderItems(ctx context.Context, wishlistID string, orderedIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockWishlist(ctx, tx, wishlistID); err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, `SELECT id FROM items WHERE wishlist_id = $1 FOR UPDATE`, wishlistID)
	if err != nil {
		return err
	}
	current := make(map[string]bool)
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = true
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	if len(orderedIDs) != len(current) {
		err = models.ErrInvalidOrder
		return err
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] || seen[id] {
			err = models.ErrInvalidOrder
			return err
		}
		seen[id] = true
	}

	for pos, id := range orderedIDs {
		if _, err = tx.ExecContext(ctx, `UPDATE items SET position = $1 WHERE id = $2`, pos, id); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}

// itemRow carries one item plus its live reservation (if any) for the
// projection read.
type itemRow struct {
	Item         models.Item
	Reserved     bool
	ReservedNick string
	ReservedUser *string
}

func (r *ItemRepository) listRows(ctx context.Context, wishlistID string) ([]itemRow, error) {
	query := `
		SELECT i.id, i.wishlist_id, i.title, i.url, i.image_url, i.price_cents, i.target_cents,
		       i.contributed_cents, i.is_unavailable, i.position, i.created_at,
		       res.reserved_by_nickname, res.reserved_by_user
		FROM items i
		LEFT JOIN reservations res ON res.item_id = i.id
		WHERE i.wishlist_id = $1
		ORDER BY i.position ASC, i.created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []itemRow{}
	for rows.Next() {
		var row itemRow
		var nick sql.NullString
		var user sql.NullString
		it := &row.Item
		err := rows.Scan(&it.ID, &it.WishlistID, &it.Title, &it.URL, &it.ImageURL, &it.PriceCents,
			&it.TargetCents, &it.ContributedCents, &it.IsUnavailable, &it.Position, &it.CreatedAt,
			&nick, &user)
		if err != nil {
			return nil, err
		}
		if nick.Valid {
			row.Reserved = true
			row.ReservedNick = nick.String
		}
		if user.Valid {
			row.ReservedUser = &user.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListProjection returns every item of the list with reservation presence
// filtered for the viewer: the reserver's identity is only disclosed to the
// viewer who made the reservation.
func (r *ItemRepository) ListProjection(ctx context.Context, wishlistID string, viewer models.Actor, viewerNickname string) ([]models.ItemView, error) {
	rowsData, err := r.listRows(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	views := make([]models.ItemView, 0, len(rowsData))
	for _, row := range rowsData {
		v := models.ItemView{Item: row.Item, Reserved: row.Reserved}
		if row.Reserved && viewerIsReserver(row, viewer, viewerNickname) {
			v.ReservedBy = row.ReservedNick
		}
		views = append(views, v)
	}
	return views, nil
}

func viewerIsReserver(row itemRow, viewer models.Actor, viewerNickname string) bool {
	if row.ReservedUser != nil {
		return viewer.Authenticated() && viewer.UserID == *row.ReservedUser
	}
	return viewerNickname != "" && viewerNickname == row.ReservedNick
}
