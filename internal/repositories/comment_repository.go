package repositories

import (
	"context"
	"database/sql"

	"wishlyBack/internal/models"
)

type CommentRepository struct {
	DB *sql.DB
}

func (r *CommentRepository) AddComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	query := `
		INSERT INTO comments (id, item_id, nickname, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.DB.QueryRowContext(ctx, query, c.ID, c.ItemID, c.Nickname, c.Body).Scan(&c.CreatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// ListByWishlist returns all comments of a list keyed by item id. Guest
// nicknames stay out of the result; the owner only ever sees body and
// timestamp.
func (r *CommentRepository) ListByWishlist(ctx context.Context, wishlistID string) (map[string][]models.Comment, error) {
	query := `
		SELECT c.id, c.item_id, c.body, c.created_at
		FROM comments c
		JOIN items i ON i.id = c.item_id
		WHERE i.wishlist_id = $1
		ORDER BY c.created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byItem := make(map[string][]models.Comment)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	return byItem, rows.Err()
}
