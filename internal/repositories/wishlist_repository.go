package repositories

import (
	"context"
	"database/sql"
	"errors"

	"wishlyBack/internal/models"
)

type WishlistRepository struct {
	DB *sql.DB
}

// CreateWishlist inserts the list with a caller-chosen slug. A slug
// collision surfaces as models.ErrSlugExhausted so the service can retry
// with a fresh token.
func (r *WishlistRepository) CreateWishlist(ctx context.Context, w models.Wishlist) (models.Wishlist, error) {
	query := `
		INSERT INTO wishlists (id, owner_id, slug, title, description, deadline_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	err := r.DB.QueryRowContext(ctx, query,
		w.ID, w.OwnerID, w.Slug, w.Title, w.Description, w.DeadlineAt,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Wishlist{}, models.ErrSlugExhausted
		}
		return models.Wishlist{}, err
	}
	return w, nil
}

func (r *WishlistRepository) GetBySlug(ctx context.Context, slug string) (models.Wishlist, error) {
	return r.getOne(ctx, `WHERE slug = $1`, slug)
}

func (r *WishlistRepository) GetByID(ctx context.Context, id string) (models.Wishlist, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *WishlistRepository) getOne(ctx context.Context, where string, arg any) (models.Wishlist, error) {
	var w models.Wishlist
	query := `
		SELECT id, owner_id, slug, title, description, deadline_at, created_at, updated_at
		FROM wishlists ` + where
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&w.ID, &w.OwnerID, &w.Slug, &w.Title, &w.Description, &w.DeadlineAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Wishlist{}, models.ErrNotFound
		}
		return models.Wishlist{}, err
	}
	return w, nil
}

func (r *WishlistRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Wishlist, error) {
	query := `
		SELECT id, owner_id, slug, title, description, deadline_at, created_at, updated_at
		FROM wishlists
		WHERE owner_id = $1
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []models.Wishlist{}
	for rows.Next() {
		var w models.Wishlist
		if err := rows.Scan(&w.ID, &w.OwnerID, &w.Slug, &w.Title, &w.Description, &w.DeadlineAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, w)
	}
	return lists, rows.Err()
}

// UpdateWishlist applies a partial patch; untouched fields keep their value.
func (r *WishlistRepository) UpdateWishlist(ctx context.Context, id string, patch models.WishlistPatch) error {
	query := `
		UPDATE wishlists
		SET title       = COALESCE($2, title),
		    description = COALESCE($3, description),
		    deadline_at = CASE WHEN $5 THEN NULL ELSE COALESCE($4, deadline_at) END,
		    updated_at  = now()
		WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, patch.Title, patch.Description, patch.DeadlineAt, patch.ClearDeadline)
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

func (r *WishlistRepository) OwnerName(ctx context.Context, listID string) (string, error) {
	var name string
	query := `SELECT u.name FROM users u JOIN wishlists w ON w.owner_id = u.id WHERE w.id = $1`
	err := r.DB.QueryRowContext(ctx, query, listID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return name, nil
}
