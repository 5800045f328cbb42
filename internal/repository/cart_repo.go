package repository

import (
	"context"
	"errors"
	"time"

	"KobbyWearsAPI/internal/model"
)

// ErrCartItemNotFound covers both "no such line" and "someone else's line";
// callers must not be able to tell the two apart.
var ErrCartItemNotFound = errors.New("cart item not found")

type CartRepository struct {
	DB DB
}

func NewCartRepository(db DB) *CartRepository {
	return &CartRepository{DB: db}
}

// GetOrCreateCart returns the user's cart id, creating the cart on first
// access. The upsert makes it a single atomic statement.
func (r *CartRepository) GetOrCreateCart(ctx context.Context, userID int64) (int64, error) {
	var id int64
	query := `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id
	`
	if err := r.DB.QueryRow(ctx, query, userID).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListItems returns cart lines joined with product display fields
func (r *CartRepository) ListItems(ctx context.Context, cartID int64) ([]model.CartLine, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, p.price, p.img_url, ci.quantity, ci.size, ci.color
		FROM cartitems ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id=$1
		ORDER BY ci.id
	`
	rows, err := r.DB.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []model.CartLine{}
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.Name, &l.Price, &l.ImgURL, &l.Quantity, &l.Size, &l.Color); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpsertItem inserts a line or merges into the existing one with the same
// (cart_id, product_id, size, color) key by adding the quantities.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID, productID int64, qty int, size, color string) error {
	query := `
		INSERT INTO cartitems (cart_id, product_id, quantity, size, color, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, product_id, size, color)
		DO UPDATE SET quantity = cartitems.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.Exec(ctx, query, cartID, productID, qty, size, color, time.Now())
	return err
}

// SetQuantity sets an exact quantity on a line the user owns. A quantity of
// zero or less deletes the line instead of persisting it.
func (r *CartRepository) SetQuantity(ctx context.Context, itemID, userID int64, qty int) error {
	if qty <= 0 {
		return r.DeleteItem(ctx, itemID, userID)
	}
	query := `
		UPDATE cartitems ci SET quantity=$1, updated_at=$2
		FROM carts c
		WHERE ci.id=$3 AND ci.cart_id=c.id AND c.user_id=$4
	`
	tag, err := r.DB.Exec(ctx, query, qty, time.Now(), itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// AdjustQuantity applies a delta to a line the user owns and returns the
// resulting quantity. When the result drops below 1 the line is deleted and
// 0 is returned. The row is locked for the duration so concurrent deltas
// serialize instead of overwriting each other.
func (r *CartRepository) AdjustQuantity(ctx context.Context, itemID, userID int64, delta int) (int, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var qty int
	query := `
		SELECT ci.quantity
		FROM cartitems ci
		JOIN carts c ON c.id = ci.cart_id
		WHERE ci.id=$1 AND c.user_id=$2
		FOR UPDATE OF ci
	`
	if err := tx.QueryRow(ctx, query, itemID, userID).Scan(&qty); err != nil {
		return 0, ErrCartItemNotFound
	}

	newQty := qty + delta
	if newQty < 1 {
		if _, err := tx.Exec(ctx, `DELETE FROM cartitems WHERE id=$1`, itemID); err != nil {
			return 0, err
		}
		newQty = 0
	} else {
		if _, err := tx.Exec(ctx, `UPDATE cartitems SET quantity=$1, updated_at=$2 WHERE id=$3`, newQty, time.Now(), itemID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newQty, nil
}

// DeleteItem removes a single line the user owns
func (r *CartRepository) DeleteItem(ctx context.Context, itemID, userID int64) error {
	query := `
		DELETE FROM cartitems ci USING carts c
		WHERE ci.id=$1 AND ci.cart_id=c.id AND c.user_id=$2
	`
	tag, err := r.DB.Exec(ctx, query, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// ClearCart deletes every line under the user's cart. No-op (not an error)
// when the cart is empty or doesn't exist yet.
func (r *CartRepository) ClearCart(ctx context.Context, userID int64) error {
	query := `
		DELETE FROM cartitems ci USING carts c
		WHERE ci.cart_id=c.id AND c.user_id=$1
	`
	_, err := r.DB.Exec(ctx, query, userID)
	return err
}
