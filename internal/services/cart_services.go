package services

import (
	"context"
	"errors"

	"KobbyWearsAPI/internal/model"
	"KobbyWearsAPI/internal/repository"
)

// Defaults applied when an add request leaves size/color unspecified
const (
	DefaultSize  = "One Size"
	DefaultColor = "Default"
)

var ErrCartItemNotFound = repository.ErrCartItemNotFound

type CartService struct {
	Repo     *repository.CartRepository
	Products *repository.ProductRepository
}

func NewCartService(r *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{Repo: r, Products: pr}
}

// List returns the user's cart lines, creating the cart on first access
func (s *CartService) List(ctx context.Context, userID int64) ([]model.CartLine, error) {
	cartID, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListItems(ctx, cartID)
}

// Add puts a product into the user's cart. A line with the same
// (product, size, color) already present has its quantity incremented
// instead of a second line appearing. No availability check happens here.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int, size, color string) error {
	if productID <= 0 {
		return errors.New("product_id is required")
	}
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return errors.New("quantity must be positive")
	}
	if size == "" {
		size = DefaultSize
	}
	if color == "" {
		color = DefaultColor
	}

	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return err
	}

	cartID, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.Repo.UpsertItem(ctx, cartID, productID, qty, size, color)
}

// SetQuantity sets an absolute quantity on a line; zero or less removes it
func (s *CartService) SetQuantity(ctx context.Context, userID, itemID int64, qty int) error {
	return s.Repo.SetQuantity(ctx, itemID, userID, qty)
}

// Adjust applies a delta to a line's quantity atomically and returns the
// resulting quantity (0 when the line was removed).
func (s *CartService) Adjust(ctx context.Context, userID, itemID int64, delta int) (int, error) {
	if delta == 0 {
		return 0, errors.New("delta must be non-zero")
	}
	return s.Repo.AdjustQuantity(ctx, itemID, userID, delta)
}

// Remove deletes a single line from the user's cart
func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	return s.Repo.DeleteItem(ctx, itemID, userID)
}

// Clear empties the user's cart; calling it on an empty cart is fine
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.Repo.ClearCart(ctx, userID)
}
