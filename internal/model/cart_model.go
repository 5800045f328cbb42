package model

import "time"

// Cart represents an entry in the carts table. One cart per user,
// created lazily on first access.
type Cart struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

// CartItem represents a row in the cartitems table. Lines are unique per
// (cart_id, product_id, size, color); adding the same key merges quantities.
type CartItem struct {
	ID        int64      `json:"id"`
	CartID    int64      `json:"cart_id"`
	ProductID int64      `json:"product_id"`
	Quantity  int        `json:"quantity"`
	Size      string     `json:"size"`
	Color     string     `json:"color"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CartLine is what GET /cart exposes (joined with products)
type CartLine struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImgURL    string  `json:"img_url"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}
