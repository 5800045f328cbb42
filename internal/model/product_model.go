package model

// Product represents a row in the products table. The cart subsystem only
// reads products; catalog writes happen out of band.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImgURL      string  `json:"img_url"`
	Category    string  `json:"category"`
	Color       string  `json:"color"`
	Description string  `json:"description,omitempty"`
	Available   bool    `json:"available"`
	Featured    bool    `json:"featured"`
}
