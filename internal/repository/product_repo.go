package repository

import (
	"context"
	"errors"

	"KobbyWearsAPI/internal/model"
)

type ProductRepository struct {
	DB DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, name, price, img_url, category, color, description, available, featured`

func scanProduct(row interface{ Scan(dest ...any) error }, p *model.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Price, &p.ImgURL, &p.Category, &p.Color, &p.Description, &p.Available, &p.Featured)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	if err := scanProduct(r.DB.QueryRow(ctx, query, id), &p); err != nil {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.queryProducts(ctx, query)
}

func (r *ProductRepository) ListByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category=$1 ORDER BY id`
	return r.queryProducts(ctx, query, category)
}

func (r *ProductRepository) ListFeatured(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE featured ORDER BY id`
	return r.queryProducts(ctx, query)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
