package services

import (
	"context"

	"KobbyWearsAPI/internal/model"
	"KobbyWearsAPI/internal/repository"
)

type ProductService struct {
	Repo *repository.ProductRepository
}

func NewProductService(r *repository.ProductRepository) *ProductService {
	return &ProductService{Repo: r}
}

// List returns the catalog, optionally narrowed by category and/or the
// featured flag.
func (s *ProductService) List(ctx context.Context, category string, featuredOnly bool) ([]model.Product, error) {
	if featuredOnly {
		return s.Repo.ListFeatured(ctx)
	}
	if category != "" {
		return s.Repo.ListByCategory(ctx, category)
	}
	return s.Repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.Repo.GetByID(ctx, id)
}
