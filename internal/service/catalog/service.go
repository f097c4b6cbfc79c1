// Package catalog serves product listing and detail reads.
package catalog

import (
	"context"

	"merchstore/internal/domain"
	"merchstore/internal/images"
	productrepo "merchstore/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the catalog for the listing page, each product carrying its
// resolved image asset.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Image = images.Resolve(products[i].Name)
	}
	return products, nil
}

// Get returns one product with full detail. A missing id surfaces
// domain.ErrNotFound for the caller to render as a not-found state.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Image = images.Resolve(p.Name)
	return p, nil
}
