package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
	"github.com/lumoshop/lumoshop-api/internal/domain/repository"
	"github.com/lumoshop/lumoshop-api/pkg/apperror"
)

// ProductService is thin pass-through glue over the catalog store.
type ProductService struct {
	Repo   repository.ProductRepository
	Logger *logrus.Logger
}

func NewProductService(repo repository.ProductRepository, logger *logrus.Logger) *ProductService {
	return &ProductService{Repo: repo, Logger: logger}
}

func (s *ProductService) Create(ctx context.Context, p *entity.Product) error {
	if err := s.Repo.Create(ctx, p); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperror.NotFound("product not found")
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, p *entity.Product) error {
	if err := s.Repo.Update(ctx, p); err != nil {
		if err == repository.ErrNotFound {
			return apperror.NotFound("product not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperror.NotFound("product not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
