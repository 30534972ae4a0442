package repository

import (
	"context"

	"github.com/lumoshop/lumoshop-api/internal/domain/entity"
)

// ProductRepository is the catalog store contract.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
