package repository

import (
	"context"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

// ProductRepository defines the interface for product reference data
type ProductRepository interface {
	// ListAll scans the full product table and returns it indexed by record
	// ID and by case-folded name.
	ListAll(ctx context.Context) (*entity.ProductIndex, error)
	Update(ctx context.Context, product *entity.Product) error
}
