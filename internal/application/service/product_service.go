package service

import (
	"context"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/pkg/apperror"
)

// ProductService handles product catalog business logic.
type ProductService struct {
	repo repository.ProductRepository
}

// NewProductService creates a new product service instance.
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListProducts returns the full product catalog.
func (s *ProductService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	idx, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return idx.All(), nil
}

// GetProduct retrieves a product by record ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	if id == "" {
		return nil, apperror.NewBadRequestError("product ID is required")
	}
	idx, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	product := idx.ByID(id)
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct stores changed product fields.
func (s *ProductService) UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.ID == "" {
		return nil, apperror.NewBadRequestError("product ID is required")
	}
	var fields []apperror.FieldError
	if product.PricePerTon < 0 {
		fields = append(fields, apperror.FieldError{Field: "price_per_ton", Message: "price cannot be negative"})
	}
	if product.LbsPerYard < 0 {
		fields = append(fields, apperror.FieldError{Field: "lbs_per_yard", Message: "density cannot be negative"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
