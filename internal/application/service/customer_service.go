package service

import (
	"context"
	"strings"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/pkg/apperror"
)

// CustomerService handles customer business logic.
type CustomerService struct {
	repo repository.CustomerRepository
}

// NewCustomerService creates a new customer service instance.
func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// GetCustomer retrieves a customer by record ID.
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	if id == "" {
		return nil, apperror.NewBadRequestError("customer ID is required")
	}
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists all customers sorted by name.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	return s.repo.List(ctx)
}

// CreateCustomer stores a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer stores changed customer fields.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	if customer.ID == "" {
		return nil, apperror.NewBadRequestError("customer ID is required")
	}
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if id == "" {
		return apperror.NewBadRequestError("customer ID is required")
	}
	return s.repo.Delete(ctx, id)
}

func validateCustomer(customer *entity.Customer) error {
	var fields []apperror.FieldError
	if strings.TrimSpace(customer.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	for _, r := range []*float64{customer.PriceTon, customer.PriceYard, customer.UniversalRate, customer.FreightRate} {
		if r != nil && *r < 0 {
			fields = append(fields, apperror.FieldError{Field: "rates", Message: "rates cannot be negative"})
			break
		}
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}
