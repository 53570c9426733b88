package service

import (
	"context"
	"strings"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
	"github.com/beaverpumice/scalehouse-api/internal/domain/repository"
	"github.com/beaverpumice/scalehouse-api/pkg/apperror"
)

// CarrierService handles hauling carrier and truck business logic.
type CarrierService struct {
	carriers repository.CarrierRepository
	trucks   repository.TruckRepository
}

// NewCarrierService creates a new carrier service instance.
func NewCarrierService(carriers repository.CarrierRepository, trucks repository.TruckRepository) *CarrierService {
	return &CarrierService{carriers: carriers, trucks: trucks}
}

// ListCarriers lists all carriers.
func (s *CarrierService) ListCarriers(ctx context.Context) ([]*entity.Carrier, error) {
	return s.carriers.List(ctx)
}

// CreateCarrier stores a new carrier.
func (s *CarrierService) CreateCarrier(ctx context.Context, carrier *entity.Carrier) (*entity.Carrier, error) {
	if strings.TrimSpace(carrier.Name) == "" {
		return nil, apperror.NewBadRequestError("carrier name is required")
	}
	if err := s.carriers.Create(ctx, carrier); err != nil {
		return nil, err
	}
	return carrier, nil
}

// UpdateCarrier stores changed carrier fields.
func (s *CarrierService) UpdateCarrier(ctx context.Context, carrier *entity.Carrier) (*entity.Carrier, error) {
	if carrier.ID == "" {
		return nil, apperror.NewBadRequestError("carrier ID is required")
	}
	if err := s.carriers.Update(ctx, carrier); err != nil {
		return nil, err
	}
	return carrier, nil
}

// ListTrucks lists all trucks.
func (s *CarrierService) ListTrucks(ctx context.Context) ([]*entity.Truck, error) {
	return s.trucks.List(ctx)
}

// CreateTruck stores a new truck.
func (s *CarrierService) CreateTruck(ctx context.Context, truck *entity.Truck) (*entity.Truck, error) {
	if strings.TrimSpace(truck.Name) == "" {
		return nil, apperror.NewBadRequestError("truck name is required")
	}
	if truck.TareLbs < 0 {
		return nil, apperror.NewBadRequestError("stored tare cannot be negative")
	}
	if err := s.trucks.Create(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}

// UpdateTruck stores changed truck fields.
func (s *CarrierService) UpdateTruck(ctx context.Context, truck *entity.Truck) (*entity.Truck, error) {
	if truck.ID == "" {
		return nil, apperror.NewBadRequestError("truck ID is required")
	}
	if err := s.trucks.Update(ctx, truck); err != nil {
		return nil, err
	}
	return truck, nil
}
