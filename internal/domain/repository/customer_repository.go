package repository

import (
	"context"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// GetByIDs fetches the given customers keyed by record ID. Individual
	// lookup failures are logged and skipped; callers substitute defaults
	// for missing entries.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}

// CarrierRepository defines the interface for carrier data operations
type CarrierRepository interface {
	List(ctx context.Context) ([]*entity.Carrier, error)
	Create(ctx context.Context, carrier *entity.Carrier) error
	Update(ctx context.Context, carrier *entity.Carrier) error
}

// TruckRepository defines the interface for truck data operations
type TruckRepository interface {
	List(ctx context.Context) ([]*entity.Truck, error)
	Create(ctx context.Context, truck *entity.Truck) error
	Update(ctx context.Context, truck *entity.Truck) error
}
