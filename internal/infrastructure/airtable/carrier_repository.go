package airtable

import (
	"context"
	"fmt"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

const (
	carriersTable = "Carriers"
	trucksTable   = "Trucks"
)

// CarrierRepository implements repository.CarrierRepository against the
// tabular store.
type CarrierRepository struct {
	client *Client
}

// NewCarrierRepository creates a new carrier repository
func NewCarrierRepository(client *Client) *CarrierRepository {
	return &CarrierRepository{client: client}
}

// List returns every carrier.
func (r *CarrierRepository) List(ctx context.Context) ([]*entity.Carrier, error) {
	records, err := r.client.ListRecords(ctx, carriersTable, ListOptions{
		Sort: []SortField{{Field: "Carrier Name", Direction: "asc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list carriers: %w", err)
	}

	carriers := make([]*entity.Carrier, 0, len(records))
	for i := range records {
		carriers = append(carriers, carrierFromRecord(&records[i]))
	}
	return carriers, nil
}

// Create inserts a new carrier.
func (r *CarrierRepository) Create(ctx context.Context, carrier *entity.Carrier) error {
	rec, err := r.client.CreateRecord(ctx, carriersTable, carrierFields(carrier))
	if err != nil {
		return fmt.Errorf("create carrier: %w", err)
	}
	carrier.ID = rec.ID
	return nil
}

// Update patches a carrier record.
func (r *CarrierRepository) Update(ctx context.Context, carrier *entity.Carrier) error {
	if err := r.client.UpdateRecord(ctx, carriersTable, carrier.ID, carrierFields(carrier)); err != nil {
		return fmt.Errorf("update carrier %s: %w", carrier.ID, err)
	}
	return nil
}

func carrierFields(carrier *entity.Carrier) map[string]interface{} {
	fields := map[string]interface{}{
		"Carrier Name": carrier.Name,
		"Active":       carrier.Active,
	}
	if carrier.Contact != "" {
		fields["Contact"] = carrier.Contact
	}
	if carrier.Phone != "" {
		fields["Phone"] = carrier.Phone
	}
	return fields
}

// TruckRepository implements repository.TruckRepository against the tabular
// store.
type TruckRepository struct {
	client *Client
}

// NewTruckRepository creates a new truck repository
func NewTruckRepository(client *Client) *TruckRepository {
	return &TruckRepository{client: client}
}

// List returns every truck.
func (r *TruckRepository) List(ctx context.Context) ([]*entity.Truck, error) {
	records, err := r.client.ListRecords(ctx, trucksTable, ListOptions{
		Sort: []SortField{{Field: "Truck Name", Direction: "asc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list trucks: %w", err)
	}

	trucks := make([]*entity.Truck, 0, len(records))
	for i := range records {
		trucks = append(trucks, truckFromRecord(&records[i]))
	}
	return trucks, nil
}

// Create inserts a new truck.
func (r *TruckRepository) Create(ctx context.Context, truck *entity.Truck) error {
	rec, err := r.client.CreateRecord(ctx, trucksTable, truckFields(truck))
	if err != nil {
		return fmt.Errorf("create truck: %w", err)
	}
	truck.ID = rec.ID
	return nil
}

// Update patches a truck record.
func (r *TruckRepository) Update(ctx context.Context, truck *entity.Truck) error {
	if err := r.client.UpdateRecord(ctx, trucksTable, truck.ID, truckFields(truck)); err != nil {
		return fmt.Errorf("update truck %s: %w", truck.ID, err)
	}
	return nil
}

func truckFields(truck *entity.Truck) map[string]interface{} {
	fields := map[string]interface{}{
		"Truck Name": truck.Name,
		"Active":     truck.Active,
	}
	if truck.CarrierID != "" {
		fields["Carrier"] = []string{truck.CarrierID}
	}
	if truck.Plate != "" {
		fields["Plate"] = truck.Plate
	}
	if truck.TareLbs > 0 {
		fields["Tare Weight lbs"] = truck.TareLbs
	}
	return fields
}
