package airtable

import (
	"context"
	"fmt"
	"log"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

const customersTable = "Customers"

// CustomerRepository implements repository.CustomerRepository against the
// tabular store.
type CustomerRepository struct {
	client *Client
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(client *Client) *CustomerRepository {
	return &CustomerRepository{client: client}
}

// GetByID fetches one customer. Returns (nil, nil) when the record does not
// exist.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	rec, err := r.client.GetRecord(ctx, customersTable, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch customer %s: %w", id, err)
	}
	return customerFromRecord(rec), nil
}

// GetByIDs fetches the given customers keyed by record ID. A failed batch is
// logged and skipped so a single bad lookup cannot abort a whole export; the
// caller substitutes defaults for missing entries.
func (r *CustomerRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Customer, error) {
	customers := make(map[string]*entity.Customer, len(ids))
	if len(ids) == 0 {
		return customers, nil
	}

	for _, batch := range Chunk(ids) {
		records, err := r.client.ListRecords(ctx, customersTable, ListOptions{
			FilterByFormula: recordIDFormula(batch),
		})
		if err != nil {
			log.Printf("fetch customers: batch of %d failed, continuing without them: %v", len(batch), err)
			continue
		}
		for i := range records {
			customer := customerFromRecord(&records[i])
			customers[customer.ID] = customer
		}
	}
	return customers, nil
}

// List returns every customer.
func (r *CustomerRepository) List(ctx context.Context) ([]*entity.Customer, error) {
	records, err := r.client.ListRecords(ctx, customersTable, ListOptions{
		Sort: []SortField{{Field: "Customer Name", Direction: "asc"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]*entity.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, customerFromRecord(&records[i]))
	}
	return customers, nil
}

// Create inserts a new customer with its pricing profile.
func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	rec, err := r.client.CreateRecord(ctx, customersTable, customerFields(customer))
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	customer.ID = rec.ID
	return nil
}

// Update patches a customer record, pricing profile included.
func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	if err := r.client.UpdateRecord(ctx, customersTable, customer.ID, customerFields(customer)); err != nil {
		return fmt.Errorf("update customer %s: %w", customer.ID, err)
	}
	return nil
}

// Delete removes a customer record.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.DeleteRecord(ctx, customersTable, id); err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}

// customerFields maps the entity back onto canonical store field names.
// Writes always use the first key of each fallback chain.
func customerFields(customer *entity.Customer) map[string]interface{} {
	fields := map[string]interface{}{
		"Customer Name": customer.Name,
	}
	if customer.QBName != "" {
		fields["QB Customer Name"] = customer.QBName
	}
	if customer.Address1 != "" {
		fields["Bill To Address"] = customer.Address1
	}
	if customer.City != "" {
		fields["Bill To City"] = customer.City
	}
	if customer.State != "" {
		fields["Bill To State"] = customer.State
	}
	if customer.Zip != "" {
		fields["Bill To Zip"] = customer.Zip
	}
	if customer.PricingMethod != "" {
		fields["Pricing Method"] = customer.PricingMethod
	}
	if customer.PriceTon != nil {
		fields["Price Ton"] = *customer.PriceTon
	}
	if customer.PriceYard != nil {
		fields["Price Yard"] = *customer.PriceYard
	}
	if customer.UniversalRate != nil {
		fields["Customer Rate"] = *customer.UniversalRate
	}
	if customer.FreightMethod != "" {
		fields["Freight Method"] = customer.FreightMethod
	}
	if customer.FreightRate != nil {
		fields["Freight Rate"] = *customer.FreightRate
	}
	if customer.Email != "" {
		fields["Email"] = customer.Email
	}
	fields["Auto Email"] = customer.AutoEmail
	return fields
}
