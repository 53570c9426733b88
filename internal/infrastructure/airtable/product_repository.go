package airtable

import (
	"context"
	"fmt"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

const productsTable = "Products"

// ProductRepository implements repository.ProductRepository against the
// tabular store.
type ProductRepository struct {
	client *Client
}

// NewProductRepository creates a new product repository
func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

// ListAll scans the whole product table and indexes it for the pipeline's
// by-ID and by-name lookups. The table is a few dozen rows; a full scan per
// export run is cheaper than tracking staleness.
func (r *ProductRepository) ListAll(ctx context.Context) (*entity.ProductIndex, error) {
	records, err := r.client.ListRecords(ctx, productsTable, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]*entity.Product, 0, len(records))
	for i := range records {
		products = append(products, productFromRecord(&records[i]))
	}
	return entity.NewProductIndex(products), nil
}

// Update patches a product record.
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	fields := map[string]interface{}{
		"Product Name": product.Name,
	}
	if product.ItemCode != "" {
		fields["QB Item Code"] = product.ItemCode
	}
	if product.PricePerTon > 0 {
		fields["Price Per Ton"] = product.PricePerTon
	}
	if product.LbsPerYard > 0 {
		fields["Weight Per Cubic Yard"] = product.LbsPerYard
	}

	if err := r.client.UpdateRecord(ctx, productsTable, product.ID, fields); err != nil {
		return fmt.Errorf("update product %s: %w", product.ID, err)
	}
	return nil
}
