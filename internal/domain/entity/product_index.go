package entity

import "strings"

// ProductIndex holds the full product table indexed for the two lookups the
// pricing pipeline performs: by record ID and by case-folded, trimmed name.
type ProductIndex struct {
	byID   map[string]*Product
	byName map[string]*Product
	all    []*Product
}

// NewProductIndex builds an index over the given products.
func NewProductIndex(products []*Product) *ProductIndex {
	idx := &ProductIndex{
		byID:   make(map[string]*Product, len(products)),
		byName: make(map[string]*Product, len(products)),
		all:    products,
	}
	for _, p := range products {
		idx.byID[p.ID] = p
		if p.Name != "" {
			idx.byName[NormalizeProductName(p.Name)] = p
		}
	}
	return idx
}

// NormalizeProductName case-folds and trims a product name for index lookup.
func NormalizeProductName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ByID returns the product with the given record ID, or nil.
func (idx *ProductIndex) ByID(id string) *Product {
	if idx == nil || id == "" {
		return nil
	}
	return idx.byID[id]
}

// ByName returns the product with the given name (case-insensitive), or nil.
func (idx *ProductIndex) ByName(name string) *Product {
	if idx == nil || name == "" {
		return nil
	}
	return idx.byName[NormalizeProductName(name)]
}

// All returns every indexed product.
func (idx *ProductIndex) All() []*Product {
	if idx == nil {
		return nil
	}
	return idx.all
}
