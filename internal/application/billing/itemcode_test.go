package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beaverpumice/scalehouse-api/internal/domain/entity"
)

func TestValidItemCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"P001", true},
		{"P014", true},
		{" P003 ", true},
		{"freight", true},
		{"Freight", true},
		{"FREIGHT", true},
		{"P01", false},
		{"P0011", false},
		{"p001", false},
		{"X001", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidItemCode(tt.code))
		})
	}
}

func TestResolveItemCode(t *testing.T) {
	products := entity.NewProductIndex([]*entity.Product{
		{ID: "recP1", Name: "3/8 x 1/8", ItemCode: "P001"},
		{ID: "recP2", Name: "Birds Eye", ItemCode: "P004"},
		{ID: "recNoCode", Name: "Custom Blend"},
	})

	tests := []struct {
		name        string
		ticketCode  string
		productID   string
		productName string
		want        string
	}{
		{
			name:       "valid ticket code wins over everything",
			ticketCode: "P009", productID: "recP1", productName: "3/8 x 1/8",
			want: "P009",
		},
		{
			name:       "invalid ticket code is ignored",
			ticketCode: "bogus", productID: "recP1", productName: "3/8 x 1/8",
			want: "P001",
		},
		{
			name:      "product code by id",
			productID: "recP2", productName: "renamed since",
			want: "P004",
		},
		{
			name:        "product code by name when id is stale",
			productID:   "recGone",
			productName: "birds eye",
			want:        "P004",
		},
		{
			name:        "legacy spelling through the fallback table",
			productName: "3/8 X MINUS",
			want:        "P003",
		},
		{
			name:        "squeezed legacy spelling matched exactly",
			productName: "3/8X MINUS",
			want:        "P003",
		},
		{
			name:        "extra whitespace matched by the squeezed tier",
			productName: "3/8  X  MINUS",
			want:        "P003",
		},
		{
			name:        "substring containment",
			productName: "Pumice- fine grade",
			want:        "P008",
		},
		{
			name:        "freight spelled as a product",
			productName: "FREIGHT",
			want:        "Freight",
		},
		{
			name:        "unknown name passes through raw",
			productID:   "recNoCode",
			productName: "Custom Blend",
			want:        "Custom Blend",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveItemCode(tt.ticketCode, tt.productID, tt.productName, products)
			assert.Equal(t, tt.want, got)
		})
	}
}
