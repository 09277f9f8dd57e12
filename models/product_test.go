package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *Product {
	return &Product{
		Name: "Classic Tee",
		Colors: []ColorVariant{
			{Color: "Red", Stock: []SizeStock{{Size: "M", Quantity: 5}, {Size: "L", Quantity: 0}}},
			{Color: "Blue", Stock: []SizeStock{{Size: "L", Quantity: 3}}},
		},
	}
}

func TestAvailableQuantity(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		size    string
		want    int
		wantErr error
	}{
		{"exact match", "Red", "M", 5, nil},
		{"color match is case-insensitive", "red", "M", 5, nil},
		{"zero stock is still a valid answer", "Red", "L", 0, nil},
		{"unknown color", "Green", "M", 0, ErrColorNotAvailable},
		{"unknown size for known color", "Blue", "M", 0, ErrSizeNotAvailable},
		{"size match is exact", "Red", "m", 0, ErrSizeNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testProduct().AvailableQuantity(tt.color, tt.size)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
