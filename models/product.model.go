package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stock lookup errors returned by AvailableQuantity.
var (
	ErrColorNotAvailable = errors.New("color not available for this product")
	ErrSizeNotAvailable  = errors.New("size not available for this color")
)

// SizeStock holds the available quantity for a single size of a color variant.
type SizeStock struct {
	Size     string `bson:"size" json:"size"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// ColorVariant is a purchasable color of a product with per-size stock.
type ColorVariant struct {
	Color  string      `bson:"color" json:"color"`
	Images []string    `bson:"images,omitempty" json:"images,omitempty"`
	Stock  []SizeStock `bson:"stock" json:"stock"`
}

// Product represents a product in the catalog
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Slug         string             `bson:"slug" json:"slug"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Brand        string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Category     string             `bson:"category" json:"category"`
	Categories   []string           `bson:"categories,omitempty" json:"categories,omitempty"`
	Gender       string             `bson:"gender" json:"gender"` // "Men", "Women", "Unisex", "Kids"
	Price        float64            `bson:"price" json:"price"`
	Discount     float64            `bson:"discount" json:"discount"`
	FinalPrice   float64            `bson:"final_price" json:"finalPrice"`
	Material     string             `bson:"material,omitempty" json:"material,omitempty"`
	Sizes        []string           `bson:"sizes" json:"sizes"`
	Colors       []ColorVariant     `bson:"colors" json:"colors"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Rating       float64            `bson:"rating" json:"rating"`
	ReviewsCount int                `bson:"reviews_count" json:"reviewsCount"`
	IsFeatured   bool               `bson:"is_featured" json:"isFeatured"`
	IsNewArrival bool               `bson:"is_new_arrival" json:"isNewArrival"`
	Admin        primitive.ObjectID `bson:"admin,omitempty" json:"admin,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// AvailableQuantity returns how many units of the given color/size variant are
// in stock. The color match is case-insensitive, the size match is exact. It is
// a pure read; nothing in the cart/order flow ever decrements these counts.
func (p *Product) AvailableQuantity(color, size string) (int, error) {
	for _, variant := range p.Colors {
		if !strings.EqualFold(variant.Color, color) {
			continue
		}
		for _, stock := range variant.Stock {
			if stock.Size == size {
				return stock.Quantity, nil
			}
		}
		return 0, ErrSizeNotAvailable
	}
	return 0, ErrColorNotAvailable
}
