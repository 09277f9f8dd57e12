package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartItemNotFound  = errors.New("cart item not found")
)

// CartItem represents an item in the cart, keyed by (product, color, size).
// Product is populated on reads and never stored alongside the reference.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Color     string             `bson:"color" json:"color"`
	Size      string             `bson:"size" json:"size"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Product   *Product           `bson:"-" json:"product,omitempty"`
}

// Cart represents a user's shopping cart
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// FindItem returns a pointer to the line item with the given key, or nil.
// Color comparison is case-insensitive, size is exact.
func (c *Cart) FindItem(productID primitive.ObjectID, color, size string) *CartItem {
	for i := range c.Items {
		item := &c.Items[i]
		if item.ProductID == productID && strings.EqualFold(item.Color, color) && item.Size == size {
			return item
		}
	}
	return nil
}

// AddItem merges the item into the cart. An existing line item with the same
// (product, color, size) key has its quantity summed; the summed quantity must
// not exceed available or the cart is left untouched and ErrInsufficientStock
// is returned. A new key is appended.
func (c *Cart) AddItem(item CartItem, available int) error {
	if existing := c.FindItem(item.ProductID, item.Color, item.Size); existing != nil {
		total := existing.Quantity + item.Quantity
		if total > available {
			return ErrInsufficientStock
		}
		existing.Quantity = total
		return nil
	}
	c.Items = append(c.Items, item)
	return nil
}

// RemoveItem deletes the line item with the given key. It reports whether an
// item was removed; the remaining slice is never nil so an emptied cart
// persists as an explicit empty list.
func (c *Cart) RemoveItem(productID primitive.ObjectID, color, size string) bool {
	kept := make([]CartItem, 0, len(c.Items))
	removed := false
	for _, item := range c.Items {
		if item.ProductID == productID && strings.EqualFold(item.Color, color) && item.Size == size {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}
