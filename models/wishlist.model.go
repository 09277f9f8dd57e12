package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrAlreadyInWishlist    = errors.New("product already in wishlist")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

// WishlistItem is keyed by (product, color). There is no size or quantity: a
// wishlist entry records intent, not a reserved amount.
type WishlistItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Color     string             `bson:"color" json:"color"`
	Product   *Product           `bson:"-" json:"product,omitempty"`
}

// Wishlist represents a user's wishlist
type Wishlist struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Items     []WishlistItem     `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Contains reports whether the (product, color) key is already present.
func (w *Wishlist) Contains(productID primitive.ObjectID, color string) bool {
	for _, item := range w.Items {
		if item.ProductID == productID && strings.EqualFold(item.Color, color) {
			return true
		}
	}
	return false
}

// AddItem appends the item, rejecting a duplicate (product, color) key.
func (w *Wishlist) AddItem(item WishlistItem) error {
	if w.Contains(item.ProductID, item.Color) {
		return ErrAlreadyInWishlist
	}
	w.Items = append(w.Items, item)
	return nil
}

// RemoveItem deletes every entry matching (product, color) and reports whether
// anything was removed.
func (w *Wishlist) RemoveItem(productID primitive.ObjectID, color string) bool {
	kept := make([]WishlistItem, 0, len(w.Items))
	removed := false
	for _, item := range w.Items {
		if item.ProductID == productID && strings.EqualFold(item.Color, color) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	w.Items = kept
	return removed
}
