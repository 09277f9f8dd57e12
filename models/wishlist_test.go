package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWishlistAddItemRejectsDuplicate(t *testing.T) {
	pid := primitive.NewObjectID()
	wishlist := &Wishlist{}

	require.NoError(t, wishlist.AddItem(WishlistItem{ProductID: pid, Color: "Blue"}))

	// Same (product, color) is a conflict, not a merge; color case is ignored.
	err := wishlist.AddItem(WishlistItem{ProductID: pid, Color: "blue"})
	require.ErrorIs(t, err, ErrAlreadyInWishlist)
	assert.Len(t, wishlist.Items, 1)

	// A different color of the same product is a separate entry.
	require.NoError(t, wishlist.AddItem(WishlistItem{ProductID: pid, Color: "Green"}))
	assert.Len(t, wishlist.Items, 2)
}

func TestWishlistContains(t *testing.T) {
	pid := primitive.NewObjectID()
	wishlist := &Wishlist{Items: []WishlistItem{{ProductID: pid, Color: "Blue"}}}

	assert.True(t, wishlist.Contains(pid, "BLUE"))
	assert.False(t, wishlist.Contains(pid, "Red"))
	assert.False(t, wishlist.Contains(primitive.NewObjectID(), "Blue"))
}

func TestWishlistRemoveItem(t *testing.T) {
	pid := primitive.NewObjectID()
	wishlist := &Wishlist{Items: []WishlistItem{
		{ProductID: pid, Color: "Blue"},
		{ProductID: pid, Color: "Green"},
	}}

	assert.False(t, wishlist.RemoveItem(pid, "Red"))
	assert.Len(t, wishlist.Items, 2)

	assert.True(t, wishlist.RemoveItem(pid, "blue"))
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, "Green", wishlist.Items[0].Color)
}
