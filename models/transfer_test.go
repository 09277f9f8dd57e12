package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMoveCartItemToWishlist(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{Items: []CartItem{{ProductID: pid, Color: "Red", Size: "M", Quantity: 2}}}
	wishlist := &Wishlist{}

	moved, err := MoveCartItemToWishlist(cart, wishlist, pid, "Red", "M")
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Quantity)

	// Gone from the cart, present in the wishlist under (product, color).
	assert.Empty(t, cart.Items)
	require.Len(t, wishlist.Items, 1)
	assert.Equal(t, pid, wishlist.Items[0].ProductID)
	assert.Equal(t, "Red", wishlist.Items[0].Color)
}

func TestMoveCartItemToWishlistSkipsDuplicateButStillRemoves(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{Items: []CartItem{{ProductID: pid, Color: "Red", Size: "M", Quantity: 1}}}
	wishlist := &Wishlist{Items: []WishlistItem{{ProductID: pid, Color: "red"}}}

	_, err := MoveCartItemToWishlist(cart, wishlist, pid, "Red", "M")
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Len(t, wishlist.Items, 1)
}

func TestMoveCartItemToWishlistMissingItem(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{Items: []CartItem{{ProductID: pid, Color: "Red", Size: "M", Quantity: 1}}}
	wishlist := &Wishlist{}

	_, err := MoveCartItemToWishlist(cart, wishlist, pid, "Red", "L")
	require.ErrorIs(t, err, ErrCartItemNotFound)

	// Neither container changed.
	assert.Len(t, cart.Items, 1)
	assert.Empty(t, wishlist.Items)
}

func TestMoveWishlistItemToCart(t *testing.T) {
	pid := primitive.NewObjectID()
	wishlist := &Wishlist{Items: []WishlistItem{{ProductID: pid, Color: "Blue"}}}
	cart := &Cart{}

	item := CartItem{ProductID: pid, Color: "Blue", Size: "L", Quantity: 1}
	require.NoError(t, MoveWishlistItemToCart(wishlist, cart, item, 3))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.False(t, wishlist.Contains(pid, "Blue"))
}

func TestMoveWishlistItemToCartMergesWithExistingLine(t *testing.T) {
	pid := primitive.NewObjectID()
	wishlist := &Wishlist{Items: []WishlistItem{{ProductID: pid, Color: "Blue"}}}
	cart := &Cart{Items: []CartItem{{ProductID: pid, Color: "Blue", Size: "L", Quantity: 2}}}

	item := CartItem{ProductID: pid, Color: "Blue", Size: "L", Quantity: 1}
	require.NoError(t, MoveWishlistItemToCart(wishlist, cart, item, 3))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Empty(t, wishlist.Items)
}

func TestMoveWishlistItemToCartStockCeiling(t *testing.T) {
	pid := primitive.NewObjectID()
	wishlist := &Wishlist{Items: []WishlistItem{{ProductID: pid, Color: "Blue"}}}
	cart := &Cart{Items: []CartItem{{ProductID: pid, Color: "Blue", Size: "L", Quantity: 3}}}

	item := CartItem{ProductID: pid, Color: "Blue", Size: "L", Quantity: 1}
	err := MoveWishlistItemToCart(wishlist, cart, item, 3)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// On failure nothing moved: cart quantity intact, wishlist entry kept.
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, wishlist.Contains(pid, "Blue"))
}

func TestMoveWishlistItemToCartMissingEntry(t *testing.T) {
	pid := primitive.NewObjectID()
	wishlist := &Wishlist{}
	cart := &Cart{}

	item := CartItem{ProductID: pid, Color: "Blue", Size: "L", Quantity: 1}
	err := MoveWishlistItemToCart(wishlist, cart, item, 3)
	require.ErrorIs(t, err, ErrWishlistItemNotFound)
	assert.Empty(t, cart.Items)
}
