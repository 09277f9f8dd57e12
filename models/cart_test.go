package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCartAddItemMergesSameKey(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{}

	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "M", Quantity: 2}, 5))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	// Same key merges, quantities summed.
	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "M", Quantity: 3}, 5))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartAddItemColorKeyIsCaseInsensitive(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{}

	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "M", Quantity: 1}, 5))
	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "red", Size: "M", Quantity: 1}, 5))

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartAddItemStockCeiling(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{}

	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "M", Quantity: 2}, 5))

	// 2+4 exceeds the 5 available; the cart must be left untouched.
	err := cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "M", Quantity: 4}, 5)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartAddItemDistinctKeysAppend(t *testing.T) {
	pid := primitive.NewObjectID()
	other := primitive.NewObjectID()
	cart := &Cart{}

	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "M", Quantity: 1}, 5))
	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "L", Quantity: 1}, 5))
	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Blue", Size: "M", Quantity: 1}, 5))
	require.NoError(t, cart.AddItem(CartItem{ProductID: other, Color: "Red", Size: "M", Quantity: 1}, 5))

	assert.Len(t, cart.Items, 4)
}

func TestCartFindItemReturnsMutablePointer(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{Items: []CartItem{{ProductID: pid, Color: "Red", Size: "M", Quantity: 1}}}

	item := cart.FindItem(pid, "RED", "M")
	require.NotNil(t, item)

	item.Quantity = 7
	assert.Equal(t, 7, cart.Items[0].Quantity)

	assert.Nil(t, cart.FindItem(pid, "Red", "S"))
	assert.Nil(t, cart.FindItem(primitive.NewObjectID(), "Red", "M"))
}

func TestCartRemoveItem(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := &Cart{Items: []CartItem{
		{ProductID: pid, Color: "Red", Size: "M", Quantity: 1},
		{ProductID: pid, Color: "Red", Size: "L", Quantity: 2},
	}}

	assert.False(t, cart.RemoveItem(pid, "Red", "S"))
	assert.Len(t, cart.Items, 2)

	assert.True(t, cart.RemoveItem(pid, "red", "M"))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "L", cart.Items[0].Size)

	// Emptying the cart leaves an explicit empty list, not nil.
	assert.True(t, cart.RemoveItem(pid, "Red", "L"))
	require.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}
