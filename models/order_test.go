package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validOrder() *Order {
	return &Order{
		UserID: primitive.NewObjectID(),
		OrderItems: []OrderItem{
			{ProductID: primitive.NewObjectID(), Color: "Red", Size: "M", Quantity: 2},
		},
		ShippingInfo: ShippingInfo{
			Name:    "Asha Verma",
			Phone:   "9876543210",
			Pincode: "560001",
			Address: "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
		},
		PaymentInfo: PaymentInfo{Method: "card", Status: "Pending"},
		TotalAmount: 500,
		OrderStatus: OrderStatusPending,
	}
}

func TestOrderValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Order)
		wantMsg string
	}{
		{"valid order", func(*Order) {}, ""},
		{"no items", func(o *Order) { o.OrderItems = nil }, "Order must contain at least one item."},
		{"missing name", func(o *Order) { o.ShippingInfo.Name = "" }, "Please provide all required shipping information."},
		{"missing pincode", func(o *Order) { o.ShippingInfo.Pincode = "" }, "Please provide all required shipping information."},
		{"missing city", func(o *Order) { o.ShippingInfo.City = "" }, "Please provide all required shipping information."},
		{"short phone", func(o *Order) { o.ShippingInfo.Phone = "12345" }, "Invalid phone number. It must be exactly 10 digits."},
		{"phone with letters", func(o *Order) { o.ShippingInfo.Phone = "98765abc10" }, "Invalid phone number. It must be exactly 10 digits."},
		{"missing payment method", func(o *Order) { o.PaymentInfo.Method = "" }, "Payment method is required."},
		{"zero total", func(o *Order) { o.TotalAmount = 0 }, "Invalid total amount."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(order)
			err := order.Validate()
			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, IsValidOrderStatus(status), status)
	}
	assert.False(t, IsValidOrderStatus("Returned"))
	assert.False(t, IsValidOrderStatus("pending"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestCanCancelOnlyWhilePending(t *testing.T) {
	order := validOrder()
	assert.True(t, order.CanCancel())

	for _, status := range []string{OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		order.OrderStatus = status
		assert.False(t, order.CanCancel(), status)
	}
}

func TestOrderItemsAreIndependentOfCart(t *testing.T) {
	pid := primitive.NewObjectID()
	cart := Cart{Items: []CartItem{{ProductID: pid, Color: "Red", Size: "M", Quantity: 2}}}

	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
		})
	}
	order := validOrder()
	order.OrderItems = items

	// Re-adding to the cart after checkout must not touch the order snapshot.
	require.NoError(t, cart.AddItem(CartItem{ProductID: pid, Color: "Red", Size: "M", Quantity: 3}, 10))
	cart.Items[0].Color = "Green"

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.Equal(t, "Red", order.OrderItems[0].Color)
}
