package utils

import (
	"strings"
	"testing"

	"stylehive/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testOrder() *models.Order {
	return &models.Order{
		ID:          primitive.NewObjectID(),
		TotalAmount: 500,
		OrderStatus: models.OrderStatusPending,
		ShippingInfo: models.ShippingInfo{
			Name:    "Asha Verma",
			Address: "12 MG Road",
			City:    "Bengaluru",
			State:   "Karnataka",
			Pincode: "560001",
		},
		PaymentInfo: models.PaymentInfo{Method: "card", Status: "Pending"},
	}
}

func TestOrderConfirmationEmail(t *testing.T) {
	order := testOrder()
	subject, body := OrderConfirmationEmail(order)

	assert.Contains(t, subject, order.ID.Hex())
	assert.Contains(t, body, "placed")
	assert.Contains(t, body, order.ID.Hex())
	assert.Contains(t, body, "12 MG Road, Bengaluru, Karnataka - 560001")
}

func TestOrderStatusEmailReviewLinkOnlyForDelivered(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://shop.example.com")
	order := testOrder()

	for _, status := range []string{
		models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusCancelled,
	} {
		_, body := OrderStatusEmail(status, order, "Asha")
		assert.NotContains(t, body, "Leave a Review", status)
	}

	_, body := OrderStatusEmail(models.OrderStatusDelivered, order, "Asha")
	require.Contains(t, body, "Leave a Review")
	assert.Contains(t, body, "https://shop.example.com/review?orderId="+order.ID.Hex())
}

func TestOrderStatusEmailDistinctBodies(t *testing.T) {
	order := testOrder()
	statuses := []string{
		models.OrderStatusProcessing, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled,
	}

	seen := map[string]bool{}
	for _, status := range statuses {
		_, body := OrderStatusEmail(status, order, "Asha")
		assert.False(t, seen[body], "body for %s duplicates another status", status)
		seen[body] = true
	}
}

func TestOrderUpdateEmailMentionsOnlyChangedFields(t *testing.T) {
	order := testOrder()

	_, body := OrderUpdateEmail(order, "Asha", models.OrderStatusShipped, "")
	assert.Contains(t, body, "Order Status:")
	assert.NotContains(t, body, "Payment Status:")

	_, body = OrderUpdateEmail(order, "Asha", "", "Paid")
	assert.NotContains(t, body, "Order Status:")
	assert.Contains(t, body, "Payment Status:")

	_, body = OrderUpdateEmail(order, "Asha", models.OrderStatusDelivered, "Paid")
	assert.Contains(t, body, "Order Status:")
	assert.Contains(t, body, "Payment Status:")
	assert.Contains(t, body, "Leave a Review")
}

func TestSendEmailWithoutConfiguration(t *testing.T) {
	service := &EmailService{}
	err := service.SendEmail("user@example.com", "subject", "body")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not configured"))
}
