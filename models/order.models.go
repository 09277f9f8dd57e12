package models

import (
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Pending orders move forward through Processing, Shipped and
// Delivered; a user may cancel only while Pending. Delivered and Cancelled are
// terminal.
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// IsValidOrderStatus reports whether s is one of the enumerated statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// OrderItem is a deep copy of a cart line item taken at checkout. Later cart
// or stock changes never affect a placed order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Size      string             `bson:"size,omitempty" json:"size,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Product   *Product           `bson:"-" json:"product,omitempty"`
}

// ShippingInfo is the structured delivery address, validated at checkout.
type ShippingInfo struct {
	Name        string `bson:"name" json:"name"`
	Phone       string `bson:"phone" json:"phone"`
	AltPhone    string `bson:"alt_phone,omitempty" json:"altPhone,omitempty"`
	Pincode     string `bson:"pincode" json:"pincode"`
	Locality    string `bson:"locality,omitempty" json:"locality,omitempty"`
	Address     string `bson:"address" json:"address"`
	Landmark    string `bson:"landmark,omitempty" json:"landmark,omitempty"`
	City        string `bson:"city" json:"city"`
	State       string `bson:"state" json:"state"`
	AddressType string `bson:"address_type,omitempty" json:"addressType,omitempty"` // "Home" or "Work"
}

// PaymentInfo tracks the payment method and its externally-driven status.
type PaymentInfo struct {
	Method string `bson:"method" json:"method"`
	Status string `bson:"status" json:"status"`
	ID     string `bson:"id,omitempty" json:"id,omitempty"`
}

// Order represents a placed order. Everything except the order status, the
// payment status/id and deliveredAt is immutable after creation.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"user" json:"user"`
	OrderItems   []OrderItem        `bson:"order_items" json:"orderItems"`
	ShippingInfo ShippingInfo       `bson:"shipping_info" json:"shippingInfo"`
	PaymentInfo  PaymentInfo        `bson:"payment_info" json:"paymentInfo"`
	TotalAmount  float64            `bson:"total_amount" json:"totalAmount"`
	OrderStatus  string             `bson:"order_status" json:"orderStatus"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	DeliveredAt  *time.Time         `bson:"delivered_at,omitempty" json:"deliveredAt,omitempty"`
}

// Validate checks the order before creation. All validation happens before any
// mutation; the returned message names the missing or invalid field.
func (o *Order) Validate() error {
	if len(o.OrderItems) == 0 {
		return errors.New("Order must contain at least one item.")
	}
	s := o.ShippingInfo
	if s.Name == "" || s.Phone == "" || s.Pincode == "" || s.Address == "" || s.City == "" || s.State == "" {
		return errors.New("Please provide all required shipping information.")
	}
	if !phonePattern.MatchString(s.Phone) {
		return errors.New("Invalid phone number. It must be exactly 10 digits.")
	}
	if o.PaymentInfo.Method == "" {
		return errors.New("Payment method is required.")
	}
	if o.TotalAmount <= 0 {
		return errors.New("Invalid total amount.")
	}
	return nil
}

// CanCancel reports whether the end user may still cancel the order.
func (o *Order) CanCancel() bool {
	return o.OrderStatus == OrderStatusPending
}
