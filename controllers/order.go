// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"stylehive/cache"
	"stylehive/models"
	"stylehive/utils"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderController handles order-related requests
type OrderController struct {
	OrderCollection   *mongo.Collection
	CartCollection    *mongo.Collection
	ProductCollection *mongo.Collection
	UserCollection    *mongo.Collection
	ProductCache      cache.ProductCache
	EmailService      *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, productCache cache.ProductCache, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		OrderCollection:   db.Collection("orders"),
		CartCollection:    db.Collection("carts"),
		ProductCollection: db.Collection("products"),
		UserCollection:    db.Collection("users"),
		ProductCache:      productCache,
		EmailService:      emailService,
	}
}

// notifyUser looks up the order's owner and sends them an email from a
// goroutine. Failures are logged and swallowed; notifications never fail the
// primary mutation.
func (oc *OrderController) notifyUser(userID primitive.ObjectID, build func(userName string) (subject, body string)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		if err := oc.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Error().Err(err).Str("user", userID.Hex()).Msg("failed to load user for order notification")
			return
		}
		subject, body := build(user.Name)
		if err := oc.EmailService.SendEmail(user.Email, subject, body); err != nil {
			log.Error().Err(err).Str("email", user.Email).Msg("failed to send order notification")
		}
	}()
}

// loadOrder resolves the {id} path parameter and fetches the order, writing
// the error response itself on failure.
func (oc *OrderController) loadOrder(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Order, bool) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return nil, false
	}

	var order models.Order
	if err := oc.OrderCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return &order, true
}

// CreateOrder places an order from the caller's chosen line items. The order
// holds its own deep copy of the items, so later cart or stock changes never
// affect it. The cart clear and the confirmation email are best-effort
// follow-ups; their failure does not undo the order.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		OrderItems   []models.OrderItem  `json:"orderItems"`
		ShippingInfo models.ShippingInfo `json:"shippingInfo"`
		PaymentInfo  models.PaymentInfo  `json:"paymentInfo"`
		TotalAmount  float64             `json:"totalAmount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	order := models.Order{
		UserID:       uid,
		OrderItems:   req.OrderItems,
		ShippingInfo: req.ShippingInfo,
		PaymentInfo:  req.PaymentInfo,
		TotalAmount:  req.TotalAmount,
		OrderStatus:  models.OrderStatusPending,
		CreatedAt:    time.Now(),
	}
	if order.PaymentInfo.Status == "" {
		order.PaymentInfo.Status = "Pending"
	}

	if err := order.Validate(); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := oc.OrderCollection.InsertOne(ctx, order)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}

	// Best-effort follow-up: clear the cart now that the order owns a copy of
	// the items. The order stands even if this fails.
	if _, err := oc.CartCollection.DeleteOne(ctx, bson.M{"user": uid}); err != nil {
		log.Error().Err(err).Str("user", uid.Hex()).Msg("failed to clear cart after order creation")
	}

	oc.notifyUser(uid, func(string) (string, string) {
		return utils.OrderConfirmationEmail(&order)
	})

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Order placed successfully and cart cleared",
		"order":   order,
	})
}

// GetMyOrders retrieves all orders placed by the caller.
func (oc *OrderController) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx, bson.M{"user": uid})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}

	for i := range orders {
		populateOrderItems(ctx, oc.ProductCollection, oc.ProductCache, orders[i].OrderItems)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// GetOrderByID retrieves a single order. Owners and admins may read it.
func (oc *OrderController) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	claims, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, ok := oc.loadOrder(ctx, w, r)
	if !ok {
		return
	}
	if order.UserID != uid && !claims.IsAdmin() {
		utils.RespondError(w, http.StatusForbidden, "Unauthorized to view this order")
		return
	}

	populateOrderItems(ctx, oc.ProductCollection, oc.ProductCache, order.OrderItems)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   order,
	})
}

// SearchMyOrders filters the caller's orders by status, order id and creation
// date range, with paging.
func (oc *OrderController) SearchMyOrders(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := bson.M{"user": uid}
	if status := query.Get("status"); status != "" {
		filter["order_status"] = status
	}
	if idHex := query.Get("orderId"); idHex != "" {
		orderID, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
			return
		}
		filter["_id"] = orderID
	}
	if created := dateRangeFilter(query.Get("startDate"), query.Get("endDate")); created != nil {
		filter["created_at"] = created
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := oc.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}

	for i := range orders {
		populateOrderItems(ctx, oc.ProductCollection, oc.ProductCache, orders[i].OrderItems)
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

// CancelOrder lets the owner cancel a still-Pending order. Any other status
// is rejected; admins drive later transitions through the admin endpoints.
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, ok := oc.loadOrder(ctx, w, r)
	if !ok {
		return
	}
	if order.UserID != uid {
		utils.RespondError(w, http.StatusForbidden, "Unauthorized to cancel this order")
		return
	}
	if !order.CanCancel() {
		utils.RespondError(w, http.StatusBadRequest, "Only pending orders can be cancelled")
		return
	}

	order.OrderStatus = models.OrderStatusCancelled
	_, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"order_status": order.OrderStatus}})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	oc.notifyUser(order.UserID, func(userName string) (string, string) {
		return utils.OrderCancelledEmail(order, userName)
	})

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order cancelled and email sent",
		"order":   order,
	})
}

// GetAllOrders retrieves every order (admin).
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// UpdateOrderStatus sets the order status directly (admin). Unlike the user
// cancel path there is no transition-table check: any enumerated status is
// accepted whatever the current state. Delivered stamps deliveredAt and the
// notification gains a review link.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderStatus string `json:"orderStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if !models.IsValidOrderStatus(req.OrderStatus) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, ok := oc.loadOrder(ctx, w, r)
	if !ok {
		return
	}

	order.OrderStatus = req.OrderStatus
	update := bson.M{"order_status": order.OrderStatus}
	if order.OrderStatus == models.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
		update["delivered_at"] = now
	}

	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": update}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	oc.notifyUser(order.UserID, func(userName string) (string, string) {
		return utils.OrderStatusEmail(order.OrderStatus, order, userName)
	})

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order status updated and email sent",
		"order":   order,
	})
}

// UpdatePaymentStatus sets the payment status and, optionally, the external
// payment id (admin). No notification is sent.
func (oc *OrderController) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
		ID     string `json:"id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Status == "" {
		utils.RespondError(w, http.StatusBadRequest, "Payment status is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, ok := oc.loadOrder(ctx, w, r)
	if !ok {
		return
	}

	order.PaymentInfo.Status = req.Status
	update := bson.M{"payment_info.status": req.Status}
	if req.ID != "" {
		order.PaymentInfo.ID = req.ID
		update["payment_info.id"] = req.ID
	}

	if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": update}); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update payment status")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment status updated successfully",
		"order":   order,
	})
}

// UpdateOrderAndPaymentStatus applies any subset of {order status, payment
// status, payment id} in one write and sends a single summary notification
// covering whichever fields changed (admin).
func (oc *OrderController) UpdateOrderAndPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderStatus   string `json:"orderStatus,omitempty"`
		PaymentStatus string `json:"paymentStatus,omitempty"`
		PaymentID     string `json:"paymentId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.OrderStatus != "" && !models.IsValidOrderStatus(req.OrderStatus) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order, ok := oc.loadOrder(ctx, w, r)
	if !ok {
		return
	}

	update := bson.M{}
	if req.OrderStatus != "" {
		order.OrderStatus = req.OrderStatus
		update["order_status"] = req.OrderStatus
		if req.OrderStatus == models.OrderStatusDelivered {
			now := time.Now()
			order.DeliveredAt = &now
			update["delivered_at"] = now
		}
	}
	if req.PaymentStatus != "" {
		order.PaymentInfo.Status = req.PaymentStatus
		update["payment_info.status"] = req.PaymentStatus
	}
	if req.PaymentID != "" {
		order.PaymentInfo.ID = req.PaymentID
		update["payment_info.id"] = req.PaymentID
	}

	if len(update) > 0 {
		if _, err := oc.OrderCollection.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": update}); err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update order")
			return
		}
	}

	oc.notifyUser(order.UserID, func(userName string) (string, string) {
		return utils.OrderUpdateEmail(order, userName, req.OrderStatus, req.PaymentStatus)
	})

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order and payment status updated successfully",
		"order":   order,
	})
}

// SearchOrders filters all orders by status and date range, then by a keyword
// matched against the order id and the owner's name or email (admin).
func (oc *OrderController) SearchOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := bson.M{}
	if status := query.Get("status"); status != "" {
		filter["order_status"] = status
	}
	if created := dateRangeFilter(query.Get("startDate"), query.Get("endDate")); created != nil {
		filter["created_at"] = created
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := oc.OrderCollection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error decoding orders")
		return
	}

	if keyword := strings.ToLower(query.Get("keyword")); keyword != "" {
		users := oc.usersByID(ctx, orders)
		matched := []models.Order{}
		for _, order := range orders {
			user := users[order.UserID]
			if strings.Contains(strings.ToLower(order.ID.Hex()), keyword) ||
				strings.Contains(strings.ToLower(user.Name), keyword) ||
				strings.Contains(strings.ToLower(user.Email), keyword) {
				matched = append(matched, order)
			}
		}
		orders = matched
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

// DeleteOrder removes an order entirely (admin).
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := oc.OrderCollection.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order deleted successfully",
	})
}

// usersByID loads the owners of the given orders in one query.
func (oc *OrderController) usersByID(ctx context.Context, orders []models.Order) map[primitive.ObjectID]models.User {
	ids := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]bool, len(orders))
	for _, order := range orders {
		if !seen[order.UserID] {
			seen[order.UserID] = true
			ids = append(ids, order.UserID)
		}
	}

	users := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return users
	}

	cursor, err := oc.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		log.Error().Err(err).Msg("failed to load users for order search")
		return users
	}
	defer cursor.Close(ctx)

	var list []models.User
	if err := cursor.All(ctx, &list); err != nil {
		log.Error().Err(err).Msg("failed to decode users for order search")
		return users
	}
	for _, user := range list {
		users[user.ID] = user
	}
	return users
}

// dateRangeFilter builds a created_at range from optional YYYY-MM-DD or
// RFC3339 date strings. Unparseable bounds are ignored.
func dateRangeFilter(start, end string) bson.M {
	parse := func(s string) (time.Time, bool) {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	created := bson.M{}
	if start != "" {
		if t, ok := parse(start); ok {
			created["$gte"] = t
		}
	}
	if end != "" {
		if t, ok := parse(end); ok {
			created["$lte"] = t
		}
	}
	if len(created) == 0 {
		return nil
	}
	return created
}
