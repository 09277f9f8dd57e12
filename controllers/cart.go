package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"stylehive/cache"
	"stylehive/models"
	"stylehive/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartController handles cart-related requests
type CartController struct {
	CartCollection     *mongo.Collection
	WishlistCollection *mongo.Collection
	ProductCollection  *mongo.Collection
	ProductCache       cache.ProductCache
}

// NewCartController creates a new CartController
func NewCartController(client *mongo.Client, productCache cache.ProductCache) *CartController {
	db := client.Database(utils.DatabaseName)
	return &CartController{
		CartCollection:     db.Collection("carts"),
		WishlistCollection: db.Collection("wishlists"),
		ProductCollection:  db.Collection("products"),
		ProductCache:       productCache,
	}
}

// AddToCart adds a (product, color, size, quantity) line item to the caller's
// cart, merging with an existing line item under the stock ceiling.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID primitive.ObjectID `json:"productId"`
		Color     string             `json:"color"`
		Size      string             `json:"size"`
		Quantity  int                `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID.IsZero() || req.Color == "" || req.Size == "" || req.Quantity < 1 {
		utils.RespondError(w, http.StatusBadRequest, "Product, color, size, and quantity are required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product, err := findProduct(ctx, cc.ProductCollection, cc.ProductCache, req.ProductID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	available, err := product.AvailableQuantity(req.Color, req.Size)
	if err != nil {
		respondStockError(w, err, req.Color, req.Size)
		return
	}
	if req.Quantity > available {
		utils.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("Only %d item(s) available in stock for size %s and color %s", available, req.Size, req.Color))
		return
	}

	item := models.CartItem{ProductID: req.ProductID, Color: req.Color, Size: req.Size, Quantity: req.Quantity}

	var cart models.Cart
	err = cc.CartCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&cart)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
			return
		}
		// Lazily create the cart on first add.
		now := time.Now()
		cart = models.Cart{UserID: uid, Items: []models.CartItem{item}, CreatedAt: now, UpdatedAt: now}
		result, err := cc.CartCollection.InsertOne(ctx, cart)
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error creating cart")
			return
		}
		if id, ok := result.InsertedID.(primitive.ObjectID); ok {
			cart.ID = id
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Cart updated successfully",
			"cart":    cart,
		})
		return
	}

	if err := cart.AddItem(item, available); err != nil {
		utils.RespondError(w, http.StatusBadRequest,
			fmt.Sprintf("Total quantity exceeds stock. Only %d available for this color/size.", available))
		return
	}

	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart updated successfully",
		"cart":    cart,
	})
}

// GetMyCart retrieves the caller's cart with each product expanded. A user
// with no cart yet gets an empty item list.
func (cc *CartController) GetMyCart(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	err := cc.CartCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&cart)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
			return
		}
		cart = models.Cart{UserID: uid, Items: []models.CartItem{}}
	}

	populateCartItems(ctx, cc.ProductCollection, cc.ProductCache, cart.Items)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cart":    cart,
	})
}

// UpdateCartItem applies a partial patch (new color, size or quantity) to the
// line item with the given key. Stock is not re-validated here.
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID   primitive.ObjectID `json:"productId"`
		Color       string             `json:"color"`
		Size        string             `json:"size"`
		NewColor    string             `json:"newColor,omitempty"`
		NewSize     string             `json:"newSize,omitempty"`
		NewQuantity *int               `json:"newQuantity,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.CartCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}

	item := cart.FindItem(req.ProductID, req.Color, req.Size)
	if item == nil {
		utils.RespondError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	if req.NewColor != "" {
		item.Color = req.NewColor
	}
	if req.NewSize != "" {
		item.Size = req.NewSize
	}
	if req.NewQuantity != nil {
		item.Quantity = *req.NewQuantity
	}

	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart item updated",
		"cart":    cart,
	})
}

// RemoveCartItem deletes the line item with the given key. An emptied cart is
// persisted as an explicit empty list, not deleted.
func (cc *CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID primitive.ObjectID `json:"productId"`
		Color     string             `json:"color"`
		Size      string             `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart models.Cart
	if err := cc.CartCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}

	if !cart.RemoveItem(req.ProductID, req.Color, req.Size) {
		utils.RespondError(w, http.StatusNotFound, "Cart item not found")
		return
	}

	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item removed from cart",
		"cart":    cart,
	})
}

// MoveToWishlist moves a cart line item into the wishlist. A (product, color)
// entry already in the wishlist is not duplicated; the cart removal proceeds
// either way.
func (cc *CartController) MoveToWishlist(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID primitive.ObjectID `json:"productId"`
		Color     string             `json:"color"`
		Size      string             `json:"size"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID.IsZero() || req.Color == "" || req.Size == "" {
		utils.RespondError(w, http.StatusBadRequest, "Product ID, color, and size are required.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := findProduct(ctx, cc.ProductCollection, cc.ProductCache, req.ProductID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	var cart models.Cart
	if err := cc.CartCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&cart); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Cart not found")
		return
	}

	var wishlist models.Wishlist
	err := cc.WishlistCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&wishlist)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error loading wishlist")
			return
		}
		wishlist = models.Wishlist{UserID: uid, Items: []models.WishlistItem{}}
	}

	if _, err := models.MoveCartItemToWishlist(&cart, &wishlist, req.ProductID, req.Color, req.Size); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if err := cc.saveCart(ctx, &cart); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}
	if err := cc.saveWishlist(ctx, &wishlist); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Item moved to wishlist",
		"cart":     cart,
		"wishlist": wishlist,
	})
}

func (cc *CartController) saveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := cc.CartCollection.UpdateOne(ctx, bson.M{"_id": cart.ID},
		bson.M{"$set": bson.M{"items": cart.Items, "updated_at": cart.UpdatedAt}})
	return err
}

func (cc *CartController) saveWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	now := time.Now()
	wishlist.UpdatedAt = now
	if wishlist.ID.IsZero() {
		wishlist.CreatedAt = now
		result, err := cc.WishlistCollection.InsertOne(ctx, wishlist)
		if err != nil {
			return err
		}
		if id, ok := result.InsertedID.(primitive.ObjectID); ok {
			wishlist.ID = id
		}
		return nil
	}
	_, err := cc.WishlistCollection.UpdateOne(ctx, bson.M{"_id": wishlist.ID},
		bson.M{"$set": bson.M{"items": wishlist.Items, "updated_at": wishlist.UpdatedAt}})
	return err
}
