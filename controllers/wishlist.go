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

// WishlistController handles wishlist-related requests
type WishlistController struct {
	WishlistCollection *mongo.Collection
	CartCollection     *mongo.Collection
	ProductCollection  *mongo.Collection
	ProductCache       cache.ProductCache
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(client *mongo.Client, productCache cache.ProductCache) *WishlistController {
	db := client.Database(utils.DatabaseName)
	return &WishlistController{
		WishlistCollection: db.Collection("wishlists"),
		CartCollection:     db.Collection("carts"),
		ProductCollection:  db.Collection("products"),
		ProductCache:       productCache,
	}
}

// AddToWishlist records a (product, color) entry. A duplicate key is rejected
// with 409 rather than merged, since wishlist entries carry no quantity.
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID primitive.ObjectID `json:"productId"`
		Color     string             `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID.IsZero() || req.Color == "" {
		utils.RespondError(w, http.StatusBadRequest, "Product ID and color are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := findProduct(ctx, wc.ProductCollection, wc.ProductCache, req.ProductID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	item := models.WishlistItem{ProductID: req.ProductID, Color: req.Color}

	var wishlist models.Wishlist
	err := wc.WishlistCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&wishlist)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error loading wishlist")
			return
		}
		wishlist = models.Wishlist{UserID: uid, Items: []models.WishlistItem{}}
	}

	if err := wishlist.AddItem(item); err != nil {
		utils.RespondError(w, http.StatusConflict, "Product already in wishlist")
		return
	}

	if err := wc.saveWishlist(ctx, &wishlist); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Product added to wishlist",
		"wishlist": wishlist,
	})
}

// GetMyWishlist retrieves the caller's wishlist with each product expanded.
func (wc *WishlistController) GetMyWishlist(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wishlist models.Wishlist
	err := wc.WishlistCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&wishlist)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error loading wishlist")
			return
		}
		wishlist = models.Wishlist{UserID: uid, Items: []models.WishlistItem{}}
	}

	populateWishlistItems(ctx, wc.ProductCollection, wc.ProductCache, wishlist.Items)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"wishlist": wishlist,
	})
}

// RemoveFromWishlist deletes the (product, color) entry.
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID primitive.ObjectID `json:"productId"`
		Color     string             `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID.IsZero() || req.Color == "" {
		utils.RespondError(w, http.StatusBadRequest, "Product ID and color are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wishlist models.Wishlist
	if err := wc.WishlistCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&wishlist); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	if !wishlist.RemoveItem(req.ProductID, req.Color) {
		utils.RespondError(w, http.StatusNotFound, "Product not found in wishlist")
		return
	}

	if err := wc.saveWishlist(ctx, &wishlist); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Product removed from wishlist",
		"wishlist": wishlist,
	})
}

// MoveToCart turns a wishlist entry into a cart line item with a chosen size
// and quantity, re-validating stock exactly like AddToCart. The wishlist
// removal key is the coarser (product, color).
func (wc *WishlistController) MoveToCart(w http.ResponseWriter, r *http.Request) {
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
		utils.RespondError(w, http.StatusBadRequest, "Product ID, color, size, and quantity are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product, err := findProduct(ctx, wc.ProductCollection, wc.ProductCache, req.ProductID)
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
			fmt.Sprintf("Only %d item(s) available in stock for size %s", available, req.Size))
		return
	}

	var wishlist models.Wishlist
	if err := wc.WishlistCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&wishlist); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Wishlist not found")
		return
	}

	var cart models.Cart
	cartExists := true
	err = wc.CartCollection.FindOne(ctx, bson.M{"user": uid}).Decode(&cart)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondError(w, http.StatusInternalServerError, "Error loading cart")
			return
		}
		cartExists = false
		cart = models.Cart{UserID: uid, Items: []models.CartItem{}}
	}

	item := models.CartItem{ProductID: req.ProductID, Color: req.Color, Size: req.Size, Quantity: req.Quantity}
	if err := models.MoveWishlistItemToCart(&wishlist, &cart, item, available); err != nil {
		switch {
		case errors.Is(err, models.ErrWishlistItemNotFound):
			utils.RespondError(w, http.StatusNotFound, "Product not found in wishlist")
		case errors.Is(err, models.ErrInsufficientStock):
			utils.RespondError(w, http.StatusBadRequest,
				fmt.Sprintf("Total quantity exceeds stock. Only %d available.", available))
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Error moving item to cart")
		}
		return
	}

	if err := wc.saveCart(ctx, &cart, cartExists); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}
	if err := wc.saveWishlist(ctx, &wishlist); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating wishlist")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Item moved from wishlist to cart",
		"cart":     cart,
		"wishlist": wishlist,
	})
}

func (wc *WishlistController) saveCart(ctx context.Context, cart *models.Cart, exists bool) error {
	now := time.Now()
	cart.UpdatedAt = now
	if !exists {
		cart.CreatedAt = now
		result, err := wc.CartCollection.InsertOne(ctx, cart)
		if err != nil {
			return err
		}
		if id, ok := result.InsertedID.(primitive.ObjectID); ok {
			cart.ID = id
		}
		return nil
	}
	_, err := wc.CartCollection.UpdateOne(ctx, bson.M{"_id": cart.ID},
		bson.M{"$set": bson.M{"items": cart.Items, "updated_at": cart.UpdatedAt}})
	return err
}

func (wc *WishlistController) saveWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	now := time.Now()
	wishlist.UpdatedAt = now
	if wishlist.ID.IsZero() {
		wishlist.CreatedAt = now
		result, err := wc.WishlistCollection.InsertOne(ctx, wishlist)
		if err != nil {
			return err
		}
		if id, ok := result.InsertedID.(primitive.ObjectID); ok {
			wishlist.ID = id
		}
		return nil
	}
	_, err := wc.WishlistCollection.UpdateOne(ctx, bson.M{"_id": wishlist.ID},
		bson.M{"$set": bson.M{"items": wishlist.Items, "updated_at": wishlist.UpdatedAt}})
	return err
}
