package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"stylehive/cache"
	"stylehive/middleware"
	"stylehive/models"
	"stylehive/utils"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// currentUser pulls the authenticated caller out of the request context and
// resolves the user id. On failure it writes the error response and returns
// ok=false.
func currentUser(w http.ResponseWriter, r *http.Request) (*utils.Claims, primitive.ObjectID, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, primitive.NilObjectID, false
	}
	uid, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid user identity")
		return nil, primitive.NilObjectID, false
	}
	return claims, uid, true
}

// findProduct loads a product through the cache, falling back to the products
// collection and filling the cache in the background on a miss.
func findProduct(ctx context.Context, coll *mongo.Collection, pc cache.ProductCache, id primitive.ObjectID) (*models.Product, error) {
	product, err := pc.Get(ctx, id.Hex())
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("product", id.Hex()).Msg("product cache get failed")
	}

	var p models.Product
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}

	go func() {
		if err := pc.Set(context.Background(), &p); err != nil {
			log.Warn().Err(err).Str("product", p.ID.Hex()).Msg("product cache set failed")
		}
	}()
	return &p, nil
}

// respondStockError maps ledger errors onto the storefront's 400 messages.
// It reports whether it handled the error.
func respondStockError(w http.ResponseWriter, err error, color, size string) bool {
	switch {
	case errors.Is(err, models.ErrColorNotAvailable):
		utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Color %s is not available for this product", color))
	case errors.Is(err, models.ErrSizeNotAvailable):
		utils.RespondError(w, http.StatusBadRequest, fmt.Sprintf("Size %s is not available for color %s", size, color))
	default:
		return false
	}
	return true
}

// populateCartItems expands each line item's product reference for display.
// A product that fails to load just stays unexpanded.
func populateCartItems(ctx context.Context, coll *mongo.Collection, pc cache.ProductCache, items []models.CartItem) {
	for i := range items {
		if p, err := findProduct(ctx, coll, pc, items[i].ProductID); err == nil {
			items[i].Product = p
		}
	}
}

func populateWishlistItems(ctx context.Context, coll *mongo.Collection, pc cache.ProductCache, items []models.WishlistItem) {
	for i := range items {
		if p, err := findProduct(ctx, coll, pc, items[i].ProductID); err == nil {
			items[i].Product = p
		}
	}
}

func populateOrderItems(ctx context.Context, coll *mongo.Collection, pc cache.ProductCache, items []models.OrderItem) {
	for i := range items {
		if p, err := findProduct(ctx, coll, pc, items[i].ProductID); err == nil {
			items[i].Product = p
		}
	}
}
