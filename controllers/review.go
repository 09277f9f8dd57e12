package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
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
)

// reviewCooldown is the minimum gap between review submissions for the same
// product by the same user.
const reviewCooldown = 5 * time.Minute

// ReviewController handles review-related requests
type ReviewController struct {
	ReviewCollection  *mongo.Collection
	ProductCollection *mongo.Collection
	ProductCache      cache.ProductCache
}

// NewReviewController creates a new ReviewController
func NewReviewController(client *mongo.Client, productCache cache.ProductCache) *ReviewController {
	db := client.Database(utils.DatabaseName)
	return &ReviewController{
		ReviewCollection:  db.Collection("reviews"),
		ProductCollection: db.Collection("products"),
		ProductCache:      productCache,
	}
}

// AddOrUpdateReview creates the caller's review for a product, or updates the
// existing one. Submissions are rate-limited per (user, product).
func (rc *ReviewController) AddOrUpdateReview(w http.ResponseWriter, r *http.Request) {
	_, uid, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID primitive.ObjectID `json:"productId"`
		Rating    int                `json:"rating"`
		Comment   string             `json:"comment,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.ProductID.IsZero() || req.Rating < 1 || req.Rating > 5 {
		utils.RespondError(w, http.StatusBadRequest, "Product ID and rating are required.")
		return
	}
	if req.Comment != "" && len(strings.TrimSpace(req.Comment)) < 10 {
		utils.RespondError(w, http.StatusBadRequest, "Comment must be at least 10 characters long.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := findProduct(ctx, rc.ProductCollection, rc.ProductCache, req.ProductID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	// Cooldown: a review written for this product within the window blocks
	// another submission.
	recentFilter := bson.M{
		"user":       uid,
		"product":    req.ProductID,
		"created_at": bson.M{"$gt": time.Now().Add(-reviewCooldown)},
	}
	count, err := rc.ReviewCollection.CountDocuments(ctx, recentFilter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusTooManyRequests, "You can only review this product once every 5 minutes.")
		return
	}

	now := time.Now()
	var existing models.Review
	err = rc.ReviewCollection.FindOne(ctx, bson.M{"user": uid, "product": req.ProductID}).Decode(&existing)
	if err == nil {
		existing.Rating = req.Rating
		existing.Comment = req.Comment
		existing.UpdatedAt = now
		_, err = rc.ReviewCollection.UpdateOne(ctx, bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"rating": existing.Rating, "comment": existing.Comment, "updated_at": existing.UpdatedAt}})
		if err != nil {
			utils.RespondError(w, http.StatusInternalServerError, "Error updating review")
			return
		}
		rc.refreshProductRating(ctx, req.ProductID)

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Review updated",
			"review":  existing,
		})
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}

	review := models.Review{
		UserID:    uid,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := rc.ReviewCollection.InsertOne(ctx, review)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating review")
		return
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = id
	}
	rc.refreshProductRating(ctx, req.ProductID)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Review added",
		"review":  review,
	})
}

// GetProductReviews lists every review for a product.
func (rc *ReviewController) GetProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := rc.ReviewCollection.Find(ctx, bson.M{"product": productID})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching reviews")
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error decoding reviews")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// refreshProductRating recomputes the product's average rating and review
// count after a review write, then drops the cached copy.
func (rc *ReviewController) refreshProductRating(ctx context.Context, productID primitive.ObjectID) {
	cursor, err := rc.ReviewCollection.Find(ctx, bson.M{"product": productID})
	if err != nil {
		log.Error().Err(err).Str("product", productID.Hex()).Msg("failed to load reviews for rating refresh")
		return
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		log.Error().Err(err).Str("product", productID.Hex()).Msg("failed to decode reviews for rating refresh")
		return
	}

	rating := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, review := range reviews {
			sum += review.Rating
		}
		rating = float64(sum) / float64(len(reviews))
	}

	_, err = rc.ProductCollection.UpdateOne(ctx, bson.M{"_id": productID},
		bson.M{"$set": bson.M{"rating": rating, "reviews_count": len(reviews)}})
	if err != nil {
		log.Error().Err(err).Str("product", productID.Hex()).Msg("failed to update product rating")
		return
	}

	if err := rc.ProductCache.Delete(ctx, productID.Hex()); err != nil {
		log.Warn().Err(err).Str("product", productID.Hex()).Msg("product cache invalidation failed")
	}
}
