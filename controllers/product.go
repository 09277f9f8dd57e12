package controllers

import (
	"context"
	"encoding/json"
	"net/http"
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

// ProductController handles product-related requests
type ProductController struct {
	Collection   *mongo.Collection
	ProductCache cache.ProductCache
}

// NewProductController creates a new ProductController
func NewProductController(client *mongo.Client, productCache cache.ProductCache) *ProductController {
	return &ProductController{
		Collection:   client.Database(utils.DatabaseName).Collection("products"),
		ProductCache: productCache,
	}
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	_, adminID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if product.Name == "" || product.Slug == "" || product.Category == "" || product.Gender == "" ||
		product.Price <= 0 || len(product.Colors) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "Please provide all required product fields.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := pc.Collection.CountDocuments(ctx, bson.M{"slug": product.Slug})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondError(w, http.StatusBadRequest, "Product with this slug already exists.")
		return
	}

	now := time.Now()
	product.Admin = adminID
	product.CreatedAt = now
	product.UpdatedAt = now
	if product.FinalPrice == 0 {
		product.FinalPrice = product.Price * (1 - product.Discount/100)
	}

	result, err := pc.Collection.InsertOne(ctx, product)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error creating product")
		return
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Product created successfully.",
		"product": product,
	})
}

// GetProducts retrieves products, optionally filtered by category, gender and
// a keyword matched against the product name.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := bson.M{}
	if category := query.Get("category"); category != "" {
		filter["$or"] = []bson.M{
			{"category": category},
			{"categories": category},
		}
	}
	if gender := query.Get("gender"); gender != "" {
		filter["gender"] = gender
	}
	if keyword := query.Get("keyword"); keyword != "" {
		filter["name"] = bson.M{"$regex": keyword, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := pc.Collection.Find(ctx, filter)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error reading products")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

// GetProductByID retrieves a single product by ID, served through the cache.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product, err := findProduct(ctx, pc.Collection, pc.ProductCache, id)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

// UpdateProduct handles updating a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var patch bson.M
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	delete(patch, "_id")
	patch["updated_at"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error updating product")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	pc.invalidateCache(id)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product updated successfully.",
	})
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := pc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondError(w, http.StatusNotFound, "Product not found")
		return
	}

	pc.invalidateCache(id)

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully.",
	})
}

func (pc *ProductController) invalidateCache(id primitive.ObjectID) {
	if err := pc.ProductCache.Delete(context.Background(), id.Hex()); err != nil {
		log.Warn().Err(err).Str("product", id.Hex()).Msg("product cache invalidation failed")
	}
}
