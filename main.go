// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"stylehive/cache"
	"stylehive/controllers"
	"stylehive/routes"
	"stylehive/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found. Proceeding with environment variables.")
	}

	zerolog.TimeFieldFormat = time.RFC3339

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	// Product cache: Redis when configured, otherwise a no-op passthrough
	var productCache cache.ProductCache = cache.Noop{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		productCache = cache.NewRedisCache(redis.NewClient(&redis.Options{Addr: addr}))
		log.Info().Str("addr", addr).Msg("product cache backed by Redis")
	}

	// Initialize controllers
	userController := controllers.NewUserController(client)
	productController := controllers.NewProductController(client, productCache)
	cartController := controllers.NewCartController(client, productCache)
	wishlistController := controllers.NewWishlistController(client, productCache)
	orderController := controllers.NewOrderController(client, productCache, emailService)
	reviewController := controllers.NewReviewController(client, productCache)

	// Set up the router and register routes
	router := mux.NewRouter()
	routes.RegisterRoutes(router, userController, productController, cartController,
		wishlistController, orderController, reviewController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Info().Str("port", port).Msg("server is running")
	log.Fatal().Err(http.ListenAndServe(":"+port, router)).Msg("server stopped")
}
