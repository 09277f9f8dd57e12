// routes/routes.go
package routes

import (
	"stylehive/controllers"
	"stylehive/middleware"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	wishlistController *controllers.WishlistController,
	orderController *controllers.OrderController,
	reviewController *controllers.ReviewController,
) {
	// Public routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	router.HandleFunc("/reviews/product/{id}", reviewController.GetProductReviews).Methods("GET")

	// Profile
	profile := router.PathPrefix("/profile").Subrouter()
	profile.Use(middleware.AuthMiddleware)
	profile.HandleFunc("", userController.GetProfile).Methods("GET")

	// Admin product routes
	adminProducts := router.PathPrefix("/products").Subrouter()
	adminProducts.Use(middleware.AuthMiddleware)
	adminProducts.Use(middleware.AdminMiddleware)
	adminProducts.HandleFunc("", productController.CreateProduct).Methods("POST")
	adminProducts.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	adminProducts.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	// Cart routes
	cart := router.PathPrefix("/cart").Subrouter()
	cart.Use(middleware.AuthMiddleware)
	cart.HandleFunc("/add", cartController.AddToCart).Methods("POST")
	cart.HandleFunc("/get", cartController.GetMyCart).Methods("GET")
	cart.HandleFunc("/update", cartController.UpdateCartItem).Methods("PUT")
	cart.HandleFunc("/remove", cartController.RemoveCartItem).Methods("DELETE")
	cart.HandleFunc("/move-to-wishlist", cartController.MoveToWishlist).Methods("POST")

	// Wishlist routes
	wishlist := router.PathPrefix("/wishlist").Subrouter()
	wishlist.Use(middleware.AuthMiddleware)
	wishlist.HandleFunc("/add", wishlistController.AddToWishlist).Methods("POST")
	wishlist.HandleFunc("/my-wishlist", wishlistController.GetMyWishlist).Methods("GET")
	wishlist.HandleFunc("/remove", wishlistController.RemoveFromWishlist).Methods("DELETE")
	wishlist.HandleFunc("/move-to-cart", wishlistController.MoveToCart).Methods("POST")

	// Order routes
	order := router.PathPrefix("/order").Subrouter()
	order.Use(middleware.AuthMiddleware)
	order.HandleFunc("/create", orderController.CreateOrder).Methods("POST")
	order.HandleFunc("/my-orders", orderController.GetMyOrders).Methods("GET")
	order.HandleFunc("/my/search", orderController.SearchMyOrders).Methods("GET")

	// Admin order routes, registered before the catch-all {id} route
	orderAdmin := order.PathPrefix("/admin").Subrouter()
	orderAdmin.Use(middleware.AdminMiddleware)
	orderAdmin.HandleFunc("/orders", orderController.GetAllOrders).Methods("GET")
	orderAdmin.HandleFunc("/search", orderController.SearchOrders).Methods("GET")
	orderAdmin.HandleFunc("/order/update/{id}", orderController.UpdateOrderStatus).Methods("PUT")
	orderAdmin.HandleFunc("/order/{id}/payment-status", orderController.UpdatePaymentStatus).Methods("PUT")
	orderAdmin.HandleFunc("/order/update-status/{id}", orderController.UpdateOrderAndPaymentStatus).Methods("PUT")
	orderAdmin.HandleFunc("/order/delete/{id}", orderController.DeleteOrder).Methods("DELETE")

	order.HandleFunc("/{id}", orderController.GetOrderByID).Methods("GET")
	order.HandleFunc("/{id}/cancel", orderController.CancelOrder).Methods("PUT")

	// Review routes
	review := router.PathPrefix("/review").Subrouter()
	review.Use(middleware.AuthMiddleware)
	review.HandleFunc("", reviewController.AddOrUpdateReview).Methods("POST")
}
