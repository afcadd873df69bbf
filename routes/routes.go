// routes/routes.go
package routes

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"laptop-gallery/controllers"
	"laptop-gallery/middleware"
)

const livenessMessage = "laptop gallery is running"

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, gate *middleware.Gate, tokenController *controllers.TokenController, userController *controllers.UserController, catalogController *controllers.CatalogController, cartController *controllers.CartController) {
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return gate.Authenticate(gate.RequireAdmin(h))
	}
	selfOnly := func(param string, h http.HandlerFunc) http.Handler {
		return gate.Authenticate(gate.RequireSelf(param)(h))
	}

	router.HandleFunc("/", Liveness).Methods("GET")

	// Token routes
	router.HandleFunc("/jwt", tokenController.Issue).Methods("POST")

	// User routes
	router.HandleFunc("/users", userController.CreateUser).Methods("POST")
	router.Handle("/users", adminOnly(userController.ListUsers)).Methods("GET")
	router.Handle("/user/admin/{email}", selfOnly("email", userController.IsAdmin)).Methods("GET")
	router.Handle("/users/admin/{id}", adminOnly(userController.MakeAdmin)).Methods("PATCH")
	router.Handle("/users/{id}", adminOnly(userController.DeleteUser)).Methods("DELETE")

	// Catalog routes
	router.HandleFunc("/product", catalogController.GetProducts).Methods("GET")
	router.HandleFunc("/reviews", catalogController.GetReviews).Methods("GET")

	// Cart routes
	router.HandleFunc("/carts", cartController.GetCart).Methods("GET")
	router.HandleFunc("/carts", cartController.AddToCart).Methods("POST")
	router.HandleFunc("/carts/{id}", cartController.RemoveFromCart).Methods("DELETE")
}

// Liveness answers health checks
func Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, livenessMessage)
}

// Handler wraps the router with CORS, request logging and panic recovery.
// Logging sits outside CORS so preflight answers are logged and tagged too.
func Handler(router *mux.Router, logger *slog.Logger, origins []string) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)
	return recovery(middleware.RequestLogger(logger)(cors(router)))
}
