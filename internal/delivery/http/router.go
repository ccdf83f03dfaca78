package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"weddingrsvp/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(guestController *controllers.GuestController) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", guestController.Health)

	// API Routes
	mux.HandleFunc("POST /api/guests", guestController.CreateGuest)
	mux.HandleFunc("GET /api/guests", guestController.ListGuests)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
