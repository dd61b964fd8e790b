package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"liveagenda/internal/delivery/http/controllers"
	"liveagenda/internal/delivery/http/middleware"
	"liveagenda/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(liveController *controllers.LiveController, userController *controllers.UserController, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Users
	mux.HandleFunc("POST /users", userController.CreateUser)
	mux.HandleFunc("POST /users/auth", userController.AuthenticateUser)
	mux.HandleFunc("GET /users/{userID}", auth(userController.GetUser))
	mux.HandleFunc("GET /users/{userID}/lives", auth(liveController.GetUserLives))

	// Lives
	mux.HandleFunc("POST /lives", auth(liveController.CreateLive))
	mux.HandleFunc("GET /lives", auth(liveController.GetLives))
	mux.HandleFunc("DELETE /lives/{liveID}", auth(liveController.DeleteLive))
	mux.HandleFunc("PUT /lives/{liveID}/save-live", auth(liveController.SaveLive))
	mux.HandleFunc("PUT /lives/{liveID}/unsave-live", auth(liveController.UnsaveLive))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
