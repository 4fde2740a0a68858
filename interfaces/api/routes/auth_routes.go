package routes

import (
	"github.com/gofiber/fiber/v2"

	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers) {
	auth := api.Group("/auth")
	protected := middleware.Protected(h.JWTSecret, h.TokenBlacklist)

	// Traditional auth
	auth.Post("/register", h.UserHandler.Register)
	auth.Post("/login", h.UserHandler.Login)

	// Google OAuth
	auth.Get("/google", h.AuthHandler.GoogleLogin)
	auth.Get("/google/callback", h.AuthHandler.GoogleCallback)

	// Protected routes - require authentication
	auth.Post("/logout", protected, h.UserHandler.Logout)
	auth.Get("/me", protected, h.UserHandler.GetProfile)
}
