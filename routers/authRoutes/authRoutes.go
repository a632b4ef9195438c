package authRoutes

import (
	authControllers "academia/controllers/auth"
	"academia/middleware"
	authValidators "academia/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/refresh", authControllers.RefreshToken)
	authGroup.Post("/logout", middleware.JWTMiddleware, authControllers.Logout)
}
