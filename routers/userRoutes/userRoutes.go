package userRoutes

import (
	userControllers "academia/controllers/userControllers"
	"academia/middleware"
	userValidators "academia/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/users")

	userGroup.Get("/me", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Put("/me", middleware.JWTMiddleware, userControllers.UpdateProfile)
	userGroup.Get("/:id", userValidators.ProfileUserID(), middleware.JWTMiddleware, userControllers.GetPublicProfile)
}
