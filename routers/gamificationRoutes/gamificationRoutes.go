package gamificationRoutes

import (
	gamificationControllers "academia/controllers/gamification"
	"academia/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupGamificationRoutes(app *fiber.App) {
	badgeGroup := app.Group("/api/badges")

	badgeGroup.Get("", middleware.JWTMiddleware, gamificationControllers.GetBadges)
	badgeGroup.Get("/mine", middleware.JWTMiddleware, gamificationControllers.GetMyBadges)

	app.Get("/api/leaderboard", middleware.JWTMiddleware, gamificationControllers.GetLeaderboard)
}
