package voteRoutes

import (
	voteControllers "academia/controllers/vote"
	"academia/middleware"
	voteValidators "academia/validators/vote"

	"github.com/gofiber/fiber/v2"
)

func SetupVoteRoutes(app *fiber.App) {
	voteGroup := app.Group("/api/votes")

	voteGroup.Post("", voteValidators.CastVote(), middleware.JWTMiddleware, voteControllers.CastVote)
	voteGroup.Get("/summary", middleware.JWTMiddleware, voteControllers.GetVoteSummary)
}
