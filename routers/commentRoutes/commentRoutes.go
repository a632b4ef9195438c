package commentRoutes

import (
	commentControllers "academia/controllers/comment"
	"academia/middleware"
	commentValidators "academia/validators/comment"

	"github.com/gofiber/fiber/v2"
)

func SetupCommentRoutes(app *fiber.App) {
	commentGroup := app.Group("/api/comments")

	commentGroup.Post("", commentValidators.CreateComment(), middleware.JWTMiddleware, commentControllers.CreateComment)
	commentGroup.Get("", middleware.JWTMiddleware, commentControllers.GetComments)
	commentGroup.Delete("/:id", commentValidators.CommentID(), middleware.JWTMiddleware, commentControllers.DeleteComment)
}
