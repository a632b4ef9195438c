package contentRoutes

import (
	contentControllers "academia/controllers/content"
	"academia/middleware"
	contentValidators "academia/validators/content"

	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App) {
	contentGroup := app.Group("/api/content")

	contentGroup.Post("", contentValidators.CreateContent(), middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("create_content"), contentControllers.CreateContent)
	contentGroup.Get("", middleware.JWTMiddleware, contentControllers.GetContentList)
	contentGroup.Get("/:id", contentValidators.ContentID(), middleware.JWTMiddleware, contentControllers.GetContentDetails)
	contentGroup.Put("/:id", contentValidators.ContentID(), middleware.JWTMiddleware, contentControllers.UpdateContent)
	contentGroup.Delete("/:id", contentValidators.ContentID(), middleware.JWTMiddleware, contentControllers.DeleteContent)
	contentGroup.Patch("/:id/publish", contentValidators.ContentID(), middleware.JWTMiddleware, contentControllers.PublishContent)

	app.Post("/api/topics", contentValidators.CreateTopic(), middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("create_content"), contentControllers.CreateTopic)
	app.Get("/api/topics", middleware.JWTMiddleware, contentControllers.GetTopics)
}
