package messageRoutes

import (
	messageControllers "academia/controllers/message"
	"academia/middleware"
	messageValidators "academia/validators/message"

	"github.com/gofiber/fiber/v2"
)

func SetupMessageRoutes(app *fiber.App) {
	messageGroup := app.Group("/api/messages")

	messageGroup.Post("", messageValidators.SendMessage(), middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("send_message"), messageControllers.SendMessage)
	messageGroup.Get("/inbox", middleware.JWTMiddleware, messageControllers.GetInbox)
	messageGroup.Get("/conversation/:user_id", messageValidators.OtherUserID(), middleware.JWTMiddleware, messageControllers.GetConversation)
}
