package notificationRoutes

import (
	notificationControllers "academia/controllers/notification"
	"academia/middleware"
	notificationValidators "academia/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/api/notifications")

	notificationGroup.Get("", middleware.JWTMiddleware, notificationControllers.GetNotifications)
	notificationGroup.Patch("/read-all", middleware.JWTMiddleware, notificationControllers.MarkAllNotificationsRead)
	notificationGroup.Patch("/:id/read", notificationValidators.NotificationID(), middleware.JWTMiddleware, notificationControllers.MarkNotificationRead)
}
