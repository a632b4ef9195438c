package notificationValidator

import (
	"academia/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NotificationID validates the :id route parameter and stores it as notificationID
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		notificationIDStr := strings.TrimSpace(c.Params("id"))
		if notificationIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Notification ID is required!", nil)
		}

		notificationID, err := strconv.Atoi(notificationIDStr)
		if err != nil || notificationID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification ID!", nil)
		}

		c.Locals("notificationID", notificationID)
		return c.Next()
	}
}
