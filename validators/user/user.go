package userValidator

import (
	"academia/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ProfileUserID validates the :id route parameter for public profile lookups
func ProfileUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("id"))
		if userIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		profileUserID, err := strconv.Atoi(userIDStr)
		if err != nil || profileUserID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}

		c.Locals("profileUserID", profileUserID)
		return c.Next()
	}
}
