package messageValidator

import (
	"academia/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func SendMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RecipientID uint   `json:"recipient_id"`
			Body        string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RecipientID == 0 {
			errors["recipient_id"] = "Recipient ID is required!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Message body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}

// OtherUserID validates the :user_id route parameter for conversation lookups
func OtherUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := strings.TrimSpace(c.Params("user_id"))
		if userIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
		}

		otherUserID, err := strconv.Atoi(userIDStr)
		if err != nil || otherUserID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user ID!", nil)
		}

		c.Locals("otherUserID", otherUserID)
		return c.Next()
	}
}
