package certificateValidator

import (
	"academia/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PathID validates the :path_id route parameter and stores it as pathID
func PathID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathIDStr := strings.TrimSpace(c.Params("path_id"))
		if pathIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Knowledge path ID is required!", nil)
		}

		pathID, err := strconv.Atoi(pathIDStr)
		if err != nil || pathID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid knowledge path ID!", nil)
		}

		c.Locals("pathID", pathID)
		return c.Next()
	}
}

// RequestID validates the :request_id route parameter and stores it as requestID
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestIDStr := strings.TrimSpace(c.Params("request_id"))
		if requestIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Request ID is required!", nil)
		}

		requestID, err := strconv.Atoi(requestIDStr)
		if err != nil || requestID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
		}

		c.Locals("requestID", requestID)
		return c.Next()
	}
}

// RejectRequest validates the rejection payload
func RejectRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RejectionReason string `json:"rejection_reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.RejectionReason) == "" {
			errors["rejection_reason"] = "Rejection reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRejection", reqData)
		return c.Next()
	}
}
