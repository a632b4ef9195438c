package eventValidator

import (
	"academia/middleware"
	"academia/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// EventID validates the :id route parameter and stores it as eventID
func EventID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventIDStr := strings.TrimSpace(c.Params("id"))
		if eventIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Event ID is required!", nil)
		}

		eventID, err := strconv.Atoi(eventIDStr)
		if err != nil || eventID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event ID!", nil)
		}

		c.Locals("eventID", eventID)
		return c.Next()
	}
}

func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.Event)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		validTypes := map[string]bool{
			models.EventTypeLive:    true,
			models.EventTypeVirtual: true,
			models.EventTypeHybrid:  true,
		}
		if reqData.EventType == "" {
			reqData.EventType = models.EventTypeVirtual
		} else if !validTypes[reqData.EventType] {
			errors["event_type"] = "Event type must be one of LIVE, VIRTUAL, HYBRID!"
		}

		if reqData.DateStart.IsZero() {
			errors["date_start"] = "Start date is required!"
		}
		if !reqData.DateEnd.IsZero() && reqData.DateEnd.Before(reqData.DateStart) {
			errors["date_end"] = "End date cannot be before start date!"
		}
		if reqData.MaxAttendees < 0 {
			errors["max_attendees"] = "Max attendees cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}

// UpdatePaymentStatus validates the :reg_id parameter and payment payload
func UpdatePaymentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		regIDStr := strings.TrimSpace(c.Params("reg_id"))
		regID, err := strconv.Atoi(regIDStr)
		if err != nil || regID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid registration ID!", nil)
		}

		reqData := new(struct {
			PaymentStatus string `json:"payment_status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		validStatuses := map[string]bool{
			models.PaymentPending:  true,
			models.PaymentPaid:     true,
			models.PaymentRefunded: true,
		}
		if !validStatuses[reqData.PaymentStatus] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"payment_status": "Payment status must be one of PENDING, PAID, REFUNDED!",
			})
		}

		c.Locals("registrationID", regID)
		c.Locals("validatedPaymentStatus", reqData)
		return c.Next()
	}
}
