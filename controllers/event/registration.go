package eventController

import (
	"academia/controllers/gamification"
	"academia/database"
	"academia/middleware"
	"academia/models"
	"academia/utils"

	"github.com/gofiber/fiber/v2"
)

// RegisterForEvent registers the current user for an event. Owners cannot
// register for their own events and duplicate live registrations are rejected.
func RegisterForEvent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	eventID := c.Locals("eventID").(int)

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_published = ? AND is_deleted = ?", eventID, true, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found or not published!", nil)
	}

	if event.OwnerID == userID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot register for your own event!", nil)
	}

	var existing models.EventRegistration
	if err := db.Where("event_id = ? AND user_id = ? AND is_deleted = ?", event.ID, userID, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already registered for this event!", nil)
	}

	if event.MaxAttendees > 0 {
		var count int64
		db.Model(&models.EventRegistration{}).
			Where("event_id = ? AND is_deleted = ?", event.ID, false).Count(&count)
		if count >= int64(event.MaxAttendees) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Event is full!", nil)
		}
	}

	registration := models.EventRegistration{
		EventID:       event.ID,
		UserID:        userID,
		PaymentStatus: models.PaymentPending,
	}

	if err := db.Create(&registration).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register for event!", nil)
	}

	// Confirmation email and badge never block the registration
	utils.SendEventRegistrationEmail(user.Email, user.Name, event.Title, event.DateStart)

	gamification.AwardBadge(db, userID, models.BadgeEventGoer, map[string]interface{}{
		"event_id": event.ID,
		"title":    event.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Registered for event successfully!", registration)
}

// CancelRegistration cancels the current user's registration. Re-registration
// is allowed afterwards.
func CancelRegistration(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(int)

	var registration models.EventRegistration
	if err := database.Database.Db.Where("event_id = ? AND user_id = ? AND is_deleted = ?", eventID, userID, false).
		First(&registration).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Registration not found!", nil)
	}

	if err := database.Database.Db.Model(&registration).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel registration!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration cancelled successfully!", nil)
}

// UpdatePaymentStatus sets the payment status of a registration (event owner only)
func UpdatePaymentStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(int)
	registrationID := c.Locals("registrationID").(int)

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.OwnerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the event owner can update payment status!", nil)
	}

	var registration models.EventRegistration
	if err := db.Where("id = ? AND event_id = ? AND is_deleted = ?", registrationID, eventID, false).
		First(&registration).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Registration not found!", nil)
	}

	reqData, ok := c.Locals("validatedPaymentStatus").(*struct {
		PaymentStatus string `json:"payment_status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	registration.PaymentStatus = reqData.PaymentStatus

	if err := db.Save(&registration).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update payment status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment status updated successfully!", registration)
}

// GetEventParticipants lists registrations with user info (event owner only)
func GetEventParticipants(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(int)

	db := database.Database.Db

	var event models.Event
	if err := db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.OwnerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the event owner can view participants!", nil)
	}

	type ParticipantView struct {
		models.EventRegistration
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	var registrations []models.EventRegistration
	if err := db.Where("event_id = ? AND is_deleted = ?", event.ID, false).
		Order("created_at asc").Find(&registrations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch participants!", nil)
	}

	result := make([]ParticipantView, len(registrations))
	for i, reg := range registrations {
		var participant models.User
		db.Where("id = ?", reg.UserID).First(&participant)
		result[i] = ParticipantView{
			EventRegistration: reg,
			UserName:          participant.Name,
			UserEmail:         participant.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Participants fetched successfully!", fiber.Map{
		"participants": result,
		"total":        len(result),
	})
}

// GetMyRegistrations lists events the current user registered for
func GetMyRegistrations(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type RegistrationWithEvent struct {
		models.EventRegistration
		EventTitle string `json:"event_title"`
	}

	var registrations []models.EventRegistration
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&registrations).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registrations!", nil)
	}

	result := make([]RegistrationWithEvent, len(registrations))
	for i, reg := range registrations {
		var event models.Event
		database.Database.Db.Where("id = ?", reg.EventID).First(&event)
		result[i] = RegistrationWithEvent{
			EventRegistration: reg,
			EventTitle:        event.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registrations fetched successfully!", fiber.Map{
		"registrations": result,
		"total":         len(result),
	})
}
