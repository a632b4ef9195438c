package eventController

import (
	"academia/database"
	"academia/middleware"
	"academia/models"

	"github.com/gofiber/fiber/v2"
)

func CreateEvent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedEvent").(*models.Event)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	event := models.Event{
		OwnerID:             userID,
		Title:               reqData.Title,
		Description:         reqData.Description,
		EventType:           reqData.EventType,
		Location:            reqData.Location,
		ScheduleDescription: reqData.ScheduleDescription,
		DateStart:           reqData.DateStart,
		DateEnd:             reqData.DateEnd,
		MaxAttendees:        reqData.MaxAttendees,
	}

	if err := database.Database.Db.Create(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event created successfully!", event)
}

func UpdateEvent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(int)

	var event models.Event
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.OwnerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the owner can update this event!", nil)
	}

	reqData := new(struct {
		Title               *string `json:"title"`
		Description         *string `json:"description"`
		Location            *string `json:"location"`
		ScheduleDescription *string `json:"schedule_description"`
		MaxAttendees        *int    `json:"max_attendees"`
		IsPublished         *bool   `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		event.Title = *reqData.Title
	}
	if reqData.Description != nil {
		event.Description = *reqData.Description
	}
	if reqData.Location != nil {
		event.Location = *reqData.Location
	}
	if reqData.ScheduleDescription != nil {
		event.ScheduleDescription = *reqData.ScheduleDescription
	}
	if reqData.MaxAttendees != nil {
		event.MaxAttendees = *reqData.MaxAttendees
	}
	if reqData.IsPublished != nil {
		event.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event updated successfully!", event)
}

func DeleteEvent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(int)

	var event models.Event
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if event.OwnerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the owner can delete this event!", nil)
	}

	if err := database.Database.Db.Model(&event).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event deleted successfully!", nil)
}

func GetEvents(c *fiber.Ctx) error {
	var events []models.Event
	if err := database.Database.Db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("date_start asc").Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events fetched successfully!", fiber.Map{
		"events": events,
		"total":  len(events),
	})
}

func GetEventDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	eventID := c.Locals("eventID").(int)

	var event models.Event
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", eventID, false).First(&event).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	if !event.IsPublished && event.OwnerID != userID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Event not found!", nil)
	}

	var registrationCount int64
	database.Database.Db.Model(&models.EventRegistration{}).
		Where("event_id = ? AND is_deleted = ?", event.ID, false).Count(&registrationCount)

	// Flag whether the current user is registered
	var myRegistration models.EventRegistration
	isRegistered := database.Database.Db.Where("event_id = ? AND user_id = ? AND is_deleted = ?",
		event.ID, userID, false).First(&myRegistration).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Event fetched successfully!", fiber.Map{
		"event":         event,
		"registrations": registrationCount,
		"is_registered": isRegistered,
	})
}
