package notificationController

import (
	"academia/database"
	"academia/middleware"
	"academia/models"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications lists the current user's notifications, newest first
func GetNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Limit(50).Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var unreadCount int64
	database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).Count(&unreadCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", fiber.Map{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkNotificationRead marks a single notification as read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationID := c.Locals("notificationID").(int)

	var notification models.Notification
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?",
		notificationID, userID, false).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if err := database.Database.Db.Model(&notification).Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notification as read!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", nil)
}

// MarkAllNotificationsRead marks all of the current user's notifications as read
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).
		Update("is_read", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark notifications as read!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read!", nil)
}
