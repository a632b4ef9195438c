package messageController

import (
	"academia/database"
	"academia/middleware"
	"academia/models"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// SendMessage sends a direct message to another user
func SendMessage(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var sender models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&sender).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedMessage").(*struct {
		RecipientID uint   `json:"recipient_id"`
		Body        string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.RecipientID == userID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot message yourself!", nil)
	}

	db := database.Database.Db

	var recipient models.User
	if err := db.Where("id = ? AND is_deleted = ?", reqData.RecipientID, false).First(&recipient).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Recipient not found!", nil)
	}

	message := models.DirectMessage{
		SenderID:    userID,
		RecipientID: recipient.ID,
		Body:        reqData.Body,
	}

	if err := db.Create(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	notification := models.Notification{
		UserID:  recipient.ID,
		ActorID: userID,
		Verb:    models.VerbNewMessage,
		Message: fmt.Sprintf("New message from %s", sender.Name),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating message notification: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully!", message)
}

// GetInbox lists messages received by the current user
func GetInbox(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var messages []models.DirectMessage
	if err := database.Database.Db.Where("recipient_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	var unreadCount int64
	database.Database.Db.Model(&models.DirectMessage{}).
		Where("recipient_id = ? AND is_read = ? AND is_deleted = ?", userID, false, false).Count(&unreadCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Inbox fetched successfully!", fiber.Map{
		"messages":     messages,
		"unread_count": unreadCount,
	})
}

// GetConversation lists the two-way message history with another user
func GetConversation(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	otherUserID := c.Locals("otherUserID").(int)

	var messages []models.DirectMessage
	if err := database.Database.Db.
		Where("((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)) AND is_deleted = ?",
			userID, otherUserID, otherUserID, userID, false).
		Order("created_at asc").Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch conversation!", nil)
	}

	// Opening a conversation marks received messages as read
	database.Database.Db.Model(&models.DirectMessage{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ? AND is_deleted = ?",
			otherUserID, userID, false, false).
		Update("is_read", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Conversation fetched successfully!", fiber.Map{
		"messages": messages,
		"total":    len(messages),
	})
}
