package messageController

import (
	"academia/config"
	"academia/database"
	"academia/middleware"
	"academia/models"
	messageValidators "academia/validators/message"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMessageTest(t *testing.T) (*gorm.DB, *fiber.App, models.User, models.User) {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	sender := models.User{Name: "Grace", Email: "grace@example.com", Role: "USER", Password: "x"}
	recipient := models.User{Name: "Linus", Email: "linus@example.com", Role: "USER", Password: "x"}
	assert.NoError(t, db.Create(&sender).Error)
	assert.NoError(t, db.Create(&recipient).Error)

	app := fiber.New()
	app.Post("/api/messages", messageValidators.SendMessage(), middleware.JWTMiddleware, SendMessage)
	app.Get("/api/messages/inbox", middleware.JWTMiddleware, GetInbox)
	app.Get("/api/messages/conversation/:user_id", messageValidators.OtherUserID(), middleware.JWTMiddleware, GetConversation)

	return db, app, sender, recipient
}

func sendTestMessage(t *testing.T, app *fiber.App, from models.User, toID uint, body string) *http.Response {
	payload, err := json.Marshal(fiber.Map{"recipient_id": toID, "body": body})
	assert.NoError(t, err)

	token, err := middleware.GenerateAccessToken(from.ID, from.Name, from.Role, from.Email)
	assert.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/messages", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookieName, Value: token})

	resp, err := app.Test(req)
	assert.NoError(t, err)
	return resp
}

func TestSendMessage(t *testing.T) {
	db, app, sender, recipient := setupMessageTest(t)

	resp := sendTestMessage(t, app, sender, recipient.ID, "hello there")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var message models.DirectMessage
	assert.NoError(t, db.Where("sender_id = ? AND recipient_id = ?", sender.ID, recipient.ID).First(&message).Error)
	assert.Equal(t, "hello there", message.Body)
	assert.False(t, message.IsRead)

	// The recipient gets a notification
	var notificationCount int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND verb = ?", recipient.ID, models.VerbNewMessage).Count(&notificationCount)
	assert.Equal(t, int64(1), notificationCount)
}

func TestSendMessageToSelf(t *testing.T) {
	_, app, sender, _ := setupMessageTest(t)

	resp := sendTestMessage(t, app, sender, sender.ID, "note to self")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	_, app, sender, _ := setupMessageTest(t)

	resp := sendTestMessage(t, app, sender, 9999, "anyone home?")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetConversationMarksRead(t *testing.T) {
	db, app, sender, recipient := setupMessageTest(t)

	sendTestMessage(t, app, sender, recipient.ID, "first")
	sendTestMessage(t, app, sender, recipient.ID, "second")

	token, err := middleware.GenerateAccessToken(recipient.ID, recipient.Name, recipient.Role, recipient.Email)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/messages/conversation/%d", sender.ID), nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookieName, Value: token})

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Data.Total)

	// Opening the conversation marks everything received as read
	var unread int64
	db.Model(&models.DirectMessage{}).
		Where("recipient_id = ? AND is_read = ?", recipient.ID, false).Count(&unread)
	assert.Equal(t, int64(0), unread)
}

func TestGetInboxUnreadCount(t *testing.T) {
	_, app, sender, recipient := setupMessageTest(t)

	sendTestMessage(t, app, sender, recipient.ID, "ping")

	token, err := middleware.GenerateAccessToken(recipient.ID, recipient.Name, recipient.Role, recipient.Email)
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/messages/inbox", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookieName, Value: token})

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			UnreadCount int64 `json:"unread_count"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(1), body.Data.UnreadCount)
}
