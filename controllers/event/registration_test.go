package eventController

import (
	"academia/config"
	"academia/database"
	"academia/middleware"
	"academia/models"
	eventValidators "academia/validators/event"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type eventFixture struct {
	db      *gorm.DB
	app     *fiber.App
	owner   models.User
	visitor models.User
	event   models.Event
}

func setupEventFixture(t *testing.T) eventFixture {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	owner := models.User{Name: "Ada", Email: "ada@example.com", Role: "USER", Password: "x"}
	visitor := models.User{Name: "Grace", Email: "grace@example.com", Role: "USER", Password: "x"}
	assert.NoError(t, db.Create(&owner).Error)
	assert.NoError(t, db.Create(&visitor).Error)

	event := models.Event{
		OwnerID:     owner.ID,
		Title:       "Consensus Workshop",
		EventType:   models.EventTypeVirtual,
		DateStart:   time.Now().Add(48 * time.Hour),
		DateEnd:     time.Now().Add(50 * time.Hour),
		IsPublished: true,
	}
	assert.NoError(t, db.Create(&event).Error)

	app := fiber.New()
	app.Post("/api/events/:id/register", eventValidators.EventID(), middleware.JWTMiddleware, RegisterForEvent)
	app.Delete("/api/events/:id/register", eventValidators.EventID(), middleware.JWTMiddleware, CancelRegistration)
	app.Get("/api/events/:id/participants", eventValidators.EventID(), middleware.JWTMiddleware, GetEventParticipants)
	app.Patch("/api/events/:id/registrations/:reg_id/payment", eventValidators.EventID(), eventValidators.UpdatePaymentStatus(), middleware.JWTMiddleware, UpdatePaymentStatus)

	return eventFixture{db: db, app: app, owner: owner, visitor: visitor, event: event}
}

func (f eventFixture) do(t *testing.T, user models.User, method, url string, payload interface{}) *http.Response {
	var reqBody *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		assert.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	token, err := middleware.GenerateAccessToken(user.ID, user.Name, user.Role, user.Email)
	assert.NoError(t, err)

	req := httptest.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookieName, Value: token})

	resp, err := f.app.Test(req)
	assert.NoError(t, err)
	return resp
}

func TestRegisterForEvent(t *testing.T) {
	f := setupEventFixture(t)

	resp := f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var registration models.EventRegistration
	assert.NoError(t, f.db.Where("event_id = ? AND user_id = ?", f.event.ID, f.visitor.ID).First(&registration).Error)
	assert.Equal(t, models.PaymentPending, registration.PaymentStatus)
}

func TestRegisterForOwnEvent(t *testing.T) {
	f := setupEventFixture(t)

	resp := f.do(t, f.owner, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterTwice(t *testing.T) {
	f := setupEventFixture(t)

	f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	resp := f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegisterFullEvent(t *testing.T) {
	f := setupEventFixture(t)
	assert.NoError(t, f.db.Model(&f.event).Update("max_attendees", 1).Error)

	other := models.User{Name: "Linus", Email: "linus@example.com", Role: "USER", Password: "x"}
	assert.NoError(t, f.db.Create(&other).Error)

	resp := f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = f.do(t, other, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCancelAndReRegister(t *testing.T) {
	f := setupEventFixture(t)

	f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)

	resp := f.do(t, f.visitor, "DELETE", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUpdatePaymentStatus(t *testing.T) {
	f := setupEventFixture(t)

	f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)

	var registration models.EventRegistration
	assert.NoError(t, f.db.Where("event_id = ? AND user_id = ?", f.event.ID, f.visitor.ID).First(&registration).Error)

	url := fmt.Sprintf("/api/events/%d/registrations/%d/payment", f.event.ID, registration.ID)

	// Only the event owner can update payment status
	resp := f.do(t, f.visitor, "PATCH", url, fiber.Map{"payment_status": models.PaymentPaid})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Unknown statuses are rejected before hitting the database
	resp = f.do(t, f.owner, "PATCH", url, fiber.Map{"payment_status": "SETTLED"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = f.do(t, f.owner, "PATCH", url, fiber.Map{"payment_status": models.PaymentPaid})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NoError(t, f.db.First(&registration, registration.ID).Error)
	assert.Equal(t, models.PaymentPaid, registration.PaymentStatus)
}

func TestGetEventParticipants(t *testing.T) {
	f := setupEventFixture(t)

	f.do(t, f.visitor, "POST", fmt.Sprintf("/api/events/%d/register", f.event.ID), nil)

	// Visitors cannot list participants
	resp := f.do(t, f.visitor, "GET", fmt.Sprintf("/api/events/%d/participants", f.event.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.do(t, f.owner, "GET", fmt.Sprintf("/api/events/%d/participants", f.event.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Total        int `json:"total"`
			Participants []struct {
				UserEmail string `json:"user_email"`
			} `json:"participants"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Data.Total)
	assert.Equal(t, f.visitor.Email, body.Data.Participants[0].UserEmail)
}
