package certificateController

import (
	"academia/config"
	kpController "academia/controllers/knowledgepath"
	"academia/database"
	"academia/middleware"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	certificateValidators "academia/validators/certificate"
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

type certFixture struct {
	db      *gorm.DB
	app     *fiber.App
	author  models.User
	learner models.User
	path    kpModels.KnowledgePath
	node    kpModels.Node
}

func setupCertFixture(t *testing.T) certFixture {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	author := models.User{Name: "Ada", Email: "ada@example.com", Role: "USER", Password: "x"}
	learner := models.User{Name: "Grace", Email: "grace@example.com", Role: "USER", Password: "x"}
	assert.NoError(t, db.Create(&author).Error)
	assert.NoError(t, db.Create(&learner).Error)

	path := kpModels.KnowledgePath{AuthorID: author.ID, Title: "Test Path", IsPublished: true}
	assert.NoError(t, db.Create(&path).Error)

	node := kpModels.Node{KnowledgePathID: path.ID, Title: "Node 1", MediaType: "TEXT", Order: 1}
	assert.NoError(t, db.Create(&node).Error)

	app := fiber.New()
	app.Post("/api/certificate-requests/:path_id", certificateValidators.PathID(), middleware.JWTMiddleware, RequestCertificate)
	app.Get("/api/certificate-requests/:path_id/status", certificateValidators.PathID(), middleware.JWTMiddleware, GetRequestStatus)
	app.Patch("/api/certificate-requests/:request_id/approve", certificateValidators.RequestID(), middleware.JWTMiddleware, ApproveCertificateRequest)
	app.Patch("/api/certificate-requests/:request_id/reject", certificateValidators.RequestID(), certificateValidators.RejectRequest(), middleware.JWTMiddleware, RejectCertificateRequest)
	app.Patch("/api/certificate-requests/:request_id/cancel", certificateValidators.RequestID(), middleware.JWTMiddleware, CancelCertificateRequest)

	return certFixture{db: db, app: app, author: author, learner: learner, path: path, node: node}
}

func (f certFixture) do(t *testing.T, user models.User, method, url string, payload interface{}) *http.Response {
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

func (f certFixture) completePath(t *testing.T, user models.User) {
	_, err := kpController.MarkNodeAsCompleted(f.db, user.ID, f.node)
	assert.NoError(t, err)
}

func (f certFixture) latestRequest(t *testing.T, user models.User) kpModels.CertificateRequest {
	var request kpModels.CertificateRequest
	err := f.db.Where("user_id = ? AND knowledge_path_id = ?", user.ID, f.path.ID).
		Order("created_at desc").First(&request).Error
	assert.NoError(t, err)
	return request
}

func TestRequestCertificateRequiresCompletion(t *testing.T) {
	f := setupCertFixture(t)

	resp := f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRequestCertificateLifecycle(t *testing.T) {
	f := setupCertFixture(t)
	f.completePath(t, f.learner)

	resp := f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), fiber.Map{"notes": "please"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	request := f.latestRequest(t, f.learner)
	assert.Equal(t, kpModels.StatusPending, request.Status)
	assert.Equal(t, "please", request.Notes)

	// Author gets notified about the new request
	var notificationCount int64
	f.db.Model(&models.Notification{}).
		Where("user_id = ? AND verb = ?", f.author.ID, models.VerbCertificateRequest).Count(&notificationCount)
	assert.Equal(t, int64(1), notificationCount)

	// A duplicate request is rejected while one is active
	resp = f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestApproveCertificateRequest(t *testing.T) {
	f := setupCertFixture(t)
	f.completePath(t, f.learner)
	f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)
	request := f.latestRequest(t, f.learner)

	// Only the path author may approve
	resp := f.do(t, f.learner, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/approve", request.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/approve", request.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	request = f.latestRequest(t, f.learner)
	assert.Equal(t, kpModels.StatusApproved, request.Status)
	assert.NotNil(t, request.DecidedAt)
	assert.Equal(t, f.author.ID, *request.DecidedBy)

	var certificates []kpModels.Certificate
	f.db.Where("user_id = ? AND knowledge_path_id = ?", f.learner.ID, f.path.ID).Find(&certificates)
	assert.Len(t, certificates, 1)
	assert.NotEmpty(t, certificates[0].CertificateNumber)

	// Re-approval does not mint a second certificate or template
	resp = f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/approve", request.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var certCount, templateCount int64
	f.db.Model(&kpModels.Certificate{}).Where("knowledge_path_id = ?", f.path.ID).Count(&certCount)
	f.db.Model(&kpModels.CertificateTemplate{}).Where("knowledge_path_id = ?", f.path.ID).Count(&templateCount)
	assert.Equal(t, int64(1), certCount)
	assert.Equal(t, int64(1), templateCount)
}

func TestRejectThenApprove(t *testing.T) {
	f := setupCertFixture(t)
	f.completePath(t, f.learner)
	f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)
	request := f.latestRequest(t, f.learner)

	resp := f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/reject", request.ID),
		fiber.Map{"rejection_reason": "incomplete work"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	request = f.latestRequest(t, f.learner)
	assert.Equal(t, kpModels.StatusRejected, request.Status)
	assert.Equal(t, "incomplete work", request.RejectionReason)

	// Rejection without a reason is a validation error
	resp = f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/reject", request.ID), fiber.Map{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	// A rejected request can still be approved on review
	resp = f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/approve", request.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	request = f.latestRequest(t, f.learner)
	assert.Equal(t, kpModels.StatusApproved, request.Status)
	assert.Empty(t, request.RejectionReason)
}

func TestCancelCertificateRequest(t *testing.T) {
	f := setupCertFixture(t)
	f.completePath(t, f.learner)
	f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)
	request := f.latestRequest(t, f.learner)

	// Only the requester may cancel
	resp := f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/cancel", request.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = f.do(t, f.learner, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/cancel", request.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	request = f.latestRequest(t, f.learner)
	assert.Equal(t, kpModels.StatusCancelled, request.Status)

	// Cancelled requests are terminal
	resp = f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/approve", request.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// The user may open a fresh request afterwards
	resp = f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestCancelApprovedRequestForbidden(t *testing.T) {
	f := setupCertFixture(t)
	f.completePath(t, f.learner)
	f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)
	request := f.latestRequest(t, f.learner)

	f.do(t, f.author, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/approve", request.ID), nil)

	resp := f.do(t, f.learner, "PATCH", fmt.Sprintf("/api/certificate-requests/%d/cancel", request.ID), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetRequestStatus(t *testing.T) {
	f := setupCertFixture(t)

	resp := f.do(t, f.learner, "GET", fmt.Sprintf("/api/certificate-requests/%d/status", f.path.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	f.completePath(t, f.learner)
	f.do(t, f.learner, "POST", fmt.Sprintf("/api/certificate-requests/%d", f.path.ID), nil)

	resp = f.do(t, f.learner, "GET", fmt.Sprintf("/api/certificate-requests/%d/status", f.path.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data kpModels.CertificateRequest `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, kpModels.StatusPending, body.Data.Status)
}
