package kpController

import (
	"academia/config"
	"academia/database"
	"academia/middleware"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	kpValidators "academia/validators/knowledgepath"
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

func setupTestDB(t *testing.T) *gorm.DB {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	user := models.User{Name: name, Email: email, Role: "USER", Password: "irrelevant"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestPath(t *testing.T, db *gorm.DB, authorID uint, nodeCount int) (kpModels.KnowledgePath, []kpModels.Node) {
	path := kpModels.KnowledgePath{AuthorID: authorID, Title: "Test Path", IsPublished: true}
	if err := db.Create(&path).Error; err != nil {
		t.Fatalf("Failed to create test path: %v", err)
	}

	nodes := make([]kpModels.Node, nodeCount)
	for i := 0; i < nodeCount; i++ {
		nodes[i] = kpModels.Node{
			KnowledgePathID: path.ID,
			Title:           fmt.Sprintf("Node %d", i+1),
			MediaType:       "TEXT",
			Order:           i + 1,
		}
		if err := db.Create(&nodes[i]).Error; err != nil {
			t.Fatalf("Failed to create test node: %v", err)
		}
	}
	return path, nodes
}

func authCookie(t *testing.T, user models.User) *http.Cookie {
	token, err := middleware.GenerateAccessToken(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return &http.Cookie{Name: middleware.AccessCookieName, Value: token}
}

func TestIsNodeAvailableGating(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	learner := createTestUser(t, db, "Grace", "grace@example.com")
	path, nodes := createTestPath(t, db, author.ID, 3)

	// First node is always open, later nodes are locked
	available, err := IsNodeAvailable(db, learner.ID, nodes[0], path)
	assert.NoError(t, err)
	assert.True(t, available)

	available, err = IsNodeAvailable(db, learner.ID, nodes[1], path)
	assert.NoError(t, err)
	assert.False(t, available)

	// Completing the first node unlocks the second, not the third
	_, err = MarkNodeAsCompleted(db, learner.ID, nodes[0])
	assert.NoError(t, err)

	available, err = IsNodeAvailable(db, learner.ID, nodes[1], path)
	assert.NoError(t, err)
	assert.True(t, available)

	available, err = IsNodeAvailable(db, learner.ID, nodes[2], path)
	assert.NoError(t, err)
	assert.False(t, available)

	// The author bypasses gating entirely
	available, err = IsNodeAvailable(db, author.ID, nodes[2], path)
	assert.NoError(t, err)
	assert.True(t, available)
}

func TestIsNodeAvailableBlockedByUnpassedQuiz(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	learner := createTestUser(t, db, "Grace", "grace@example.com")
	path, nodes := createTestPath(t, db, author.ID, 2)

	quiz := kpModels.Quiz{NodeID: nodes[0].ID, Title: "Check", MaxAttemptsPerDay: 3}
	assert.NoError(t, db.Create(&quiz).Error)

	_, err := MarkNodeAsCompleted(db, learner.ID, nodes[0])
	assert.NoError(t, err)

	// Completed but quiz not passed: next node stays locked
	available, err := IsNodeAvailable(db, learner.ID, nodes[1], path)
	assert.NoError(t, err)
	assert.False(t, available)

	attempt := kpModels.QuizAttempt{UserID: learner.ID, QuizID: quiz.ID, Score: kpModels.PassingScore, CompletedAt: time.Now()}
	assert.NoError(t, db.Create(&attempt).Error)

	available, err = IsNodeAvailable(db, learner.ID, nodes[1], path)
	assert.NoError(t, err)
	assert.True(t, available)
}

func TestMarkNodeAsCompletedIdempotent(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	learner := createTestUser(t, db, "Grace", "grace@example.com")
	_, nodes := createTestPath(t, db, author.ID, 1)

	first, err := MarkNodeAsCompleted(db, learner.ID, nodes[0])
	assert.NoError(t, err)
	assert.True(t, first.IsCompleted)
	assert.NotNil(t, first.CompletedAt)

	second, err := MarkNodeAsCompleted(db, learner.ID, nodes[0])
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	// Timestamp is written once and never moves
	assert.Equal(t, first.CompletedAt.Unix(), second.CompletedAt.Unix())

	var count int64
	db.Model(&kpModels.UserNodeCompletion{}).Where("user_id = ? AND node_id = ?", learner.ID, nodes[0].ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIsKnowledgePathCompleted(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	learner := createTestUser(t, db, "Grace", "grace@example.com")
	path, nodes := createTestPath(t, db, author.ID, 2)

	completed, err := IsKnowledgePathCompleted(db, learner.ID, path)
	assert.NoError(t, err)
	assert.False(t, completed)

	_, err = MarkNodeAsCompleted(db, learner.ID, nodes[0])
	assert.NoError(t, err)

	completed, err = IsKnowledgePathCompleted(db, learner.ID, path)
	assert.NoError(t, err)
	assert.False(t, completed)

	_, err = MarkNodeAsCompleted(db, learner.ID, nodes[1])
	assert.NoError(t, err)

	completed, err = IsKnowledgePathCompleted(db, learner.ID, path)
	assert.NoError(t, err)
	assert.True(t, completed)
}

func TestIsKnowledgePathCompletedEmptyPath(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	path, _ := createTestPath(t, db, author.ID, 0)

	completed, err := IsKnowledgePathCompleted(db, author.ID, path)
	assert.NoError(t, err)
	assert.False(t, completed)
}

func TestEvaluatePathCompletionNotifiesOnce(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	learner := createTestUser(t, db, "Grace", "grace@example.com")
	path, nodes := createTestPath(t, db, author.ID, 1)

	_, err := MarkNodeAsCompleted(db, learner.ID, nodes[0])
	assert.NoError(t, err)

	EvaluatePathCompletion(db, learner.ID, path)
	EvaluatePathCompletion(db, learner.ID, path)

	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND actor_id = ? AND verb = ?", author.ID, learner.ID, models.VerbPathCompleted).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMarkNodeCompleteEndpoint(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	learner := createTestUser(t, db, "Grace", "grace@example.com")
	_, nodes := createTestPath(t, db, author.ID, 2)

	app := fiber.New()
	app.Post("/api/nodes/:node_id/complete", kpValidators.NodeID(), middleware.JWTMiddleware, MarkNodeComplete)

	cookie := authCookie(t, learner)

	// Second node is locked until the first one is done
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/nodes/%d/complete", nodes[1].ID), nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest("POST", fmt.Sprintf("/api/nodes/%d/complete", nodes[0].ID), nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("POST", fmt.Sprintf("/api/nodes/%d/complete", nodes[1].ID), nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetKnowledgePathProgress(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")
	learner := createTestUser(t, db, "Grace", "grace@example.com")
	path, nodes := createTestPath(t, db, author.ID, 4)

	_, err := MarkNodeAsCompleted(db, learner.ID, nodes[0])
	assert.NoError(t, err)

	app := fiber.New()
	app.Get("/api/knowledge-paths/:id/progress", kpValidators.PathID(), middleware.JWTMiddleware, GetKnowledgePathProgress)

	req := httptest.NewRequest("GET", fmt.Sprintf("/api/knowledge-paths/%d/progress", path.ID), nil)
	req.AddCookie(authCookie(t, learner))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Nodes []struct {
				NodeID      uint `json:"node_id"`
				IsCompleted bool `json:"is_completed"`
				IsAvailable bool `json:"is_available"`
			} `json:"nodes"`
			CompletedNodes int     `json:"completed_nodes"`
			TotalNodes     int     `json:"total_nodes"`
			Percentage     float64 `json:"percentage"`
			IsCompleted    bool    `json:"is_completed"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, 1, body.Data.CompletedNodes)
	assert.Equal(t, 4, body.Data.TotalNodes)
	assert.Equal(t, float64(25), body.Data.Percentage)
	assert.False(t, body.Data.IsCompleted)

	assert.True(t, body.Data.Nodes[0].IsCompleted)
	assert.True(t, body.Data.Nodes[1].IsAvailable)
	assert.False(t, body.Data.Nodes[2].IsAvailable)
}

func TestUpdateKnowledgePathPartial(t *testing.T) {
	db := setupTestDB(t)
	author := createTestUser(t, db, "Ada", "ada@example.com")

	path := kpModels.KnowledgePath{AuthorID: author.ID, Title: "Draft Path", Description: "Kept as is"}
	assert.NoError(t, db.Create(&path).Error)

	app := fiber.New()
	app.Put("/api/knowledge-paths/:id", kpValidators.PathID(), middleware.JWTMiddleware, UpdateKnowledgePath)

	// A publish-only body must not be rejected for omitting title and description
	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/knowledge-paths/%d", path.ID),
		strings.NewReader(`{"is_published": true}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(authCookie(t, author))

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var refreshed kpModels.KnowledgePath
	assert.NoError(t, db.First(&refreshed, path.ID).Error)
	assert.True(t, refreshed.IsPublished)
	assert.Equal(t, "Draft Path", refreshed.Title)
	assert.Equal(t, "Kept as is", refreshed.Description)
}
