package commentController

import (
	"academia/config"
	voteControllers "academia/controllers/vote"
	"academia/database"
	"academia/middleware"
	"academia/models"
	commentValidators "academia/validators/comment"
	voteValidators "academia/validators/vote"
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

type commentFixture struct {
	db      *gorm.DB
	app     *fiber.App
	author  models.User
	reader  models.User
	content models.Content
}

func setupCommentFixture(t *testing.T) commentFixture {
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	author := models.User{Name: "Ada", Email: "ada@example.com", Role: "USER", Password: "x"}
	assert.NoError(t, db.Create(&author).Error)
	reader := models.User{Name: "Grace", Email: "grace@example.com", Role: "USER", Password: "x"}
	assert.NoError(t, db.Create(&reader).Error)

	content := models.Content{AuthorID: author.ID, Title: "Hash Functions", IsPublished: true}
	assert.NoError(t, db.Create(&content).Error)

	app := fiber.New()
	app.Post("/api/comments", commentValidators.CreateComment(), middleware.JWTMiddleware, CreateComment)
	app.Get("/api/comments", middleware.JWTMiddleware, GetComments)
	app.Delete("/api/comments/:id", commentValidators.CommentID(), middleware.JWTMiddleware, DeleteComment)

	return commentFixture{db: db, app: app, author: author, reader: reader, content: content}
}

func (f commentFixture) do(t *testing.T, user models.User, method, url string, payload interface{}) *http.Response {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		assert.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	token, err := middleware.GenerateAccessToken(user.ID, user.Name, user.Role, user.Email)
	assert.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.AccessCookieName, Value: token})

	resp, err := f.app.Test(req)
	assert.NoError(t, err)
	return resp
}

func TestCreateComment(t *testing.T) {
	f := setupCommentFixture(t)

	resp := f.do(t, f.reader, "POST", "/api/comments", fiber.Map{
		"subject_kind": models.SubjectContent,
		"subject_id":   f.content.ID,
		"body":         "Great explanation of collisions.",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var comment models.Comment
	assert.NoError(t, f.db.Where("author_id = ?", f.reader.ID).First(&comment).Error)
	assert.Equal(t, f.content.ID, comment.SubjectID)
	assert.Nil(t, comment.ParentID)

	// The content author is notified
	var notification models.Notification
	assert.NoError(t, f.db.Where("user_id = ? AND verb = ?", f.author.ID, models.VerbNewComment).
		First(&notification).Error)
	assert.Equal(t, f.reader.ID, notification.ActorID)
}

func TestCreateCommentOnOwnContentNoNotification(t *testing.T) {
	f := setupCommentFixture(t)

	resp := f.do(t, f.author, "POST", "/api/comments", fiber.Map{
		"subject_kind": models.SubjectContent,
		"subject_id":   f.content.ID,
		"body":         "Thanks for reading!",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var count int64
	f.db.Model(&models.Notification{}).Where("verb = ?", models.VerbNewComment).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateCommentUnknownSubject(t *testing.T) {
	f := setupCommentFixture(t)

	resp := f.do(t, f.reader, "POST", "/api/comments", fiber.Map{
		"subject_kind": models.SubjectContent,
		"subject_id":   9999,
		"body":         "Hello?",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateCommentReply(t *testing.T) {
	f := setupCommentFixture(t)

	parent := models.Comment{
		AuthorID:    f.reader.ID,
		SubjectKind: models.SubjectContent,
		SubjectID:   f.content.ID,
		Body:        "First!",
	}
	assert.NoError(t, f.db.Create(&parent).Error)

	resp := f.do(t, f.author, "POST", "/api/comments", fiber.Map{
		"subject_kind": models.SubjectContent,
		"subject_id":   f.content.ID,
		"parent_id":    parent.ID,
		"body":         "Welcome aboard.",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var reply models.Comment
	assert.NoError(t, f.db.Where("author_id = ?", f.author.ID).First(&reply).Error)
	assert.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	// A reply cannot point at a parent on a different subject
	otherContent := models.Content{AuthorID: f.author.ID, Title: "Merkle Trees", IsPublished: true}
	assert.NoError(t, f.db.Create(&otherContent).Error)

	resp = f.do(t, f.author, "POST", "/api/comments", fiber.Map{
		"subject_kind": models.SubjectContent,
		"subject_id":   otherContent.ID,
		"parent_id":    parent.ID,
		"body":         "Crossed wires.",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetCommentsExcludesDeleted(t *testing.T) {
	f := setupCommentFixture(t)

	kept := models.Comment{AuthorID: f.reader.ID, SubjectKind: models.SubjectContent, SubjectID: f.content.ID, Body: "Kept"}
	removed := models.Comment{AuthorID: f.reader.ID, SubjectKind: models.SubjectContent, SubjectID: f.content.ID, Body: "Removed"}
	assert.NoError(t, f.db.Create(&kept).Error)
	assert.NoError(t, f.db.Create(&removed).Error)

	resp := f.do(t, f.reader, "DELETE", fmt.Sprintf("/api/comments/%d", removed.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = f.do(t, f.reader, "GET",
		fmt.Sprintf("/api/comments?subject_kind=%s&subject_id=%d", models.SubjectContent, f.content.ID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Total    int `json:"total"`
			Comments []struct {
				Body string `json:"body"`
			} `json:"comments"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Data.Total)
	assert.Equal(t, "Kept", body.Data.Comments[0].Body)
}

func TestDeleteCommentForbiddenForNonAuthor(t *testing.T) {
	f := setupCommentFixture(t)

	comment := models.Comment{AuthorID: f.reader.ID, SubjectKind: models.SubjectContent, SubjectID: f.content.ID, Body: "Mine"}
	assert.NoError(t, f.db.Create(&comment).Error)

	resp := f.do(t, f.author, "DELETE", fmt.Sprintf("/api/comments/%d", comment.ID), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestVoteOnComment(t *testing.T) {
	f := setupCommentFixture(t)
	f.app.Post("/api/votes", voteValidators.CastVote(), middleware.JWTMiddleware, voteControllers.CastVote)

	comment := models.Comment{AuthorID: f.author.ID, SubjectKind: models.SubjectContent, SubjectID: f.content.ID, Body: "Vote on me"}
	assert.NoError(t, f.db.Create(&comment).Error)

	resp := f.do(t, f.reader, "POST", "/api/votes", fiber.Map{
		"subject_kind": models.SubjectComment,
		"subject_id":   comment.ID,
		"value":        1,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var vote models.Vote
	assert.NoError(t, f.db.Where("subject_kind = ? AND subject_id = ? AND is_deleted = ?",
		models.SubjectComment, comment.ID, false).First(&vote).Error)
	assert.Equal(t, 1, vote.Value)
}
