package commentController

import (
	"academia/database"
	"academia/middleware"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// subjectAuthor resolves the owner of a commentable subject, so the author
// can be notified of new top-level comments.
func subjectAuthor(db *gorm.DB, subjectKind string, subjectID uint) (uint, error) {
	switch subjectKind {
	case models.SubjectContent:
		var content models.Content
		if err := db.Where("id = ? AND is_deleted = ?", subjectID, false).First(&content).Error; err != nil {
			return 0, err
		}
		return content.AuthorID, nil
	case models.SubjectKnowledgePath:
		var path kpModels.KnowledgePath
		if err := db.Where("id = ? AND is_deleted = ?", subjectID, false).First(&path).Error; err != nil {
			return 0, err
		}
		return path.AuthorID, nil
	case models.SubjectEvent:
		var event models.Event
		if err := db.Where("id = ? AND is_deleted = ?", subjectID, false).First(&event).Error; err != nil {
			return 0, err
		}
		return event.OwnerID, nil
	}
	return 0, gorm.ErrRecordNotFound
}

// CreateComment posts a comment on a subject. Replies reference a parent
// comment on the same subject.
func CreateComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedComment").(*struct {
		SubjectKind string `json:"subject_kind"`
		SubjectID   uint   `json:"subject_id"`
		ParentID    *uint  `json:"parent_id"`
		Body        string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	authorID, err := subjectAuthor(db, reqData.SubjectKind, reqData.SubjectID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	if reqData.ParentID != nil {
		var parent models.Comment
		if err := db.Where("id = ? AND is_deleted = ?", *reqData.ParentID, false).First(&parent).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent comment not found!", nil)
		}
		if parent.SubjectKind != reqData.SubjectKind || parent.SubjectID != reqData.SubjectID {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Parent comment belongs to a different subject!", nil)
		}
	}

	comment := models.Comment{
		AuthorID:    userID,
		SubjectKind: reqData.SubjectKind,
		SubjectID:   reqData.SubjectID,
		ParentID:    reqData.ParentID,
		Body:        reqData.Body,
	}
	if err := db.Create(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create comment!", nil)
	}

	// Commenting on your own subject needs no notification
	if authorID != userID {
		notification := models.Notification{
			UserID:      authorID,
			ActorID:     userID,
			Verb:        models.VerbNewComment,
			SubjectKind: reqData.SubjectKind,
			SubjectID:   reqData.SubjectID,
			Message:     fmt.Sprintf("New comment on your %s", reqData.SubjectKind),
		}
		if err := db.Create(&notification).Error; err != nil {
			fmt.Printf("Failed to create comment notification: %v\n", err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment posted successfully!", comment)
}

// GetComments lists the comments on a subject, oldest first
func GetComments(c *fiber.Ctx) error {
	subjectKind := c.Query("subject_kind")
	subjectID := c.QueryInt("subject_id")

	if subjectKind == "" || subjectID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "subject_kind and subject_id are required!", nil)
	}

	var comments []models.Comment
	if err := database.Database.Db.Where("subject_kind = ? AND subject_id = ? AND is_deleted = ?",
		subjectKind, subjectID, false).Order("created_at asc").Find(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully!", fiber.Map{
		"comments": comments,
		"total":    len(comments),
	})
}

// DeleteComment soft-deletes a comment (author only)
func DeleteComment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	commentID := c.Locals("commentID").(int)

	var comment models.Comment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", commentID, false).First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	if comment.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can delete this comment!", nil)
	}

	if err := database.Database.Db.Model(&comment).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment deleted successfully!", nil)
}
