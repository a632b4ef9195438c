package voteController

import (
	"academia/database"
	"academia/middleware"
	"academia/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CastVote upserts the user's vote on a subject. Voting the same direction
// twice removes the vote; voting the other direction flips it.
func CastVote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVote").(*struct {
		SubjectKind string `json:"subject_kind"`
		SubjectID   uint   `json:"subject_id"`
		Value       int    `json:"value"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var vote models.Vote
	err := db.Where("user_id = ? AND subject_kind = ? AND subject_id = ?",
		userID, reqData.SubjectKind, reqData.SubjectID).First(&vote).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cast vote!", nil)
		}
		vote = models.Vote{
			UserID:      userID,
			SubjectKind: reqData.SubjectKind,
			SubjectID:   reqData.SubjectID,
			Value:       reqData.Value,
		}
		if err := db.Create(&vote).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cast vote!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Vote cast successfully!", vote)
	}

	if vote.IsDeleted || vote.Value != reqData.Value {
		vote.Value = reqData.Value
		vote.IsDeleted = false
		if err := db.Save(&vote).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update vote!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote updated successfully!", vote)
	}

	// Same direction again: retract
	vote.IsDeleted = true
	if err := db.Save(&vote).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove vote!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote removed successfully!", nil)
}

// GetVoteSummary tallies votes for a subject
func GetVoteSummary(c *fiber.Ctx) error {
	subjectKind := c.Query("subject_kind")
	subjectID := c.QueryInt("subject_id")

	if subjectKind == "" || subjectID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "subject_kind and subject_id are required!", nil)
	}

	db := database.Database.Db

	var upvotes, downvotes int64
	db.Model(&models.Vote{}).Where("subject_kind = ? AND subject_id = ? AND value = ? AND is_deleted = ?",
		subjectKind, subjectID, 1, false).Count(&upvotes)
	db.Model(&models.Vote{}).Where("subject_kind = ? AND subject_id = ? AND value = ? AND is_deleted = ?",
		subjectKind, subjectID, -1, false).Count(&downvotes)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Vote summary fetched successfully!", fiber.Map{
		"subject_kind": subjectKind,
		"subject_id":   subjectID,
		"upvotes":      upvotes,
		"downvotes":    downvotes,
		"score":        upvotes - downvotes,
	})
}
