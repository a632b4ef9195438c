package kpController

import (
	"academia/controllers/gamification"
	"academia/database"
	"academia/middleware"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	"academia/utils"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// IsKnowledgePathCompleted reports whether the user has completed every node
// of the path and passed the first quiz of every node that has one.
func IsKnowledgePathCompleted(db *gorm.DB, userID uint, path kpModels.KnowledgePath) (bool, error) {
	var nodes []kpModels.Node
	if err := db.Where("knowledge_path_id = ? AND is_deleted = ?", path.ID, false).
		Order("order_index asc").Find(&nodes).Error; err != nil {
		return false, err
	}
	if len(nodes) == 0 {
		return false, nil
	}

	for _, node := range nodes {
		var completion kpModels.UserNodeCompletion
		err := db.Where("user_id = ? AND node_id = ? AND is_completed = ? AND is_deleted = ?",
			userID, node.ID, true, false).First(&completion).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return false, nil
			}
			return false, err
		}

		var quiz kpModels.Quiz
		err = db.Where("node_id = ? AND is_deleted = ?", node.ID, false).
			Order("id asc").First(&quiz).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue // node has no quiz
			}
			return false, err
		}

		var passedCount int64
		if err := db.Model(&kpModels.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ? AND score = ? AND is_deleted = ?",
				userID, quiz.ID, kpModels.PassingScore, false).
			Count(&passedCount).Error; err != nil {
			return false, err
		}
		if passedCount == 0 {
			return false, nil
		}
	}

	return true, nil
}

// EvaluatePathCompletion checks whether the user has just completed the whole
// path and, on the first such evaluation, notifies the author and awards the
// completion badge. The persisted notification row doubles as the dedup
// guard, so repeated evaluations stay silent.
func EvaluatePathCompletion(db *gorm.DB, userID uint, path kpModels.KnowledgePath) {
	completed, err := IsKnowledgePathCompleted(db, userID, path)
	if err != nil {
		log.Printf("Error evaluating path completion for user %d path %d: %v", userID, path.ID, err)
		return
	}
	if !completed {
		return
	}

	var existing int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND actor_id = ? AND verb = ? AND subject_kind = ? AND subject_id = ?",
			path.AuthorID, userID, models.VerbPathCompleted, models.SubjectKnowledgePath, path.ID).
		Count(&existing)
	if existing > 0 {
		return
	}

	var student models.User
	if err := db.Where("id = ?", userID).First(&student).Error; err != nil {
		log.Printf("Error fetching user %d: %v", userID, err)
		return
	}

	notification := models.Notification{
		UserID:      path.AuthorID,
		ActorID:     userID,
		Verb:        models.VerbPathCompleted,
		SubjectKind: models.SubjectKnowledgePath,
		SubjectID:   path.ID,
		Message:     fmt.Sprintf("%s completed your knowledge path \"%s\"", student.Name, path.Title),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error creating path completion notification: %v", err)
	}

	var author models.User
	if err := db.Where("id = ?", path.AuthorID).First(&author).Error; err == nil {
		utils.SendPathCompletedEmail(author.Email, author.Name, student.Name, path.Title)
	}

	gamification.AwardBadge(db, userID, models.BadgePathPioneer, map[string]interface{}{
		"knowledge_path_id": path.ID,
		"title":             path.Title,
	})
}

// GetKnowledgePathProgress returns the per-node progress summary for the current user
func GetKnowledgePathProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathID := c.Locals("pathID").(int)

	db := database.Database.Db

	var path kpModels.KnowledgePath
	if err := db.Where("id = ? AND is_deleted = ?", pathID, false).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	var nodes []kpModels.Node
	if err := db.Where("knowledge_path_id = ? AND is_deleted = ?", path.ID, false).
		Order("order_index asc").Find(&nodes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch nodes!", nil)
	}

	type NodeProgress struct {
		NodeID      uint   `json:"node_id"`
		Title       string `json:"title"`
		Order       int    `json:"order"`
		IsCompleted bool   `json:"is_completed"`
		IsAvailable bool   `json:"is_available"`
		HasQuiz     bool   `json:"has_quiz"`
		BestScore   *int   `json:"best_quiz_score"`
	}

	nodeProgress := make([]NodeProgress, len(nodes))
	completedCount := 0

	for i, node := range nodes {
		available, err := IsNodeAvailable(db, userID, node, path)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check node availability!", nil)
		}

		var completion kpModels.UserNodeCompletion
		isCompleted := false
		if err := db.Where("user_id = ? AND node_id = ? AND is_deleted = ?", userID, node.ID, false).
			First(&completion).Error; err == nil {
			isCompleted = completion.IsCompleted
		}
		if isCompleted {
			completedCount++
		}

		var quizCount int64
		db.Model(&kpModels.Quiz{}).Where("node_id = ? AND is_deleted = ?", node.ID, false).Count(&quizCount)

		var bestScore *int
		if quizCount > 0 {
			var best struct{ Best int }
			err := db.Model(&kpModels.QuizAttempt{}).
				Select("MAX(quiz_attempts.score) as best").
				Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
				Where("quiz_attempts.user_id = ? AND quizzes.node_id = ? AND quiz_attempts.is_deleted = ?",
					userID, node.ID, false).
				Scan(&best).Error
			if err == nil {
				var attemptCount int64
				db.Model(&kpModels.QuizAttempt{}).
					Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
					Where("quiz_attempts.user_id = ? AND quizzes.node_id = ? AND quiz_attempts.is_deleted = ?",
						userID, node.ID, false).
					Count(&attemptCount)
				if attemptCount > 0 {
					score := best.Best
					bestScore = &score
				}
			}
		}

		nodeProgress[i] = NodeProgress{
			NodeID:      node.ID,
			Title:       node.Title,
			Order:       node.Order,
			IsCompleted: isCompleted,
			IsAvailable: available,
			HasQuiz:     quizCount > 0,
			BestScore:   bestScore,
		}
	}

	percentage := float64(0)
	if len(nodes) > 0 {
		percentage = float64(completedCount) / float64(len(nodes)) * 100
	}

	completed, err := IsKnowledgePathCompleted(db, userID, path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check path completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"knowledge_path_id": path.ID,
		"title":             path.Title,
		"nodes":             nodeProgress,
		"completed_nodes":   completedCount,
		"total_nodes":       len(nodes),
		"percentage":        percentage,
		"is_completed":      completed,
	})
}
