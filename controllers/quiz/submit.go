package quizController

import (
	kpController "academia/controllers/knowledgepath"
	"academia/database"
	"academia/middleware"
	"academia/models"
	kpModels "academia/models/knowledgepath"
	"encoding/json"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmitQuiz scores a submission against the quiz's questions, enforcing the
// per-day attempt limit. Body: {"answers": {"<question_id>": [option_id, ...]}}
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	quizID := c.Locals("quizID").(int)

	db := database.Database.Db

	var quiz kpModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	node, path, err := pathForQuiz(quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	available, err := kpController.IsNodeAvailable(db, userID, node, path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check node availability!", nil)
	}
	if !available {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This quiz is not available yet. Complete the previous node first!", nil)
	}

	reqData := new(struct {
		Answers map[uint][]uint `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	// Attempt rate limiting over the current calendar day. Rejected
	// submissions must leave no attempt row behind.
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var attemptsToday int64
	if err := db.Model(&kpModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = ? AND created_at >= ?", userID, quiz.ID, false, startOfDay).
		Count(&attemptsToday).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check attempts!", nil)
	}
	if attemptsToday >= int64(quiz.MaxAttemptsPerDay) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Maximum attempts per day reached. Try again tomorrow!", nil)
	}

	var questions []kpModels.Question
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions!", nil)
	}

	questionsByID := make(map[uint]kpModels.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}

	// Every submitted question must belong to the quiz, every submitted
	// option to its question
	for questionID, selectedIDs := range reqData.Answers {
		question, exists := questionsByID[questionID]
		if !exists {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer references a question that does not belong to this quiz!", nil)
		}
		if question.QuestionType == kpModels.QuestionSingle && len(selectedIDs) > 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Single choice questions accept exactly one option!", nil)
		}

		if len(selectedIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please select at least one option!", nil)
		}

		var validCount int64
		if err := db.Model(&kpModels.Option{}).
			Where("question_id = ? AND id IN ? AND is_deleted = ?", questionID, selectedIDs, false).
			Count(&validCount).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate options!", nil)
		}
		if validCount != int64(len(selectedIDs)) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer references an option that does not belong to the question!", nil)
		}
	}

	// Score: a question is correct iff the selected set equals the correct set
	type answerResult struct {
		question  kpModels.Question
		selected  []uint
		isCorrect bool
	}

	results := make([]answerResult, 0, len(questions))
	correctCount := 0

	for _, question := range questions {
		selectedIDs := reqData.Answers[question.ID]

		var correctOptions []kpModels.Option
		db.Where("question_id = ? AND is_correct = ? AND is_deleted = ?", question.ID, true, false).Find(&correctOptions)

		correctSet := make(map[uint]bool, len(correctOptions))
		for _, opt := range correctOptions {
			correctSet[opt.ID] = true
		}

		isCorrect := len(selectedIDs) == len(correctSet) && len(correctSet) > 0
		if isCorrect {
			for _, id := range selectedIDs {
				if !correctSet[id] {
					isCorrect = false
					break
				}
			}
		}
		if isCorrect {
			correctCount++
		}

		results = append(results, answerResult{question: question, selected: selectedIDs, isCorrect: isCorrect})
	}

	score := int(math.Round(float64(correctCount) / float64(len(questions)) * 100))

	attempt := kpModels.QuizAttempt{
		UserID:      userID,
		QuizID:      quiz.ID,
		Score:       score,
		CompletedAt: now,
	}

	tx := db.Begin()
	if err := tx.Create(&attempt).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attempt!", nil)
	}

	for _, res := range results {
		selectedJSON, _ := json.Marshal(res.selected)
		answer := kpModels.QuizAnswer{
			AttemptID:       attempt.ID,
			QuestionID:      res.question.ID,
			SelectedOptions: datatypes.JSON(selectedJSON),
			IsCorrect:       res.isCorrect,
		}
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save answers!", nil)
		}
	}
	tx.Commit()

	// When this pass satisfies the node, hint the next node for navigation
	var nextNode *kpModels.Node
	if score == kpModels.PassingScore {
		satisfied, err := nodeSatisfied(db, userID, node)
		if err == nil && satisfied {
			var next kpModels.Node
			if err := db.Where("knowledge_path_id = ? AND order_index > ? AND is_deleted = ?",
				node.KnowledgePathID, node.Order, false).
				Order("order_index asc").First(&next).Error; err == nil {
				nextNode = &next
			}
		}

		kpController.EvaluatePathCompletion(db, userID, path)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":         attempt,
		"correct_answers": correctCount,
		"total_questions": len(questions),
		"next_node":       nextNode,
	})
}

// nodeSatisfied reports whether the node is completed and all its quizzes passed
func nodeSatisfied(db *gorm.DB, userID uint, node kpModels.Node) (bool, error) {
	var completion kpModels.UserNodeCompletion
	err := db.Where("user_id = ? AND node_id = ? AND is_completed = ? AND is_deleted = ?",
		userID, node.ID, true, false).First(&completion).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return kpController.NodeQuizzesPassed(db, userID, node.ID)
}

// GetMyAttempts lists the current user's attempts for a quiz
func GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var attempts []kpModels.QuizAttempt
	if err := database.Database.Db.Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quizID, false).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}
