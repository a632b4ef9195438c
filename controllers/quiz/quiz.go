package quizController

import (
	"academia/database"
	"academia/middleware"
	kpModels "academia/models/knowledgepath"

	"github.com/gofiber/fiber/v2"
)

// pathForQuiz resolves the knowledge path owning a quiz through its node
func pathForQuiz(quiz kpModels.Quiz) (kpModels.Node, kpModels.KnowledgePath, error) {
	var node kpModels.Node
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quiz.NodeID, false).First(&node).Error; err != nil {
		return node, kpModels.KnowledgePath{}, err
	}
	var path kpModels.KnowledgePath
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", node.KnowledgePathID, false).First(&path).Error
	return node, path, err
}

// CreateQuiz attaches a quiz to a node (path author only)
func CreateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	nodeID := c.Locals("nodeID").(int)

	var node kpModels.Node
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", nodeID, false).First(&node).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Node not found!", nil)
	}

	var path kpModels.KnowledgePath
	if err := database.Database.Db.Where("id = ?", node.KnowledgePathID).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	if path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the path author can add quizzes!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title             string `json:"title"`
		Description       string `json:"description"`
		MaxAttemptsPerDay int    `json:"max_attempts_per_day"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quiz := kpModels.Quiz{
		NodeID:            node.ID,
		Title:             reqData.Title,
		Description:       reqData.Description,
		MaxAttemptsPerDay: reqData.MaxAttemptsPerDay,
	}
	if quiz.MaxAttemptsPerDay <= 0 {
		quiz.MaxAttemptsPerDay = 3
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// AddQuestion adds a question with its options to a quiz (path author only)
func AddQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz kpModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, path, err := pathForQuiz(quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}
	if path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the path author can add questions!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text         string `json:"text"`
		QuestionType string `json:"question_type"`
		Options      []struct {
			Text      string `json:"text"`
			IsCorrect bool   `json:"is_correct"`
		} `json:"options"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var questionCount int64
	database.Database.Db.Model(&kpModels.Question{}).
		Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Count(&questionCount)

	question := kpModels.Question{
		QuizID:       quiz.ID,
		Text:         reqData.Text,
		QuestionType: reqData.QuestionType,
		OrderIndex:   int(questionCount),
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	options := make([]kpModels.Option, len(reqData.Options))
	for i, opt := range reqData.Options {
		options[i] = kpModels.Option{
			QuestionID: question.ID,
			Text:       opt.Text,
			IsCorrect:  opt.IsCorrect,
			OrderIndex: i,
		}
	}
	if err := tx.Create(&options).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create options!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", fiber.Map{
		"question": question,
		"options":  options,
	})
}

// GetQuiz returns a quiz with its questions and options. Correct answers are
// only exposed to the path author.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz kpModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, path, err := pathForQuiz(quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}
	isAuthor := path.AuthorID == userID

	var questions []kpModels.Question
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions)

	type OptionView struct {
		ID        uint   `json:"id"`
		Text      string `json:"text"`
		IsCorrect *bool  `json:"is_correct,omitempty"`
	}
	type QuestionView struct {
		ID           uint         `json:"id"`
		Text         string       `json:"text"`
		QuestionType string       `json:"question_type"`
		Options      []OptionView `json:"options"`
	}

	questionViews := make([]QuestionView, len(questions))
	for i, q := range questions {
		var options []kpModels.Option
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("order_index asc").Find(&options)

		optionViews := make([]OptionView, len(options))
		for j, opt := range options {
			optionViews[j] = OptionView{ID: opt.ID, Text: opt.Text}
			if isAuthor {
				correct := opt.IsCorrect
				optionViews[j].IsCorrect = &correct
			}
		}
		questionViews[i] = QuestionView{
			ID:           q.ID,
			Text:         q.Text,
			QuestionType: q.QuestionType,
			Options:      optionViews,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": questionViews,
	})
}

// DeleteQuiz soft-deletes a quiz (path author only)
func DeleteQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(int)

	var quiz kpModels.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	_, path, err := pathForQuiz(quiz)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}
	if path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the path author can delete quizzes!", nil)
	}

	if err := database.Database.Db.Model(&quiz).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}
