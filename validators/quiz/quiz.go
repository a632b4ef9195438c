package quizValidator

import (
	"academia/middleware"
	kpModels "academia/models/knowledgepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// QuizID validates the :id route parameter and stores it as quizID
func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizIDStr := strings.TrimSpace(c.Params("id"))
		if quizIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz ID is required!", nil)
		}

		quizID, err := strconv.Atoi(quizIDStr)
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz ID!", nil)
		}

		c.Locals("quizID", quizID)
		return c.Next()
	}
}

// NodeID validates the :node_id route parameter and stores it as nodeID
func NodeID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		nodeIDStr := strings.TrimSpace(c.Params("node_id"))
		if nodeIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Node ID is required!", nil)
		}

		nodeID, err := strconv.Atoi(nodeIDStr)
		if err != nil || nodeID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid node ID!", nil)
		}

		c.Locals("nodeID", nodeID)
		return c.Next()
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title             string `json:"title"`
			Description       string `json:"description"`
			MaxAttemptsPerDay int    `json:"max_attempts_per_day"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.MaxAttemptsPerDay < 0 {
			errors["max_attempts_per_day"] = "Max attempts per day cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text         string `json:"text"`
			QuestionType string `json:"question_type"`
			Options      []struct {
				Text      string `json:"text"`
				IsCorrect bool   `json:"is_correct"`
			} `json:"options"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}

		if reqData.QuestionType == "" {
			reqData.QuestionType = kpModels.QuestionSingle
		} else if reqData.QuestionType != kpModels.QuestionSingle && reqData.QuestionType != kpModels.QuestionMultiple {
			errors["question_type"] = "Question type must be SINGLE or MULTIPLE!"
		}

		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		} else {
			correctCount := 0
			for _, opt := range reqData.Options {
				if strings.TrimSpace(opt.Text) == "" {
					errors["options"] = "Option text cannot be empty!"
					break
				}
				if opt.IsCorrect {
					correctCount++
				}
			}
			if correctCount == 0 {
				errors["options"] = "At least one option must be correct!"
			}
			if reqData.QuestionType == kpModels.QuestionSingle && correctCount > 1 {
				errors["options"] = "Single choice questions can have only one correct option!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
