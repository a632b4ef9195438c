package voteValidator

import (
	"academia/middleware"
	"academia/models"

	"github.com/gofiber/fiber/v2"
)

func CastVote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SubjectKind string `json:"subject_kind"`
			SubjectID   uint   `json:"subject_id"`
			Value       int    `json:"value"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		validKinds := map[string]bool{
			models.SubjectContent:       true,
			models.SubjectComment:       true,
			models.SubjectKnowledgePath: true,
			models.SubjectEvent:         true,
		}
		if !validKinds[reqData.SubjectKind] {
			errors["subject_kind"] = "Subject kind must be one of CONTENT, COMMENT, KNOWLEDGE_PATH, EVENT!"
		}

		if reqData.SubjectID == 0 {
			errors["subject_id"] = "Subject ID is required!"
		}

		if reqData.Value != 1 && reqData.Value != -1 {
			errors["value"] = "Value must be 1 or -1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVote", reqData)
		return c.Next()
	}
}
