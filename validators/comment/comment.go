package commentValidator

import (
	"academia/middleware"
	"academia/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CommentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		commentID, err := strconv.Atoi(c.Params("id"))
		if err != nil || commentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid comment ID!", nil)
		}

		c.Locals("commentID", commentID)
		return c.Next()
	}
}

func CreateComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SubjectKind string `json:"subject_kind"`
			SubjectID   uint   `json:"subject_id"`
			ParentID    *uint  `json:"parent_id"`
			Body        string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		validKinds := map[string]bool{
			models.SubjectContent:       true,
			models.SubjectKnowledgePath: true,
			models.SubjectEvent:         true,
		}
		if !validKinds[reqData.SubjectKind] {
			errors["subject_kind"] = "Subject kind must be one of CONTENT, KNOWLEDGE_PATH, EVENT!"
		}

		if reqData.SubjectID == 0 {
			errors["subject_id"] = "Subject ID is required!"
		}

		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Comment body is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}
