package contentValidator

import (
	"academia/middleware"
	"academia/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ContentID validates the :id route parameter and stores it as contentID
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("id"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}

func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			MediaType   string `json:"media_type"`
			Text        string `json:"text"`
			URL         string `json:"url"`
			TopicIDs    []uint `json:"topic_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		validMediaTypes := map[string]bool{
			models.MediaTypeText:  true,
			models.MediaTypeVideo: true,
			models.MediaTypeAudio: true,
			models.MediaTypeImage: true,
		}
		if reqData.MediaType == "" {
			reqData.MediaType = models.MediaTypeText
		} else if !validMediaTypes[reqData.MediaType] {
			errors["media_type"] = "Media type must be one of TEXT, VIDEO, AUDIO, IMAGE!"
		}

		if reqData.MediaType == models.MediaTypeText {
			if strings.TrimSpace(reqData.Text) == "" {
				errors["text"] = "Text is required for text content!"
			}
		} else if strings.TrimSpace(reqData.URL) == "" {
			errors["url"] = "URL is required for media content!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

func CreateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 2 {
			errors["title"] = "Title must be at least 2 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTopic", reqData)
		return c.Next()
	}
}
