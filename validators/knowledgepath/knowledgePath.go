package kpValidator

import (
	"academia/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PathID validates the :id route parameter and stores it as pathID
func PathID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathIDStr := strings.TrimSpace(c.Params("id"))
		if pathIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Knowledge path ID is required!", nil)
		}

		pathID, err := strconv.Atoi(pathIDStr)
		if err != nil || pathID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid knowledge path ID!", nil)
		}

		c.Locals("pathID", pathID)
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

func CreateKnowledgePath() fiber.Handler {
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
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedKnowledgePath", reqData)
		return c.Next()
	}
}

func CreateNode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			MediaType   string `json:"media_type"`
			URL         string `json:"url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		validMediaTypes := map[string]bool{"TEXT": true, "VIDEO": true, "AUDIO": true, "IMAGE": true}
		if reqData.MediaType == "" {
			reqData.MediaType = "TEXT"
		} else if !validMediaTypes[reqData.MediaType] {
			errors["media_type"] = "Media type must be one of TEXT, VIDEO, AUDIO, IMAGE!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNode", reqData)
		return c.Next()
	}
}
