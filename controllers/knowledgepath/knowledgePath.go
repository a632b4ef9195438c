package kpController

import (
	"academia/database"
	"academia/middleware"
	"academia/models"
	kpModels "academia/models/knowledgepath"

	"github.com/gofiber/fiber/v2"
)

func CreateKnowledgePath(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedKnowledgePath").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	path := kpModels.KnowledgePath{
		AuthorID:    userID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create knowledge path!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Knowledge path created successfully!", path)
}

func UpdateKnowledgePath(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathID := c.Locals("pathID").(int)

	var path kpModels.KnowledgePath
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", pathID, false).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	if path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can update this knowledge path!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsPublished *bool   `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		path.Title = *reqData.Title
	}
	if reqData.Description != nil {
		path.Description = *reqData.Description
	}
	if reqData.IsPublished != nil {
		path.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update knowledge path!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Knowledge path updated successfully!", path)
}

func DeleteKnowledgePath(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathID := c.Locals("pathID").(int)

	var path kpModels.KnowledgePath
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", pathID, false).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	if path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can delete this knowledge path!", nil)
	}

	if err := database.Database.Db.Model(&path).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete knowledge path!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Knowledge path deleted successfully!", nil)
}

func GetKnowledgePaths(c *fiber.Ctx) error {
	var paths []kpModels.KnowledgePath
	if err := database.Database.Db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at desc").Find(&paths).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch knowledge paths!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Knowledge paths fetched successfully!", fiber.Map{
		"knowledge_paths": paths,
		"total":           len(paths),
	})
}

func GetKnowledgePathDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	pathID := c.Locals("pathID").(int)

	var path kpModels.KnowledgePath
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", pathID, false).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	// Unpublished paths are visible to their author only
	if !path.IsPublished && path.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	var nodes []kpModels.Node
	database.Database.Db.Where("knowledge_path_id = ? AND is_deleted = ?", path.ID, false).
		Order("order_index asc").Find(&nodes)

	var author models.User
	database.Database.Db.Where("id = ?", path.AuthorID).First(&author)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Knowledge path fetched successfully!", fiber.Map{
		"knowledge_path": path,
		"nodes":          nodes,
		"author_name":    author.Name,
	})
}

// GetMyKnowledgePaths lists paths authored by the current user, drafts included
func GetMyKnowledgePaths(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var paths []kpModels.KnowledgePath
	if err := database.Database.Db.Where("author_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&paths).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch knowledge paths!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Knowledge paths fetched successfully!", fiber.Map{
		"knowledge_paths": paths,
		"total":           len(paths),
	})
}
