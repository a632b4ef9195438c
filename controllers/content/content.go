package contentController

import (
	"academia/controllers/gamification"
	"academia/database"
	"academia/middleware"
	"academia/models"
	"academia/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedContent").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		MediaType   string `json:"media_type"`
		Text        string `json:"text"`
		URL         string `json:"url"`
		TopicIDs    []uint `json:"topic_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content := models.Content{
		AuthorID:    userID,
		Title:       reqData.Title,
		Description: reqData.Description,
		MediaType:   reqData.MediaType,
		Text:        reqData.Text,
		URL:         reqData.URL,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&content).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	for _, topicID := range reqData.TopicIDs {
		var topic models.Topic
		if err := tx.Where("id = ? AND is_deleted = ?", topicID, false).First(&topic).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Topic not found!", nil)
		}
		if err := tx.Create(&models.ContentTopic{ContentID: content.ID, TopicID: topicID}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to tag content!", nil)
		}
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// PublishContent publishes a content item. Text content is screened by the
// AI-detection API in the background; first publish earns the creator badge.
func PublishContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	db := database.Database.Db

	var content models.Content
	if err := db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if content.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can publish this content!", nil)
	}

	if err := db.Model(&content).Update("is_published", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish content!", nil)
	}

	go utils.RunAiDetection(content.ID)

	gamification.AwardBadge(db, userID, models.BadgeContentCreator, map[string]interface{}{
		"content_id": content.ID,
		"title":      content.Title,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content published successfully!", content)
}

func UpdateContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	var content models.Content
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if content.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can update this content!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Text        *string `json:"text"`
		URL         *string `json:"url"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		content.Title = *reqData.Title
	}
	if reqData.Description != nil {
		content.Description = *reqData.Description
	}
	if reqData.Text != nil {
		content.Text = *reqData.Text
		content.AIDetectionScore = nil // stale after edit
	}
	if reqData.URL != nil {
		content.URL = *reqData.URL
	}

	if err := database.Database.Db.Save(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", content)
}

func DeleteContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	var content models.Content
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if content.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can delete this content!", nil)
	}

	if err := database.Database.Db.Model(&content).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

func GetContentList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	query := database.Database.Db.Model(&models.Content{}).
		Where("is_published = ? AND is_deleted = ?", true, false)

	// Optional topic filter
	if topicID := c.QueryInt("topic_id"); topicID > 0 {
		var contentIDs []uint
		database.Database.Db.Model(&models.ContentTopic{}).
			Where("topic_id = ? AND is_deleted = ?", topicID, false).
			Pluck("content_id", &contentIDs)
		query = query.Where("id IN ?", contentIDs)
	}

	var total int64
	query.Count(&total)

	var contents []models.Content
	if err := query.Order("created_at desc").
		Offset(utils.Paginate(page, limit)).Limit(limit).
		Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"content": contents,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func GetContentDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	var content models.Content
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if !content.IsPublished && content.AuthorID != userID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	var topicIDs []uint
	database.Database.Db.Model(&models.ContentTopic{}).
		Where("content_id = ? AND is_deleted = ?", content.ID, false).
		Pluck("topic_id", &topicIDs)

	var topics []models.Topic
	if len(topicIDs) > 0 {
		database.Database.Db.Where("id IN ? AND is_deleted = ?", topicIDs, false).Find(&topics)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"content": content,
		"topics":  topics,
	})
}

// CreateTopic adds a browsable topic. Topics are shared vocabulary, so
// duplicate titles are rejected.
func CreateTopic(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTopic").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.Topic
	if err := database.Database.Db.Where("title = ? AND is_deleted = ?", reqData.Title, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A topic with this title already exists!", nil)
	}

	topic := models.Topic{Title: reqData.Title, Description: reqData.Description}
	if err := database.Database.Db.Create(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Topic created successfully!", topic)
}

func GetTopics(c *fiber.Ctx) error {
	var topics []models.Topic
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("title asc").Find(&topics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch topics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topics fetched successfully!", fiber.Map{
		"topics": topics,
		"total":  len(topics),
	})
}
