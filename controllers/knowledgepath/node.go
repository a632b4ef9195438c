package kpController

import (
	"academia/database"
	"academia/middleware"
	kpModels "academia/models/knowledgepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PreviousNode returns the node immediately preceding the given node in its
// path, or nil when the node is first in order.
func PreviousNode(db *gorm.DB, node kpModels.Node) (*kpModels.Node, error) {
	var prev kpModels.Node
	err := db.Where("knowledge_path_id = ? AND order_index < ? AND is_deleted = ?",
		node.KnowledgePathID, node.Order, false).
		Order("order_index desc").First(&prev).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &prev, nil
}

// NodeQuizzesPassed reports whether every quiz attached to the node has a
// passing attempt (score 100) by the user. Nodes without quizzes pass trivially.
func NodeQuizzesPassed(db *gorm.DB, userID uint, nodeID uint) (bool, error) {
	var quizzes []kpModels.Quiz
	if err := db.Where("node_id = ? AND is_deleted = ?", nodeID, false).Find(&quizzes).Error; err != nil {
		return false, err
	}

	for _, quiz := range quizzes {
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

// IsNodeAvailable reports whether the user may access the node. The path
// author sees everything; everyone else needs the preceding node completed
// and all of its quizzes passed.
func IsNodeAvailable(db *gorm.DB, userID uint, node kpModels.Node, path kpModels.KnowledgePath) (bool, error) {
	if path.AuthorID == userID {
		return true, nil
	}

	prev, err := PreviousNode(db, node)
	if err != nil {
		return false, err
	}
	if prev == nil {
		// First node is always open
		return true, nil
	}

	var completion kpModels.UserNodeCompletion
	err = db.Where("user_id = ? AND node_id = ? AND is_completed = ? AND is_deleted = ?",
		userID, prev.ID, true, false).First(&completion).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	return NodeQuizzesPassed(db, userID, prev.ID)
}

// MarkNodeAsCompleted upserts the completion row for (user, node). The
// completion timestamp is written once; repeat calls are no-ops.
func MarkNodeAsCompleted(db *gorm.DB, userID uint, node kpModels.Node) (kpModels.UserNodeCompletion, error) {
	var completion kpModels.UserNodeCompletion
	err := db.Where("user_id = ? AND knowledge_path_id = ? AND node_id = ?",
		userID, node.KnowledgePathID, node.ID).First(&completion).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return completion, err
		}
		now := time.Now()
		completion = kpModels.UserNodeCompletion{
			UserID:          userID,
			KnowledgePathID: node.KnowledgePathID,
			NodeID:          node.ID,
			IsCompleted:     true,
			CompletedAt:     &now,
		}
		return completion, db.Create(&completion).Error
	}

	if completion.IsCompleted {
		return completion, nil
	}

	now := time.Now()
	completion.IsCompleted = true
	completion.CompletedAt = &now
	return completion, db.Save(&completion).Error
}

func AddNode(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can add nodes!", nil)
	}

	reqData, ok := c.Locals("validatedNode").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		MediaType   string `json:"media_type"`
		URL         string `json:"url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Append at the end of the path
	var maxOrder int
	row := database.Database.Db.Model(&kpModels.Node{}).
		Where("knowledge_path_id = ? AND is_deleted = ?", path.ID, false).
		Select("COALESCE(MAX(order_index), 0)").Row()
	row.Scan(&maxOrder)

	node := kpModels.Node{
		KnowledgePathID: path.ID,
		Title:           reqData.Title,
		Description:     reqData.Description,
		MediaType:       reqData.MediaType,
		URL:             reqData.URL,
		Order:           maxOrder + 1,
	}

	if err := database.Database.Db.Create(&node).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add node!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Node added successfully!", node)
}

func UpdateNode(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can update nodes!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		MediaType   *string `json:"media_type"`
		URL         *string `json:"url"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		node.Title = *reqData.Title
	}
	if reqData.Description != nil {
		node.Description = *reqData.Description
	}
	if reqData.MediaType != nil {
		node.MediaType = *reqData.MediaType
	}
	if reqData.URL != nil {
		node.URL = *reqData.URL
	}

	if err := database.Database.Db.Save(&node).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update node!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Node updated successfully!", node)
}

func DeleteNode(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the author can delete nodes!", nil)
	}

	if err := database.Database.Db.Model(&node).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete node!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Node deleted successfully!", nil)
}

// MarkNodeComplete marks a node as completed for the current user
func MarkNodeComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	nodeID := c.Locals("nodeID").(int)

	db := database.Database.Db

	var node kpModels.Node
	if err := db.Where("id = ? AND is_deleted = ?", nodeID, false).First(&node).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Node not found!", nil)
	}

	var path kpModels.KnowledgePath
	if err := db.Where("id = ? AND is_deleted = ?", node.KnowledgePathID, false).First(&path).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Knowledge path not found!", nil)
	}

	available, err := IsNodeAvailable(db, userID, node, path)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check node availability!", nil)
	}
	if !available {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Node is not available yet. Complete the previous node first!", nil)
	}

	completion, err := MarkNodeAsCompleted(db, userID, node)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark node as completed!", nil)
	}

	// Path completion side effects fire once per user and path
	EvaluatePathCompletion(db, userID, path)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Node marked as completed!", completion)
}
