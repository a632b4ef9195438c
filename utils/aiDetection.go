package utils

import (
	"academia/config"
	"academia/database"
	"academia/models"
	"encoding/json"
	"log"

	"github.com/go-resty/resty/v2"
)

// RunAiDetection scores published text content against the AI-detection API
// and stores the result on the content row. Called in a goroutine on publish;
// failures are logged and the content stays published with a nil score.
func RunAiDetection(contentID uint) {
	db := database.Database.Db

	var content models.Content
	if err := db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		log.Printf("[AI-DETECTION] Content %d not found: %v", contentID, err)
		return
	}

	if content.MediaType != models.MediaTypeText || content.Text == "" {
		return
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("x-api-key", config.AppConfig.AiDetectionApiKey).
		SetBody(map[string]interface{}{
			"document": content.Text,
		}).
		Post(config.AppConfig.AiDetectionApiUrl)
	if err != nil {
		log.Printf("[AI-DETECTION] Request failed for content %d: %v", contentID, err)
		return
	}
	if resp.StatusCode() != 200 {
		log.Printf("[AI-DETECTION] API returned %d for content %d: %s", resp.StatusCode(), contentID, resp.String())
		return
	}

	var result struct {
		Documents []struct {
			CompletelyGeneratedProb float64 `json:"completely_generated_prob"`
		} `json:"documents"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		log.Printf("[AI-DETECTION] Failed to parse response for content %d: %v", contentID, err)
		return
	}
	if len(result.Documents) == 0 {
		log.Printf("[AI-DETECTION] Empty result for content %d", contentID)
		return
	}

	score := result.Documents[0].CompletelyGeneratedProb
	if err := db.Model(&models.Content{}).Where("id = ?", contentID).
		Update("ai_detection_score", score).Error; err != nil {
		log.Printf("[AI-DETECTION] Failed to store score for content %d: %v", contentID, err)
		return
	}

	log.Printf("[AI-DETECTION] Content %d scored %.4f", contentID, score)
}
