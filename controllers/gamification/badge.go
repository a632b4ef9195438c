package gamification

import (
	"academia/database"
	"academia/middleware"
	"academia/models"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AwardBadge grants the badge with the given code to the user at most once.
// Re-awarding is a silent no-op. On first award the badge's point value is
// snapshotted onto the UserBadge row and the user's running total is bumped
// with an atomic column expression so concurrent awards cannot lose updates.
func AwardBadge(db *gorm.DB, userID uint, badgeCode string, contextData map[string]interface{}) (*models.UserBadge, bool) {
	var badge models.Badge
	if err := db.Where("code = ? AND is_deleted = ?", badgeCode, false).First(&badge).Error; err != nil {
		log.Printf("[GAMIFICATION] Badge %q not found: %v", badgeCode, err)
		return nil, false
	}

	var existing models.UserBadge
	if err := db.Where("user_id = ? AND badge_id = ? AND is_deleted = ?", userID, badge.ID, false).
		First(&existing).Error; err == nil {
		return &existing, false
	}

	contextJSON, _ := json.Marshal(contextData)

	userBadge := models.UserBadge{
		UserID:       userID,
		BadgeID:      badge.ID,
		PointsEarned: badge.PointsValue,
		ContextData:  datatypes.JSON(contextJSON),
	}
	if err := db.Create(&userBadge).Error; err != nil {
		// Unique index on (user, badge) absorbs concurrent double-awards
		log.Printf("[GAMIFICATION] Failed to award badge %q to user %d: %v", badgeCode, userID, err)
		return nil, false
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", badge.PointsValue)).Error; err != nil {
		log.Printf("[GAMIFICATION] Failed to update points for user %d: %v", userID, err)
	}

	return &userBadge, true
}

// GetBadges lists all available badges
func GetBadges(c *fiber.Ctx) error {
	var badges []models.Badge
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("points_value desc").Find(&badges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", fiber.Map{
		"badges": badges,
		"total":  len(badges),
	})
}

// GetMyBadges lists the current user's earned badges with point totals
func GetMyBadges(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type UserBadgeWithDetails struct {
		models.UserBadge
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var userBadges []models.UserBadge
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&userBadges).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	result := make([]UserBadgeWithDetails, len(userBadges))
	for i, ub := range userBadges {
		var badge models.Badge
		database.Database.Db.Where("id = ?", ub.BadgeID).First(&badge)
		result[i] = UserBadgeWithDetails{
			UserBadge:   ub,
			Code:        badge.Code,
			Name:        badge.Name,
			Description: badge.Description,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", fiber.Map{
		"badges":       result,
		"total_points": user.TotalPoints,
	})
}

// GetLeaderboard returns the top users by accumulated points
func GetLeaderboard(c *fiber.Ctx) error {
	type LeaderboardEntry struct {
		UserID      uint   `json:"user_id"`
		Name        string `json:"name"`
		TotalPoints uint   `json:"total_points"`
	}

	var entries []LeaderboardEntry
	if err := database.Database.Db.Model(&models.User{}).
		Select("id as user_id, name, total_points").
		Where("is_deleted = ? AND total_points > 0", false).
		Order("total_points desc").Limit(20).
		Scan(&entries).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch leaderboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", fiber.Map{
		"leaderboard": entries,
	})
}
