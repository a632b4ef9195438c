package userControllers

import (
	"academia/database"
	"academia/middleware"
	"academia/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the current user's profile
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""

	var badgeCount int64
	database.Database.Db.Model(&models.UserBadge{}).
		Where("user_id = ? AND is_deleted = ?", userID, false).Count(&badgeCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user":        user,
		"badge_count": badgeCount,
	})
}

// UpdateProfile updates the current user's profile fields
func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	reqData := new(struct {
		Name         *string `json:"name"`
		Bio          *string `json:"bio"`
		ProfileImage *string `json:"profile_image"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name != nil {
		user.Name = *reqData.Name
	}
	if reqData.Bio != nil {
		user.Bio = *reqData.Bio
	}
	if reqData.ProfileImage != nil {
		user.ProfileImage = *reqData.ProfileImage
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

// GetPublicProfile returns another user's public profile with their badges
func GetPublicProfile(c *fiber.Ctx) error {
	profileUserID := c.Locals("profileUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", profileUserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var userBadges []models.UserBadge
	database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Find(&userBadges)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"user_id":      user.ID,
		"name":         user.Name,
		"bio":          user.Bio,
		"total_points": user.TotalPoints,
		"badges":       userBadges,
	})
}
