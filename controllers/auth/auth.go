package authController

import (
	"academia/config"
	"academia/database"
	"academia/middleware"
	"academia/models"
	"academia/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Signup(c *fiber.Ctx) error {
	var reqData models.User

	// Parse Request Body
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	// Prepare User Struct for DB Entry
	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Bio:      reqData.Bio,
		Role:     "USER",
		Password: string(hashedPassword),
	}

	// Create User
	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	if err := SeedPermissions(db, newUser.Role, newUser.ID); err != nil {
		log.Printf("Error seeding permissions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign permissions!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.Name)

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	if user.IsBlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account is blocked. Contact support!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		now := time.Now()
		db.Model(&user).Updates(map[string]interface{}{
			"failed_login_attempts": gorm.Expr("failed_login_attempts + 1"),
			"last_failed_login":     &now,
		})
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}
	refreshToken, err := middleware.GenerateRefreshToken(user.ID)
	if err != nil {
		log.Printf("Error generating refresh token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	middleware.SetAuthCookies(c, accessToken, refreshToken)

	db.Model(&user).Updates(map[string]interface{}{
		"last_login":            time.Now(),
		"failed_login_attempts": 0,
	})

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged in successfully!", user)
}

// RefreshToken rotates the access token using the refresh cookie
func RefreshToken(c *fiber.Ctx) error {
	refreshToken := c.Cookies(middleware.RefreshCookieName)
	if refreshToken == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Missing refresh token!", nil)
	}

	claims, err := middleware.ParseToken(refreshToken)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired refresh token!", nil)
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token type!", nil)
	}

	userID := uint(claims["userId"].(float64))

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating access token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to refresh token!", nil)
	}

	// Only the access cookie is rotated here
	middleware.SetAuthCookies(c, accessToken, "")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed!", nil)
}

func Logout(c *fiber.Ctx) error {
	middleware.ClearAuthCookies(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully!", nil)
}

// SeedPermissions seeds default permissions for a given role and user ID
func SeedPermissions(db *gorm.DB, role string, userID uint) error {
	permissions := getDefaultPermissions(role)

	var permissionRecords []models.Permission
	for _, p := range permissions {
		permissionRecords = append(permissionRecords, models.Permission{
			UserID:     userID,
			Role:       role,
			Permission: p,
		})
	}

	if err := db.Create(&permissionRecords).Error; err != nil {
		return err
	}
	return nil
}

func getDefaultPermissions(role string) []string {
	base := []string{
		"create_content",
		"create_knowledge_path",
		"create_event",
		"send_message",
	}
	if role == "ADMIN" {
		base = append(base, "manage_badges", "manage_users")
	}
	return base
}
