package middleware

import (
	"academia/config"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"

	AccessTokenTTL  = 1 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// GenerateAccessToken generates a short-lived JWT access token for the user
func GenerateAccessToken(userID uint, name, role, email string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"name":   name,
		"role":   role,
		"email":  email,
		"type":   "access",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// GenerateRefreshToken generates a long-lived JWT used only to rotate access tokens
func GenerateRefreshToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"type":   "refresh",
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(RefreshTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// SetAuthCookies stores the token pair in httpOnly cookies on the response
func SetAuthCookies(c *fiber.Ctx, accessToken, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessCookieName,
		Value:    accessToken,
		Expires:  time.Now().Add(AccessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	if refreshToken != "" {
		c.Cookie(&fiber.Cookie{
			Name:     RefreshCookieName,
			Value:    refreshToken,
			Expires:  time.Now().Add(RefreshTokenTTL),
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})
	}
}

// ClearAuthCookies expires both auth cookies
func ClearAuthCookies(c *fiber.Ctx) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
			Path:     "/",
		})
	}
}

// ParseToken validates a JWT and returns its claims
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return nil, fmt.Errorf("invalid token payload")
	}
	return claims, nil
}

// JWTMiddleware is a middleware to check for a valid JWT access token in the
// request. The token is read from the httpOnly access cookie; a Bearer
// Authorization header is accepted as a fallback for non-browser clients.
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies(AccessCookieName)

	if tokenString == "" {
		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader[len("Bearer "):]
		}
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Missing authentication token",
		})
	}

	claims, err := ParseToken(tokenString)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid or expired token",
		})
	}

	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  false,
			"message": "Invalid token type",
		})
	}

	// JWT claims are stored as float64, so cast it
	userID := claims["userId"].(float64)
	c.Locals("userId", uint(userID))

	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
