// Package middleware provides request logging, authentication and rate
// limiting for the application.
package middleware

import (
	"strconv"
	"strings"

	"quill/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthCookieName is the cookie carrying the session token for browser clients.
const AuthCookieName = "auth_token"

// LoginPath is the entry point anonymous actors are sent to.
const LoginPath = "/auth/login/"

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// tokenFromRequest extracts the raw token from the Authorization header
// or, failing that, the auth cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(AuthCookieName)
}

// parseUserID validates the token and returns the user ID from its subject claim.
func parseUserID(tokenString string) (uint, bool) {
	if tokenString == "" || cfg == nil {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// CurrentUserID resolves the acting user without enforcing authentication.
// Read views use it to compute viewer-dependent fields like the
// profile "following" flag.
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid, true
	}
	return parseUserID(tokenFromRequest(c))
}

// LoginRequired guards write endpoints. Each request is classified
// independently; anonymous actors are redirected to the login entry
// point with the attempted URL preserved verbatim in `next`.
func LoginRequired(c *fiber.Ctx) error {
	userID, ok := parseUserID(tokenFromRequest(c))
	if !ok {
		return c.Redirect(LoginPath+"?next="+c.OriginalURL(), fiber.StatusFound)
	}

	c.Locals("userID", userID)
	return c.Next()
}
