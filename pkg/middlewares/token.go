package middlewares

import (
	"strings"

	t_token "event_management_service/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// HeaderToken token in Authorization header
	HeaderToken = "Authorization"

	// QueryToken token in query name, used by the websocket upgrade
	QueryToken = "auth"

	// CookieToken token in cookie name
	CookieToken = "auth_token"

	// TokenUserID get user id from token, set c.Locals name
	TokenUserID = "UserID"
	// TokenRole get role from token, set c.Locals name
	TokenRole = "role"
	// TokenRaw raw token string, set c.Locals name
	TokenRaw = "RawToken"
)

// JWTMiddleware validates the JWT from header, query or cookie
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Get(HeaderToken)
		tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")

		if tokenStr == "" {
			tokenStr = c.Query(QueryToken)
		}

		if tokenStr == "" {
			tokenStr = c.Cookies(CookieToken)
		}

		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		token, err := jwt.ParseWithClaims(tokenStr, &t_token.Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return t_token.JWTSecret, nil
		})

		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		if claims, ok := token.Claims.(*t_token.Claims); ok && token.Valid {
			if !claims.IsAuthToken() {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token purpose",
				})
			}
			c.Locals(TokenUserID, claims.UserID)
			c.Locals(TokenRole, claims.Role)
			c.Locals(TokenRaw, tokenStr)
		} else {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		return c.Next()
	}
}

// EventManagerOnly gate routes on the event manager role, the usecases
// below this layer never inspect roles themselves
func EventManagerOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(TokenRole).(string)
		if !ok || role != string(t_token.RoleEventManager) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied",
			})
		}
		return c.Next()
	}
}
