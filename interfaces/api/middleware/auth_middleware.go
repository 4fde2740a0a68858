package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"tasklist-api/domain/ports"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

// Protected middleware validates JWT tokens and sets user context
func Protected(jwtSecret string, blacklist ports.TokenBlacklistPort) fiber.Handler {
	return authenticate(jwtSecret, blacklist, false)
}

// ProtectedWebSocket เหมือน Protected แต่รับ token จาก ?token= ได้ด้วย
// เพราะ browser ใส่ Authorization header ตอน upgrade ไม่ได้
func ProtectedWebSocket(jwtSecret string, blacklist ports.TokenBlacklistPort) fiber.Handler {
	return authenticate(jwtSecret, blacklist, true)
}

func authenticate(jwtSecret string, blacklist ports.TokenBlacklistPort, allowQueryToken bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		token := ""
		if authHeader := c.Get("Authorization"); authHeader != "" {
			token = utils.ExtractTokenFromHeader(authHeader)
			if token == "" {
				return utils.UnauthorizedResponse(c, "Invalid authorization header format")
			}
		} else if allowQueryToken {
			token = c.Query("token")
		}

		if token == "" {
			return utils.UnauthorizedResponse(c, "Missing authorization header")
		}

		userCtx, err := utils.ValidateToken(token, jwtSecret)
		if err == nil {
			err = checkRevoked(ctx, blacklist, userCtx)
		}
		if err != nil {
			logger.WarnContext(ctx, "Token rejected", "error", err)
			return utils.UnauthorizedResponse(c, tokenErrorMessage(err))
		}

		c.Locals("user", userCtx)
		c.SetUserContext(logger.ContextWithUserID(ctx, userCtx.ID))

		return c.Next()
	}
}

// checkRevoked คืน ErrRevokedToken ถ้า token ถูก logout ไปแล้ว
func checkRevoked(ctx context.Context, blacklist ports.TokenBlacklistPort, userCtx *utils.UserContext) error {
	if blacklist == nil || userCtx.TokenID == "" {
		return nil
	}

	revoked, err := blacklist.IsRevoked(ctx, userCtx.TokenID)
	if err != nil {
		// redis ล่มไม่ควรทำให้ทุก request 401
		logger.ErrorContext(ctx, "Token blacklist lookup failed", "error", err)
		return nil
	}
	if revoked {
		return utils.ErrRevokedToken
	}
	return nil
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, utils.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, utils.ErrRevokedToken):
		return "Token has been revoked"
	case errors.Is(err, utils.ErrMissingToken):
		return "Missing token"
	default:
		return "Invalid token"
	}
}

// RequireRole middleware checks if user has specific role
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := utils.GetUserFromContext(c)
		if err != nil {
			return utils.UnauthorizedResponse(c, "User not authenticated")
		}

		if user.Role != role {
			return utils.ForbiddenResponse(c, "Insufficient permissions")
		}

		return c.Next()
	}
}
