package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.CreateUserRequest
	if fields := utils.DecodeAndValidate(c.Body(), &req); fields != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", fields)
		return utils.ValidationErrorResponse(c, fields)
	}

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) || errors.Is(err, services.ErrUsernameTaken) {
			return utils.ConflictResponse(c, err.Error())
		}
		return respondServiceError(c, err, "")
	}

	return utils.CreatedResponse(c, dto.UserToUserResponse(user))
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if fields := utils.DecodeAndValidate(c.Body(), &req); fields != nil {
		logger.WarnContext(ctx, "Validation failed", "errors", fields)
		return utils.ValidationErrorResponse(c, fields)
	}

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrAccountDisabled) {
			return utils.UnauthorizedResponse(c, "Invalid credentials")
		}
		return respondServiceError(c, err, "")
	}

	response := &dto.LoginResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	}
	if expiresAt, err := utils.TokenExpiry(token); err == nil {
		response.ExpiresAt = expiresAt.Unix()
	}

	return utils.SuccessResponse(c, response)
}

// Logout revoke token ปัจจุบัน (jti) จนกว่าจะหมดอายุ
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	revoked, err := h.userService.Logout(c.UserContext(), user.TokenID, user.ExpiresAt)
	if err != nil {
		return respondServiceError(c, err, "")
	}

	return utils.SuccessResponse(c, &dto.LogoutResponse{Revoked: revoked})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	// token ที่ออกด้วย todoctl อาจมี user id ที่ไม่ใช่ uuid
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		logger.WarnContext(ctx, "Profile requested for non-account user", "user_id", user.ID)
		return utils.NotFoundResponse(c, "User not found")
	}

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err, "User not found")
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(profile))
}
