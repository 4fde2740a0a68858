package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	// Logout revokes the token id until the token would have expired anyway.
	// Reports false when no blacklist is configured.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GenerateJWT(user *models.User) (string, error)

	// Google OAuth
	LoginOrRegisterWithGoogle(ctx context.Context, googleUser *dto.GoogleUserInfo) (string, *models.User, error)
}
