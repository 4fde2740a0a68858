package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tasklist-api/domain/dto"
	"tasklist-api/domain/models"
	"tasklist-api/domain/ports"
	"tasklist-api/domain/repositories"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/utils"
)

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	blacklist ports.TokenBlacklistPort
	jwtSecret string
	jwtTTL    time.Duration
}

func NewUserService(userRepo repositories.UserRepository, blacklist ports.TokenBlacklistPort, jwtSecret string, jwtTTL time.Duration) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		blacklist: blacklist,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, _ := s.userRepo.GetByEmail(ctx, email); existing != nil {
		logger.WarnContext(ctx, "Email already exists", "email", email)
		return nil, services.ErrEmailTaken
	}
	if existing, _ := s.userRepo.GetByUsername(ctx, req.Username); existing != nil {
		logger.WarnContext(ctx, "Username already exists", "username", req.Username)
		return nil, services.ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  req.Username,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.InfoContext(ctx, "User created successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	if err := validateRequest(req); err != nil {
		return "", nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.WarnContext(ctx, "Login failed - email not found", "email", email)
		return "", nil, services.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed - account disabled", "user_id", user.ID)
		return "", nil, services.ErrAccountDisabled
	}

	// Google users ที่ไม่มี password login ด้วย password ไม่ได้
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return "", nil, services.ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, "User logged in successfully", "user_id", user.ID)
	return token, user, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time) (bool, error) {
	if tokenID == "" {
		return false, services.ErrUnauthenticated
	}
	if s.blacklist == nil {
		logger.WarnContext(ctx, "Token blacklist not configured, logout is client-side only")
		return false, nil
	}

	// token หมดอายุไปแล้ว ไม่ต้องเก็บ
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return true, nil
	}

	if err := s.blacklist.Revoke(ctx, tokenID, ttl); err != nil {
		logger.ErrorContext(ctx, "Failed to revoke token", "error", err)
		return false, fmt.Errorf("revoke token: %w", err)
	}

	logger.InfoContext(ctx, "Token revoked", "ttl", ttl.Round(time.Second).String())
	return true, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, services.ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

func (s *UserServiceImpl) GenerateJWT(user *models.User) (string, error) {
	token, _, err := utils.GenerateToken(utils.TokenSubject{
		UserID:    user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, s.jwtSecret, s.jwtTTL)
	return token, err
}

// LoginOrRegisterWithGoogle สร้างหรือ login user จาก Google
func (s *UserServiceImpl) LoginOrRegisterWithGoogle(ctx context.Context, googleUser *dto.GoogleUserInfo) (string, *models.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, googleUser.ID)
	if err == nil && user != nil {
		if !user.IsActive {
			logger.WarnContext(ctx, "Google login failed - account disabled", "google_id", googleUser.ID)
			return "", nil, services.ErrAccountDisabled
		}
		return s.issueFor(ctx, user, "Google login successful")
	}

	// email ที่ Google ยังไม่ยืนยัน ใช้ผูกหรือสร้าง account ไม่ได้
	if !googleUser.VerifiedEmail {
		logger.WarnContext(ctx, "Google login refused - email not verified", "google_id", googleUser.ID)
		return "", nil, services.ErrEmailNotVerified
	}

	email := strings.ToLower(strings.TrimSpace(googleUser.Email))

	// มี email อยู่แล้วแต่ยังไม่ผูก Google ให้ผูกเข้ากับ account เดิม
	if existing, _ := s.userRepo.GetByEmail(ctx, email); existing != nil {
		if !existing.IsActive {
			logger.WarnContext(ctx, "Google link refused - account disabled", "user_id", existing.ID)
			return "", nil, services.ErrAccountDisabled
		}

		existing.GoogleID = &googleUser.ID
		if existing.Avatar == "" {
			existing.Avatar = googleUser.Picture
		}
		existing.UpdatedAt = time.Now()

		if err := s.userRepo.Update(ctx, existing); err != nil {
			logger.ErrorContext(ctx, "Failed to link Google account", "user_id", existing.ID, "error", err)
			return "", nil, fmt.Errorf("link google account: %w", err)
		}
		return s.issueFor(ctx, existing, "Google account linked")
	}

	now := time.Now()
	user = &models.User{
		ID:        uuid.New(),
		GoogleID:  &googleUser.ID,
		Email:     email,
		Username:  generateUniqueUsername(email),
		FirstName: googleUser.GivenName,
		LastName:  googleUser.FamilyName,
		Avatar:    googleUser.Picture,
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create Google user", "google_id", googleUser.ID, "error", err)
		return "", nil, fmt.Errorf("create google user: %w", err)
	}

	return s.issueFor(ctx, user, "Google user registered")
}

func (s *UserServiceImpl) issueFor(ctx context.Context, user *models.User, message string) (string, *models.User, error) {
	token, err := s.GenerateJWT(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	logger.InfoContext(ctx, message, "user_id", user.ID)
	return token, user, nil
}

// generateUniqueUsername สร้าง username จาก email + random suffix
func generateUniqueUsername(email string) string {
	base := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		base = email[:at]
	}
	return base + "_" + utils.GenerateRandomString(6)
}
