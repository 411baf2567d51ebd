package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"vfxhub_backend/internal/auth"
	"vfxhub_backend/internal/email"
	"vfxhub_backend/internal/logger"
	"vfxhub_backend/internal/models"
	"vfxhub_backend/internal/repositories"
	"vfxhub_backend/internal/services/dto"
	"vfxhub_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error)
	Logout(userID string) error
}

type authService struct {
	db          *gorm.DB
	userRepo    repositories.UserRepository
	tokenRepo   repositories.RefreshTokenRepository
	profileRepo repositories.ProfileRepository
	jwtManager  *auth.JWTManager
	emails      email.Provider
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
	profileRepo repositories.ProfileRepository,
	jwtManager *auth.JWTManager,
	emails email.Provider,
) AuthService {
	if emails == nil {
		emails = email.NoopProvider{}
	}
	return &authService{
		db:          db,
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		profileRepo: profileRepo,
		jwtManager:  jwtManager,
		emails:      emails,
	}
}

// Register creates the user and their profile in one transaction.
func (s *authService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewUserRepository(tx).Create(user); err != nil {
			return err
		}
		profile := &models.Profile{
			UserID:      user.ID,
			DisplayName: req.DisplayName,
			Available:   true,
		}
		return repositories.NewProfileRepository(tx).Create(profile)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	go s.sendWelcomeEmail(user.Email, req.DisplayName)

	return s.issueTokens(user, req.DisplayName)
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.WithError(err).Warn("failed to record last login", "user_id", user.ID)
	}

	return s.issueTokens(user, s.displayName(user.ID))
}

// Refresh rotates the refresh token: the presented token is revoked
// and a fresh pair is issued.
func (s *authService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.tokenRepo.FindByHash(tokenHash)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if !stored.IsValid() {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.tokenRepo.Revoke(tokenHash); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user, s.displayName(user.ID))
}

func (s *authService) Logout(userID string) error {
	if err := s.tokenRepo.RevokeAllForUser(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) issueTokens(user *models.User, displayName string) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.tokenRepo.Create(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.jwtManager.TTL()),
		User: dto.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			Role:        user.Role,
			DisplayName: displayName,
			CreatedAt:   user.CreatedAt,
			LastLoginAt: user.LastLoginAt,
		},
	}, nil
}

func (s *authService) displayName(userID string) string {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return ""
	}
	return profile.DisplayName
}

func (s *authService) sendWelcomeEmail(to, name string) {
	msg := &email.EmailMessage{
		To:      []string{to},
		Subject: "Welcome to VFXHub",
		Body:    "Hi " + name + ",\n\nYour account is ready. Set up your reel and start browsing open positions.\n",
	}
	if err := s.emails.Send(msg); err != nil {
		logger.WithError(err).Warn("welcome email failed", "to", to)
	}
}

func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Only the hash of a refresh token is stored.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
