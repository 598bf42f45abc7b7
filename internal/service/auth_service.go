package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
	"github.com/yourusername/predictor-api/pkg/auth"
)

// verificationTokenTTL bounds how long an emailed verification link works.
const verificationTokenTTL = 24 * time.Hour

// resendCooldown is the minimum gap between verification emails per user.
const resendCooldown = time.Minute

// AuthService handles registration, login and email verification.
type AuthService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	cacheRepo        repository.CacheRepository
	jwtService       *auth.JWTService
	emailService     EmailService

	// verifyURL is the frontend page the verification link points at.
	verifyURL string
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	cacheRepo repository.CacheRepository,
	jwtService *auth.JWTService,
	emailService EmailService,
	verifyURL string,
) (*AuthService, error) {
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required")
	}
	if emailService == nil {
		emailService = &NoopEmailService{}
	}
	return &AuthService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cacheRepo:        cacheRepo,
		jwtService:       jwtService,
		emailService:     emailService,
		verifyURL:        verifyURL,
	}, nil
}

func verificationTokenKey(token string) string {
	return "verify:" + token
}

func resendCooldownKey(userID uint) string {
	return fmt.Sprintf("verify:cooldown:%d", userID)
}

// Register creates a password-auth user and emails a verification link.
// Email and username uniqueness is enforced case-insensitively.
func (s *AuthService) Register(username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if len(username) < 3 || len(username) > 30 {
		return nil, fmt.Errorf("%w: username must be 3-30 characters", apperrors.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	user := &entity.User{
		Username:            username,
		Email:               email,
		PasswordHash:        password, // hashed by the BeforeSave hook
		Provider:            "password",
		PasswordAuthEnabled: true,
		EmailNotifications:  true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: email or username already taken", apperrors.ErrConflict)
		}
		return nil, err
	}

	if err := s.sendVerification(user); err != nil {
		// The account exists; the user can request another link.
		log.Printf("[AuthService] Failed to send verification email to user #%d: %v", user.ID, err)
	}

	log.Printf("[AuthService] Registered user #%d (%s)", user.ID, user.Username)
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, "", err
	}

	if !user.PasswordAuthEnabled {
		return nil, "", fmt.Errorf("%w: password login is disabled for this account", apperrors.ErrUnauthorized)
	}
	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.IsAdmin, user.EmailVerified)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return user, token, nil
}

// VerifyEmail consumes a verification token and marks the address verified.
func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return fmt.Errorf("%w: verification token is required", apperrors.ErrValidation)
	}

	key := verificationTokenKey(token)
	value, err := s.cacheRepo.Get(key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: verification link is invalid or expired", apperrors.ErrUnauthorized)
		}
		return err
	}

	var userID uint
	if _, err := fmt.Sscanf(value, "%d", &userID); err != nil {
		return fmt.Errorf("%w: verification link is invalid or expired", apperrors.ErrUnauthorized)
	}

	if err := s.userRepo.SetEmailVerified(userID); err != nil {
		return err
	}
	if err := s.cacheRepo.Delete(key); err != nil {
		log.Printf("[AuthService] Failed to delete used verification token: %v", err)
	}

	log.Printf("[AuthService] Email verified for user #%d", userID)
	return nil
}

// ResendVerification issues a fresh verification link for an unverified
// account. At most one email goes out per user per cooldown window.
func (s *AuthService) ResendVerification(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return fmt.Errorf("%w: email is already verified", apperrors.ErrConflict)
	}

	acquired, err := s.cacheRepo.SetNX(resendCooldownKey(userID), "1", resendCooldown)
	if err != nil {
		return err
	}
	if !acquired {
		return fmt.Errorf("%w: a verification email was sent recently, try again in a minute", apperrors.ErrConflict)
	}

	return s.sendVerification(user)
}

func (s *AuthService) sendVerification(user *entity.User) error {
	token := uuid.NewString()
	if err := s.cacheRepo.Set(verificationTokenKey(token), fmt.Sprintf("%d", user.ID), verificationTokenTTL); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	link := fmt.Sprintf("%s?token=%s", s.verifyURL, token)

	notification := &entity.Notification{
		ExternalID: uuid.NewString(),
		UserID:     user.ID,
		Type:       entity.NotificationTypeEmailVerification,
		Message:    "Verification email sent to " + user.Email,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		log.Printf("[AuthService] Failed to record verification notification: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.emailService.SendVerificationLink(ctx, user.Email, link, notification.ExternalID); err != nil {
		return err
	}

	if notification.ID != 0 {
		if err := s.notificationRepo.MarkSent(notification.ID); err != nil {
			log.Printf("[AuthService] Failed to mark verification notification sent: %v", err)
		}
	}
	return nil
}
