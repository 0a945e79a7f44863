package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/mindhaven/mindhaven-backend/internal/models"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")
	// ErrUserInactive is returned when a user is inactive
	ErrUserInactive = errors.New("user account is inactive")
	// ErrEmailAlreadyExists is returned when email is already registered
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when a session is expired
	ErrSessionExpired = errors.New("session expired")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	Create(ctx context.Context, session *models.UserSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserSession, error)
	Update(ctx context.Context, session *models.UserSession) error
	DeleteExpired(ctx context.Context) error
}

// ProfileUpdate carries the mutable profile fields
type ProfileUpdate struct {
	DisplayName *string
	Language    *string
	Timezone    *string
	Goal        *string
	ShowStreaks *bool
}

// Service handles authentication operations
type Service struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	jwt         *JWTService
	log         *logrus.Logger
}

// NewService creates a new auth service
func NewService(userRepo UserRepository, sessionRepo SessionRepository, jwtSecret string, log *logrus.Logger) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwt:         NewJWTService(jwtSecret, "mindhaven"),
		log:         log,
	}
}

// SignUp registers a new user
func (s *Service) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrEmailAlreadyExists
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Language:     "en",
		ShowStreaks:  true,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and creates a session
func (s *Service) Login(ctx context.Context, email, password string, ipAddress, userAgent string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !user.IsActive {
		return nil, "", "", ErrUserInactive
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", "", ErrInvalidCredentials
	}

	session := &models.UserSession{
		ID:               uuid.New(),
		UserID:           user.ID,
		ExpiresAt:        time.Now().Add(AccessTokenTTL),
		RefreshExpiresAt: time.Now().Add(RefreshTokenTTL),
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
		CreatedAt:        time.Now(),
		LastActivity:     time.Now(),
	}

	accessToken, refreshToken, err := s.jwt.GenerateTokenPair(
		user.ID.String(),
		user.Email,
		session.ID.String(),
	)
	if err != nil {
		return nil, "", "", err
	}

	session.TokenHash = HashToken(accessToken)
	session.RefreshTokenHash = HashToken(refreshToken)

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", "", err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Not worth failing the login for
		s.log.WithError(err).Warn("failed to update last login")
	}

	return user, accessToken, refreshToken, nil
}

// RefreshToken refreshes an access token using a refresh token
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", ErrSessionNotFound
		}
		return "", "", err
	}

	if session.RevokedAt != nil {
		return "", "", ErrSessionExpired
	}

	if session.RefreshTokenHash != HashToken(refreshToken) {
		return "", "", ErrInvalidToken
	}

	if session.RefreshExpiresAt.Before(time.Now()) {
		return "", "", ErrSessionExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return "", "", err
	}

	newAccessToken, newRefreshToken, err := s.jwt.GenerateTokenPair(
		user.ID.String(),
		user.Email,
		session.ID.String(),
	)
	if err != nil {
		return "", "", err
	}

	session.TokenHash = HashToken(newAccessToken)
	session.RefreshTokenHash = HashToken(newRefreshToken)
	session.ExpiresAt = time.Now().Add(AccessTokenTTL)
	session.RefreshExpiresAt = time.Now().Add(RefreshTokenTTL)
	session.LastActivity = time.Now()

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}

// Logout revokes a session
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return err
	}

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	session.RevokedAt = &now
	return s.sessionRepo.Update(ctx, session)
}

// ValidateAccessToken validates an access token and returns the user
func (s *Service) ValidateAccessToken(ctx context.Context, token string) (*models.User, *JWTClaims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, nil, err
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	if session.RevokedAt != nil {
		return nil, nil, ErrSessionExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	session.LastActivity = time.Now()
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		s.log.WithError(err).Warn("failed to update session activity")
	}

	return user, claims, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates a user's profile; nil fields are left unchanged
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.DisplayName != nil {
		user.DisplayName = *update.DisplayName
	}
	if update.Language != nil {
		user.Language = *update.Language
	}
	if update.Timezone != nil {
		user.Timezone = *update.Timezone
	}
	if update.Goal != nil {
		user.Goal = *update.Goal
	}
	if update.ShowStreaks != nil {
		user.ShowStreaks = *update.ShowStreaks
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword changes a user's password
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !CheckPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	newHash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, newHash)
}

// CleanupExpiredSessions removes expired sessions
func (s *Service) CleanupExpiredSessions(ctx context.Context) error {
	return s.sessionRepo.DeleteExpired(ctx)
}
