package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // Never expose
	DisplayName  string     `json:"display_name" db:"display_name"`
	Language     string     `json:"language" db:"language"`
	Timezone     string     `json:"timezone" db:"timezone"`
	Goal         string     `json:"goal" db:"goal"`
	ShowStreaks  bool       `json:"show_streaks" db:"show_streaks"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// UserSession represents an active authenticated session
type UserSession struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash        string     `json:"-" db:"token_hash"`
	RefreshTokenHash string     `json:"-" db:"refresh_token_hash"`
	ExpiresAt        time.Time  `json:"expires_at" db:"expires_at"`
	RefreshExpiresAt time.Time  `json:"refresh_expires_at" db:"refresh_expires_at"`
	IPAddress        string     `json:"ip_address" db:"ip_address"`
	UserAgent        string     `json:"user_agent" db:"user_agent"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	LastActivity     time.Time  `json:"last_activity" db:"last_activity"`
	RevokedAt        *time.Time `json:"revoked_at" db:"revoked_at"`
}

// UserContext represents the authenticated user attached to a request
type UserContext struct {
	UserID uuid.UUID
	Email  string
}
