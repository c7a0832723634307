package auth

import (
	"time"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
)

// Config drives token issuance.
type Config struct {
	Secret          string
	TokenTTL        time.Duration
	RefreshTokenTTL time.Duration
}

// Member is a persisted account. Birth is nil until the member saves one.
type Member struct {
	ID           int64            `json:"id"`
	Email        string           `json:"email"`
	Nickname     string           `json:"nickname"`
	PasswordHash string           `json:"-"`
	Birth        *saju.BirthInput `json:"birth,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// RegisterRequest captures the registration payload. Birth is optional.
type RegisterRequest struct {
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Nickname string           `json:"nickname"`
	Birth    *saju.BirthInput `json:"birth,omitempty"`
}

// LoginRequest captures login details.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token pair.
type LoginResponse struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken"`
	Member       MemberView `json:"member"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// MemberView trims sensitive fields.
type MemberView struct {
	ID        int64            `json:"id"`
	Email     string           `json:"email"`
	Nickname  string           `json:"nickname"`
	Birth     *saju.BirthInput `json:"birth,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Claims are extracted from a validated token.
type Claims struct {
	MemberID  int64
	Email     string
	TokenType string
	ExpiresAt time.Time
}
