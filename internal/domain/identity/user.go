package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's role in the system
type Role string

const (
	// RoleAdmin can manage user accounts in addition to its own tenant data
	RoleAdmin Role = "admin"
	// RoleUser is a regular tenant account
	RoleUser Role = "user"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Password cost for bcrypt
const bcryptCost = 12

// userAccountLifetime is how long a regular account stays valid after creation.
// Admin accounts never expire.
const userAccountLifetime = 365 * 24 * time.Hour

// MaxTokenInvalidationTTL is how long a token invalidation record must live
// to outlast any access token issued before it.
const MaxTokenInvalidationTTL = 24 * time.Hour

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,64}$`)

// Identity errors
var (
	ErrInvalidUsername    = shared.NewDomainError("INVALID_INPUT", "Username must be 3-64 characters of letters, digits, '_', '.' or '-'")
	ErrPasswordTooShort   = shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	ErrInvalidRole        = shared.NewDomainError("INVALID_INPUT", "Role must be admin or user")
	ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Incorrect username or password")
	ErrAccountDeactivated = shared.NewDomainError("UNAUTHORIZED", "User account is deactivated")
	ErrAccountExpired     = shared.NewDomainError("UNAUTHORIZED", "User account has expired")
	ErrUserNotFound       = shared.NewDomainError("NOT_FOUND", "User not found")
	ErrUsernameTaken      = shared.NewDomainError("ALREADY_EXISTS", "Username already exists")
)

// User represents an account. Every user is its own tenant: the user id is
// the tenant id partitioning credentials and orders.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	IsActive     bool
	ExpiresAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new account. Regular users receive an expiry one year
// out; admins never expire.
func NewUser(username, password string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == RoleUser {
		expires := now.Add(userAccountLifetime)
		user.ExpiresAt = &expires
	}
	return user, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// CanLogin reports whether the account may authenticate right now
func (u *User) CanLogin(now time.Time) error {
	if !u.IsActive {
		return ErrAccountDeactivated
	}
	if u.Role != RoleAdmin && u.ExpiresAt != nil && now.After(*u.ExpiresAt) {
		return ErrAccountExpired
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ToggleActive flips the activation flag
func (u *User) ToggleActive() {
	u.IsActive = !u.IsActive
	u.UpdatedAt = time.Now().UTC()
}
