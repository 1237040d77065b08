package identity

import (
	"context"
	"time"

	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/a7delivery/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService handles authentication: login, token revocation and the
// one-time admin bootstrap.
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users identity.UserRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// LoginResponse is the successful login payload
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		ExpiresAt: u.ExpiresAt,
		CreatedAt: u.CreatedAt,
	}
}

// Login verifies the credential pair and issues an access token. The
// response never distinguishes a wrong username from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, identity.ErrInvalidCredentials
	}
	if !user.VerifyPassword(password) {
		return nil, identity.ErrInvalidCredentials
	}
	if err := user.CanLogin(time.Now().UTC()); err != nil {
		return nil, err
	}

	issued, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		TenantID: user.ID,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &LoginResponse{
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresAt: issued.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
}

// Me returns the account behind the token
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// BootstrapAdmin seeds the initial admin account when none exists. It
// refuses to run with an empty password; there is no default credential.
func (s *AuthService) BootstrapAdmin(ctx context.Context, username, password string) error {
	count, err := s.users.CountByRole(ctx, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		return identity.ErrPasswordTooShort
	}

	admin, err := identity.NewUser(username, password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin account bootstrapped", zap.String("username", username))
	return nil
}
