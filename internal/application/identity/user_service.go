package identity

import (
	"context"

	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/a7delivery/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService is the admin-only account management surface. Removing an
// account cascades to everything the tenant owns: orders, settings and
// live tokens.
type UserService struct {
	users     identity.UserRepository
	orders    order.Repository
	settings  settings.Repository
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, orders order.Repository, settingsRepo settings.Repository, blacklist auth.TokenBlacklist, logger *zap.Logger) *UserService {
	return &UserService{
		users:     users,
		orders:    orders,
		settings:  settingsRepo,
		blacklist: blacklist,
		logger:    logger,
	}
}

// CreateUserRequest carries a new account's fields
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CreateUser creates a regular account unless the request names the admin
// role explicitly
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role := identity.RoleUser
	if req.Role != "" {
		role = identity.Role(req.Role)
	}

	user, err := identity.NewUser(req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", user.Role.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// ListUsers lists every regular account
func (s *UserService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindByRole(ctx, identity.RoleUser)
	if err != nil {
		return nil, err
	}
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out, nil
}

// DeleteUser removes an account and every record its tenant owns. Admin
// accounts cannot be removed through this surface.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return shared.ErrForbidden
	}

	if err := s.orders.DeleteByTenant(ctx, id); err != nil {
		return err
	}
	if err := s.settings.DeleteByTenant(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	// Outstanding tokens stay valid cryptographically; cut them off.
	if err := s.blacklist.InvalidateUserTokens(ctx, id.String(), identity.MaxTokenInvalidationTTL); err != nil {
		s.logger.Warn("failed to invalidate tokens of removed user",
			zap.String("user_id", id.String()), zap.Error(err))
	}

	s.logger.Info("user removed with tenant data",
		zap.String("user_id", id.String()),
		zap.String("username", user.Username))
	return nil
}

// ToggleUserActive flips an account's activation flag. Deactivation also
// cuts off the account's live tokens.
func (s *UserService) ToggleUserActive(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	user.ToggleActive()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if !user.IsActive {
		if err := s.blacklist.InvalidateUserTokens(ctx, id.String(), identity.MaxTokenInvalidationTTL); err != nil {
			s.logger.Warn("failed to invalidate tokens of deactivated user",
				zap.String("user_id", id.String()), zap.Error(err))
		}
	}

	resp := ToUserResponse(user)
	return &resp, nil
}
