package identity

import (
	"context"
	"testing"
	"time"

	"github.com/a7delivery/backend/internal/domain/identity"
	"github.com/a7delivery/backend/internal/infrastructure/auth"
	"github.com/a7delivery/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret",
		TokenExpiration: 30 * time.Minute,
		Issuer:          "a7delivery-test",
	})
}

func newAuthService(users *mockUserRepository) *AuthService {
	return NewAuthService(users, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func mustNewUser(t *testing.T, username, password string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(username, password, role)
	require.NoError(t, err)
	return u
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		user := mustNewUser(t, "karim", "correct-horse", identity.RoleUser)
		users := new(mockUserRepository)
		users.On("FindByUsername", ctx, "karim").Return(user, nil)

		resp, err := newAuthService(users).Login(ctx, "karim", "correct-horse")

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, "karim", resp.User.Username)
		assert.NotNil(t, resp.User.ExpiresAt, "regular accounts carry an expiry")
	})

	t.Run("wrong password and unknown user yield the same error", func(t *testing.T) {
		user := mustNewUser(t, "karim", "correct-horse", identity.RoleUser)
		users := new(mockUserRepository)
		users.On("FindByUsername", ctx, "karim").Return(user, nil)
		users.On("FindByUsername", ctx, "ghost").Return(nil, identity.ErrUserNotFound)

		svc := newAuthService(users)

		_, errWrongPassword := svc.Login(ctx, "karim", "wrong")
		_, errUnknownUser := svc.Login(ctx, "ghost", "whatever")

		assert.ErrorIs(t, errWrongPassword, identity.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownUser, identity.ErrInvalidCredentials)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		user := mustNewUser(t, "karim", "correct-horse", identity.RoleUser)
		user.IsActive = false
		users := new(mockUserRepository)
		users.On("FindByUsername", ctx, "karim").Return(user, nil)

		_, err := newAuthService(users).Login(ctx, "karim", "correct-horse")

		assert.ErrorIs(t, err, identity.ErrAccountDeactivated)
	})

	t.Run("expired account cannot log in", func(t *testing.T) {
		user := mustNewUser(t, "karim", "correct-horse", identity.RoleUser)
		expired := time.Now().Add(-time.Hour)
		user.ExpiresAt = &expired
		users := new(mockUserRepository)
		users.On("FindByUsername", ctx, "karim").Return(user, nil)

		_, err := newAuthService(users).Login(ctx, "karim", "correct-horse")

		assert.ErrorIs(t, err, identity.ErrAccountExpired)
	})

	t.Run("admin account ignores expiry", func(t *testing.T) {
		admin := mustNewUser(t, "admin", "admin-password", identity.RoleAdmin)
		require.Nil(t, admin.ExpiresAt, "admins never expire")
		users := new(mockUserRepository)
		users.On("FindByUsername", ctx, "admin").Return(admin, nil)

		resp, err := newAuthService(users).Login(ctx, "admin", "admin-password")

		require.NoError(t, err)
		assert.Equal(t, "admin", resp.User.Role)
	})
}

func TestAuthService_BootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds admin when none exists", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("CountByRole", ctx, identity.RoleAdmin).Return(int64(0), nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "admin" && u.Role == identity.RoleAdmin
		})).Return(nil)

		err := newAuthService(users).BootstrapAdmin(ctx, "admin", "strong-seed-password")

		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("does nothing when an admin exists", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("CountByRole", ctx, identity.RoleAdmin).Return(int64(1), nil)

		err := newAuthService(users).BootstrapAdmin(ctx, "admin", "strong-seed-password")

		assert.NoError(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("refuses an empty seed password", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("CountByRole", ctx, identity.RoleAdmin).Return(int64(0), nil)

		err := newAuthService(users).BootstrapAdmin(ctx, "admin", "")

		assert.Error(t, err)
		users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	user := mustNewUser(t, "karim", "correct-horse", identity.RoleUser)
	users := new(mockUserRepository)
	users.On("FindByUsername", ctx, "karim").Return(user, nil)

	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(users, newTestJWTService(), blacklist, zap.NewNop())

	resp, err := svc.Login(ctx, "karim", "correct-horse")
	require.NoError(t, err)

	claims, err := newTestJWTService().ValidateToken(resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
