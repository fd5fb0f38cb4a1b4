package service

import (
	"testing"

	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRegisterAndLogin(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := NewUserAuthService(f.cfg, f.users)

	user, token, _, err := svc.Register(RegisterInput{Email: " Alice@Example.com ", Password: "correct-horse", Locale: "zh-CN"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.DisplayName)
	assert.Equal(t, "zh-CN", user.Locale)

	claims, err := svc.ParseUserJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, _, err = svc.Register(RegisterInput{Email: "alice@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, _, _, err = svc.Login("alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	logged, _, _, err := svc.Login("ALICE@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotNil(t, logged.LastLoginAt)
}

func TestUserRegisterValidation(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := NewUserAuthService(f.cfg, f.users)

	_, _, _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, _, _, err = svc.Register(RegisterInput{Email: "bob@example.com", Password: "short"})
	require.ErrorIs(t, err, ErrWeakPassword)
	var policyErr passwordPolicyError
	require.ErrorAs(t, err, &policyErr)
	assert.Equal(t, "error.password_too_short", policyErr.Key())
	assert.Equal(t, []interface{}{8}, policyErr.Args())
}

func TestUserLoginRejectsDisabledAccount(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := NewUserAuthService(f.cfg, f.users)
	user, _, _, err := svc.Register(RegisterInput{Email: "carol@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(user).Update("status", "disabled").Error)

	_, _, _, err = svc.Login("carol@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrUserDisabled)

	_, err = svc.GetUserByID(0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaffLoginAndCreate(t *testing.T) {
	f := setupStorefrontTest(t)
	svc := NewAuthService(f.cfg, repository.NewAdminRepository(f.db), nil)

	require.NoError(t, svc.EnsureDefaultAdmin("root", "root-pass-123"))
	require.NoError(t, svc.EnsureDefaultAdmin("other", "ignored-pass"), "second call is a no-op")

	admin, token, _, err := svc.Login("root", "root-pass-123")
	require.NoError(t, err)
	assert.True(t, admin.IsSuper)
	claims, err := svc.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.AdminID)

	_, _, _, err = svc.Login("other", "ignored-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	staff, roles, err := svc.CreateStaff(StaffInput{Username: "clerk", Password: "clerk-pass-1"})
	require.NoError(t, err)
	assert.False(t, staff.IsSuper)
	assert.Empty(t, roles)

	_, _, err = svc.CreateStaff(StaffInput{Username: "clerk", Password: "clerk-pass-1"})
	assert.ErrorIs(t, err, ErrAdminTargetInvalid)
	_, _, err = svc.CreateStaff(StaffInput{Username: "admin", Password: "clerk-pass-1"})
	assert.ErrorIs(t, err, ErrAdminTargetInvalid)
}
