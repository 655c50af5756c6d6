package services

import (
	"context"
	"testing"

	"github.com/kenyapadelscore/padelscore/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerReferee(t *testing.T, auth AuthService, email, password string) *models.User {
	t.Helper()
	user, err := auth.Register(context.Background(), RegisterInput{
		FirstName: "Rita",
		LastName:  "Referee",
		Email:     email,
		Password:  password,
		Role:      models.RoleReferee,
	})
	require.NoError(t, err)
	return user
}

func TestLoginWithValidCredentials(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.userRepo)
	registered := registerReferee(t, auth, "court1@padelscore.test", "rally-point-7")

	user, err := auth.Login(context.Background(), LoginInput{
		Email:    "court1@padelscore.test",
		Password: "rally-point-7",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, models.RoleReferee, user.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.userRepo)
	registerReferee(t, auth, "court1@padelscore.test", "rally-point-7")

	_, err := auth.Login(context.Background(), LoginInput{
		Email:    "court1@padelscore.test",
		Password: "rally-point-8",
	})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.userRepo)

	_, err := auth.Login(context.Background(), LoginInput{
		Email:    "nobody@padelscore.test",
		Password: "whatever",
	})
	// Same sentinel as a bad password so the response does not leak
	// which accounts exist.
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestLoginRejectsSuspendedUser(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.userRepo)
	registered := registerReferee(t, auth, "court1@padelscore.test", "rally-point-7")

	registered.Status = models.UserStatusSuspended
	require.NoError(t, f.userRepo.Update(context.Background(), registered))

	_, err := auth.Login(context.Background(), LoginInput{
		Email:    "court1@padelscore.test",
		Password: "rally-point-7",
	})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.userRepo)

	_, err := auth.Register(context.Background(), RegisterInput{
		FirstName: "Sam",
		LastName:  "Spectator",
		Email:     "sam@padelscore.test",
		Password:  "pw",
		Role:      models.UserRole("spectator"),
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.userRepo)
	registerReferee(t, auth, "court1@padelscore.test", "rally-point-7")

	_, err := auth.Register(context.Background(), RegisterInput{
		FirstName: "Rita",
		LastName:  "Duplicate",
		Email:     "court1@padelscore.test",
		Password:  "other",
		Role:      models.RoleReferee,
	})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
}

func TestRegisterNeverStoresPlaintextPassword(t *testing.T) {
	f := newFixture(t)
	auth := NewAuthService(f.userRepo)
	registered := registerReferee(t, auth, "court1@padelscore.test", "rally-point-7")

	stored, err := f.userRepo.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "rally-point-7", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}
