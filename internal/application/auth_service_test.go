package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoexplorer/geoexplorer-api/internal/infrastructure/memory"
	"github.com/geoexplorer/geoexplorer-api/pkg/helpers"
)

func newAuthService(t *testing.T) (*AuthService, *memory.UserRepository) {
	t.Helper()
	jwt, err := helpers.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)
	repo := memory.NewUserRepository()
	return NewAuthService(repo, jwt, nil, nil, "GeoExplorer", false), repo
}

func register(t *testing.T, svc *AuthService, email string) {
	t.Helper()
	err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    email,
		Phone:    "555-0100",
		Password: "Passw0rd1",
	})
	require.NoError(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)

	register(t, svc, "ana@x.com")

	err := svc.Register(context.Background(), RegisterInput{
		Name:     "Other",
		Email:    "ana@x.com",
		Phone:    "555-0200",
		Password: "different",
	})
	require.ErrorIs(t, err, ErrEmailInUse)
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()
	svc, repo := newAuthService(t)

	register(t, svc, "ana@x.com")

	u, err := repo.GetByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd1", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "Passw0rd1"))
	assert.Empty(t, u.Favorites)
}

func TestLogin_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)
	register(t, svc, "ana@x.com")

	token, exp, u, err := svc.Login(context.Background(), "ana@x.com", "Passw0rd1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))
	assert.Equal(t, "ana@x.com", u.Email)

	claims, err := svc.JWT.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	t.Parallel()
	svc, _ := newAuthService(t)
	register(t, svc, "ana@x.com")

	_, _, _, errWrongPwd := svc.Login(context.Background(), "ana@x.com", "nope")
	_, _, _, errUnknown := svc.Login(context.Background(), "ghost@x.com", "Passw0rd1")

	require.ErrorIs(t, errWrongPwd, ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.Equal(t, errWrongPwd.Error(), errUnknown.Error())
}

func TestProfile_UserDeletedAfterTokenIssued(t *testing.T) {
	t.Parallel()
	svc, repo := newAuthService(t)
	register(t, svc, "ana@x.com")

	_, _, u, err := svc.Login(context.Background(), "ana@x.com", "Passw0rd1")
	require.NoError(t, err)

	repo.Delete(u.ID)

	_, err = svc.Profile(context.Background(), u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)
}
