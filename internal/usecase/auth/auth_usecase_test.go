package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkupge/linkup-backend/internal/domain"
	"github.com/linkupge/linkup-backend/internal/testutil"
)

const testSecret = "test-secret-test-secret-test-secret!"

func newTestUseCase() (*AuthUseCase, *testutil.FakeUserRepository, *testutil.FakeSessionRepository) {
	userRepo := testutil.NewFakeUserRepository()
	sessionRepo := testutil.NewFakeSessionRepository()
	uc := NewAuthUseCase(userRepo, sessionRepo, nil, testSecret, 24)
	return uc, userRepo, sessionRepo
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	resp, err := uc.Register(ctx, &RegisterRequest{
		Email:    "  Anna@Example.COM ",
		Password: "correct horse",
		Name:     "Anna",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.IsNewUser)
	assert.Equal(t, "anna@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)
	assert.NotEqual(t, "correct horse", resp.User.PasswordHash)

	userID, err := uc.VerifyToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, &RegisterRequest{Email: "a@b.ge", Password: "password1", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, &RegisterRequest{Email: "A@B.GE", Password: "password2", Name: "B"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginWithValidCredentials(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	reg, err := uc.Register(ctx, &RegisterRequest{Email: "a@b.ge", Password: "password1", Name: "A"})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, &LoginRequest{Email: "a@b.ge", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.False(t, resp.IsNewUser)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Register(ctx, &RegisterRequest{Email: "a@b.ge", Password: "password1", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, &LoginRequest{Email: "a@b.ge", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Login(context.Background(), &LoginRequest{Email: "ghost@b.ge", Password: "password1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.VerifyToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	resp, err := uc.Register(ctx, &RegisterRequest{Email: "a@b.ge", Password: "password1", Name: "A"})
	require.NoError(t, err)

	other := NewAuthUseCase(
		testutil.NewFakeUserRepository(),
		testutil.NewFakeSessionRepository(),
		nil,
		"another-secret-another-secret-another",
		24,
	)
	_, err = other.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestLogoutKillsSession(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	resp, err := uc.Register(ctx, &RegisterRequest{Email: "a@b.ge", Password: "password1", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, resp.Token))

	_, err = uc.VerifyToken(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestLogoutUnknownToken(t *testing.T) {
	uc, _, _ := newTestUseCase()

	err := uc.Logout(context.Background(), "unknown-token")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetUser(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	resp, err := uc.Register(ctx, &RegisterRequest{Email: "a@b.ge", Password: "password1", Name: "A"})
	require.NoError(t, err)

	user, err := uc.GetUser(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.ge", user.Email)

	_, err = uc.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
