package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeUserSource struct {
	users map[string]*models.User
}

func (f *fakeUserSource) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func TestBearerAuthenticator(t *testing.T) {
	secret := "bearer_test_secret"
	a := NewBearerAuthenticator(secret)

	token, err := GenerateJWT("aluno1@escola.edu", secret, time.Hour)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		email, err := a.ResolveIdentity(req)
		require.NoError(t, err)
		require.Equal(t, "aluno1@escola.edu", email)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate", nil)

		_, err := a.ResolveIdentity(req)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.Header.Set("Authorization", token)

		_, err := a.ResolveIdentity(req)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := GenerateJWT("aluno1@escola.edu", "outro-segredo", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/generate", nil)
		req.Header.Set("Authorization", "Bearer "+other)

		_, err = a.ResolveIdentity(req)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := GenerateJWT("aluno1@escola.edu", secret, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/generate", nil)
		req.Header.Set("Authorization", "Bearer "+expired)

		_, err = a.ResolveIdentity(req)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestBasicAuthenticator(t *testing.T) {
	hash, err := HashPassword("w.12345678901")
	require.NoError(t, err)

	source := &fakeUserSource{users: map[string]*models.User{
		"aluno1@escola.edu": {Email: "aluno1@escola.edu", PasswordHash: hash},
	}}
	a := NewBasicAuthenticator(source)

	t.Run("valid credentials", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.SetBasicAuth("aluno1@escola.edu", "w.12345678901")

		email, err := a.ResolveIdentity(req)
		require.NoError(t, err)
		require.Equal(t, "aluno1@escola.edu", email)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.SetBasicAuth("aluno1@escola.edu", "senha-errada")

		_, err := a.ResolveIdentity(req)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate", nil)
		req.SetBasicAuth("desconhecido@escola.edu", "w.12345678901")

		_, err := a.ResolveIdentity(req)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("no credentials", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/generate", nil)

		_, err := a.ResolveIdentity(req)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
