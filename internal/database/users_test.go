package database

import (
	"context"
	"testing"
	"time"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/auth"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/models"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()

	hashedPassword, err := auth.HashPassword("w.12345678901")
	require.NoError(t, err)

	name := "Aluno de Teste"
	user, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     &name,
		LastReset:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return user
}

func TestCreateAndGetUserByEmail(t *testing.T) {
	created := createTestUser(t, "busca@escola.edu")
	require.Equal(t, "busca@escola.edu", created.Email)
	require.Zero(t, created.RequestCount)

	foundUser, err := testStore.GetUserByEmail(context.Background(), "busca@escola.edu")
	require.NoError(t, err)
	require.NotNil(t, foundUser)
	require.Equal(t, "busca@escola.edu", foundUser.Email)
	require.Equal(t, "Aluno de Teste", *foundUser.FullName)
	require.NotEmpty(t, foundUser.PasswordHash)
	require.True(t, auth.CheckPasswordHash("w.12345678901", foundUser.PasswordHash))

	nonExistentUser, err := testStore.GetUserByEmail(context.Background(), "nonexistent@escola.edu")
	require.NoError(t, err)
	require.Nil(t, nonExistentUser)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	createTestUser(t, "duplicado@escola.edu")

	otherName := "Outro Aluno"
	_, err := testStore.CreateUser(context.Background(), CreateUserParams{
		Email:        "duplicado@escola.edu",
		PasswordHash: "outro-hash",
		FullName:     &otherName,
		LastReset:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// o registro original permanece intacto
	user, err := testStore.GetUserByEmail(context.Background(), "duplicado@escola.edu")
	require.NoError(t, err)
	require.Equal(t, "Aluno de Teste", *user.FullName)
	require.True(t, auth.CheckPasswordHash("w.12345678901", user.PasswordHash))
}

func TestListUsers_ExcludesPasswordHash(t *testing.T) {
	createTestUser(t, "listagem@escola.edu")

	users, err := testStore.ListUsers(context.Background(), 200, 0)
	require.NoError(t, err)
	require.NotEmpty(t, users)

	var found bool
	for _, u := range users {
		require.Empty(t, u.PasswordHash, "listing must never carry credentials")
		if u.Email == "listagem@escola.edu" {
			found = true
		}
	}
	require.True(t, found)
}

func TestSeedUsers_Idempotent(t *testing.T) {
	period := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	hash, err := auth.HashPassword("w.10987654321")
	require.NoError(t, err)

	seed := []SeedUserParams{{Email: "semente@escola.edu", PasswordHash: hash}}
	require.NoError(t, testStore.SeedUsers(context.Background(), seed, period))

	// consome uma vaga e semeia de novo: o contador não pode ser zerado
	_, ok, err := testStore.ConsumeQuota(context.Background(), "semente@escola.edu", period, 100)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, testStore.SeedUsers(context.Background(), seed, period))

	user, err := testStore.GetUserByEmail(context.Background(), "semente@escola.edu")
	require.NoError(t, err)
	require.Equal(t, 1, user.RequestCount)
}
