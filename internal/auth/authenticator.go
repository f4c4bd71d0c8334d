package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/models"
)

var ErrInvalidCredentials = errors.New("credenciais inválidas")

// UserSource is the slice of the store the basic-auth strategy needs.
type UserSource interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticator resolves the credential presented on a request to a stable
// identity (the user's e-mail). Exactly one implementation is active per
// deployment, chosen by auth.scheme.
type Authenticator interface {
	ResolveIdentity(r *http.Request) (string, error)
}

type BearerAuthenticator struct {
	secret string
}

func NewBearerAuthenticator(secret string) *BearerAuthenticator {
	return &BearerAuthenticator{secret: secret}
}

func (a *BearerAuthenticator) ResolveIdentity(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrInvalidCredentials
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || headerParts[0] != "Bearer" {
		return "", ErrInvalidCredentials
	}

	claims, err := VerifyJWT(headerParts[1], a.secret)
	if err != nil {
		// assinatura inválida ou token expirado
		return "", ErrInvalidCredentials
	}

	if claims.Email == "" {
		return "", ErrInvalidCredentials
	}

	return claims.Email, nil
}

type BasicAuthenticator struct {
	users UserSource
}

func NewBasicAuthenticator(users UserSource) *BasicAuthenticator {
	return &BasicAuthenticator{users: users}
}

func (a *BasicAuthenticator) ResolveIdentity(r *http.Request) (string, error) {
	email, password, ok := r.BasicAuth()
	if !ok {
		return "", ErrInvalidCredentials
	}

	user, err := a.users.GetUserByEmail(r.Context(), email)
	if err != nil {
		return "", err
	}
	if user == nil || !CheckPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return user.Email, nil
}
