package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/auth"
)

type contextKey string

const identityContextKey = contextKey("identity")

// AuthMiddleware resolves the presented credential to an identity through the
// configured strategy (bearer or basic) and stores it on the request context.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, err := s.authenticator.ResolveIdentity(r)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the authenticated e-mail, or "" when the
// request never went through AuthMiddleware.
func IdentityFromContext(ctx context.Context) string {
	if email, ok := ctx.Value(identityContextKey).(string); ok {
		return email
	}
	return ""
}
