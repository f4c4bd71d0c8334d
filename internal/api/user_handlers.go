package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/models"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/quota"
)

type MeResponse struct {
	Email        string  `json:"email"`
	FullName     *string `json:"full_name,omitempty"`
	Institution  *string `json:"institution,omitempty"`
	RequestsUsed int     `json:"requests_used"`
	MonthlyLimit int     `json:"monthly_limit"`
}

// @Summary      Get current user info
// @Description  Returns the authenticated user's profile and quota usage for the current billing month.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  MeResponse
// @Failure      401  {string}  string "Credenciais inválidas"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	email := IdentityFromContext(r.Context())
	if email == "" {
		http.Error(w, "Could not retrieve user identity", http.StatusInternalServerError)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}
	if user == nil {
		// token válido mas usuário removido do banco
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	period := quota.PeriodStart(timeNow())
	response := MeResponse{
		Email:        user.Email,
		FullName:     user.FullName,
		Institution:  user.Institution,
		RequestsUsed: user.RequestsInPeriod(period),
		MonthlyLimit: s.gate.Limit(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// @Summary      List users
// @Description  Lists registered users. Counters from past months read as zero; credentials are never included.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size (default 50)"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}   models.User
// @Failure      401  {string}  string "Credenciais inválidas"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /users [get]
func (s *Server) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}

	users, err := s.store.ListUsers(r.Context(), limit, offset)
	if err != nil {
		log.Printf("ERROR: failed to list users: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	period := quota.PeriodStart(timeNow())
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		u.RequestCount = u.RequestsInPeriod(period)
		out = append(out, u)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
