package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/auth"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/database"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/quota"
)

type LoginRequest struct {
	Email    string `json:"email" example:"aluno1@escola.edu"`
	Password string `json:"password" example:"w.12345678901"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// @Summary      Logs a user in
// @Description  Verifies the e-mail/password pair and returns a short-lived access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {string}  string "Invalid request body"
// @Failure      401            {string}  string "Credenciais inválidas"
// @Failure      500            {string}  string "Internal Server Error"
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	accessToken, err := auth.GenerateJWT(user.Email, s.config.JWT.Secret, s.config.JWT.Expiry())
	if err != nil {
		http.Error(w, "Failed to generate access token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(TokenResponse{AccessToken: accessToken})
}

type RegisterRequest struct {
	FullName    string `json:"full_name" example:"Aluno Um"`
	Institution string `json:"institution" example:"Escola Estadual"`
	Email       string `json:"email" example:"aluno1@escola.edu"`
	Password    string `json:"password" example:"w.12345678901"`
}

type RegisterResponse struct {
	Message string `json:"message" example:"Usuário registrado com sucesso"`
}

// @Summary      Registers a new user
// @Description  Creates a user record with a zeroed monthly counter. The e-mail must be unique.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest   body      RegisterRequest  true  "New user"
// @Success      201               {object}  RegisterResponse
// @Failure      400               {string}  string "Invalid request body or duplicate e-mail"
// @Failure      500               {string}  string "Internal Server Error"
// @Router       /auth/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		http.Error(w, "E-mail e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	params := database.CreateUserParams{
		Email:        req.Email,
		PasswordHash: passwordHash,
		LastReset:    quota.PeriodStart(timeNow()),
	}
	if name := strings.TrimSpace(req.FullName); name != "" {
		params.FullName = &name
	}
	if inst := strings.TrimSpace(req.Institution); inst != "" {
		params.Institution = &inst
	}

	// o usuário e seu registro no diário entram na mesma transação
	err = s.store.ExecTx(r.Context(), func(q *database.Queries) error {
		user, err := q.CreateUser(r.Context(), params)
		if err != nil {
			return err
		}
		return q.LogEvent(r.Context(), user.Email, "register", map[string]interface{}{
			"institution": req.Institution,
		})
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			http.Error(w, "E-mail já cadastrado", http.StatusBadRequest)
			return
		}
		log.Printf("ERROR: failed to register user %s: %v", req.Email, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResponse{Message: "Usuário registrado com sucesso"})
}
