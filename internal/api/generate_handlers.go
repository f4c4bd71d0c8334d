package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/database"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/llm"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/quota"
)

type GenerateRequest struct {
	Message string `json:"message" example:"Como resolvo uma equação de segundo grau?"`
}

type GenerateResponse struct {
	Response string `json:"response"`
}

// @Summary      Generates a tutored answer
// @Description  Charges one slot of the caller's monthly quota, then forwards the message to the generation backend wrapped in the tutor instruction.
// @Tags         generation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        generateRequest   body      GenerateRequest  true  "Student message"
// @Success      200               {object}  GenerateResponse
// @Failure      400               {string}  string "Invalid request body"
// @Failure      401               {string}  string "Credenciais inválidas"
// @Failure      429               {string}  string "Limite de requisições atingido para este mês"
// @Failure      500               {string}  string "Erro ao se comunicar com o Ollama"
// @Router       /generate [post]
func (s *Server) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	email := IdentityFromContext(r.Context())
	if email == "" {
		http.Error(w, "Could not retrieve user identity", http.StatusInternalServerError)
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// charge-then-call: the slot is committed before the backend is invoked,
	// so an upstream failure or client disconnect still consumes quota
	count, err := s.gate.Consume(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrExceeded):
			quotaRejectionsTotal.Inc()
			http.Error(w, "Limite de requisições atingido para este mês", http.StatusTooManyRequests)
		case errors.Is(err, database.ErrUserNotFound):
			// credencial válida mas usuário removido do banco
			http.Error(w, "Usuário não encontrado", http.StatusUnauthorized)
		default:
			log.Printf("ERROR: quota check failed for %s: %v", email, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	start := time.Now()
	answer, err := s.llm.Generate(r.Context(), req.Message)
	generationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, llm.ErrUpstream) {
			log.Printf("ERROR: generation backend failure for %s: %v", email, err)
			http.Error(w, "Erro ao se comunicar com o Ollama", http.StatusInternalServerError)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := s.store.LogEvent(r.Context(), email, "generate", map[string]interface{}{
		"model":         s.config.Ollama.Model,
		"message_chars": len(req.Message),
		"duration_ms":   time.Since(start).Milliseconds(),
		"request_count": count,
	}); err != nil {
		log.Printf("WARN: failed to journal generation for %s: %v", email, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GenerateResponse{Response: answer})
}
