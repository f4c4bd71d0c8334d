package api

import (
	"time"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/auth"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/config"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/database"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/llm"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/quota"
)

// seam for tests that pin the calendar date
var timeNow = time.Now

type Server struct {
	config        *config.Config
	store         *database.Store
	gate          *quota.Gate
	llm           *llm.Client
	authenticator auth.Authenticator
}

func NewServer(cfg *config.Config, store *database.Store, gate *quota.Gate, llmClient *llm.Client, authenticator auth.Authenticator) *Server {
	return &Server{
		config:        cfg,
		store:         store,
		gate:          gate,
		llm:           llmClient,
		authenticator: authenticator,
	}
}
