// @title           Don't Answer Me API
// @version         1.0
// @description     Gateway autenticado para o tutor de estudos: cota mensal por aluno e repasse ao Ollama.
// @host            localhost:8080
// @schemes         http
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/api"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/auth"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/config"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/database"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/llm"
	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/quota"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Não foi possível carregar a configuração: %v", err)
	}

	ctx := context.Background()

	dbpool, err := pgxpool.New(ctx, cfg.DB.Source)
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco de dados: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(ctx); err != nil {
		log.Fatalf("Não foi possível pingar o banco de dados: %v", err)
	}
	log.Println("Conectado ao banco de dados")

	if err := database.RunMigrations(ctx, cfg.DB.Source); err != nil {
		log.Fatalf("Erro ao aplicar migrações: %v", err)
	}

	store := database.NewStore(dbpool)

	if err := seedUsers(ctx, store, cfg.Seed.Users); err != nil {
		log.Fatalf("Erro ao semear usuários: %v", err)
	}

	gate := quota.NewGate(store, cfg.Quota.MonthlyLimit)
	llmClient := llm.NewClient(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.Timeout())

	var authenticator auth.Authenticator
	switch cfg.Auth.Scheme {
	case "basic":
		authenticator = auth.NewBasicAuthenticator(store)
		log.Println("Esquema de autenticação: HTTP Basic")
	default:
		authenticator = auth.NewBearerAuthenticator(cfg.JWT.Secret)
		log.Println("Esquema de autenticação: Bearer (JWT)")
	}

	server := api.NewServer(cfg, store, gate, llmClient, authenticator)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	r.Use(api.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", server.LoginHandler)
		r.Post("/auth/register", server.RegisterHandler)

		r.Group(func(r chi.Router) {
			r.Use(server.AuthMiddleware)
			r.Get("/me", server.GetCurrentUserHandler)
			r.Get("/users", server.ListUsersHandler)
			r.Post("/generate", server.GenerateHandler)
			r.Get("/events", server.GetEventsHandler)
		})
	})

	log.Printf("Iniciando servidor em %s", cfg.AppHost)
	if err := http.ListenAndServe(cfg.AppHost, r); err != nil {
		log.Fatalf("Não foi possível iniciar o servidor: %v", err)
	}
}

func seedUsers(ctx context.Context, store *database.Store, users []config.SeedUser) error {
	if len(users) == 0 {
		return nil
	}

	params := make([]database.SeedUserParams, 0, len(users))
	for _, u := range users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return err
		}
		p := database.SeedUserParams{Email: u.Email, PasswordHash: hash}
		if u.FullName != "" {
			name := u.FullName
			p.FullName = &name
		}
		if u.Institution != "" {
			inst := u.Institution
			p.Institution = &inst
		}
		params = append(params, p)
	}

	if err := store.SeedUsers(ctx, params, quota.PeriodStart(time.Now())); err != nil {
		return err
	}

	log.Printf("Semeados %d usuários", len(params))
	return nil
}
