// Route registration and go-chi router setup, split into public routes
// (/health, /auth/*) and JWT-protected routes (/api/v1/*).
package api

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mgarrido/chatforge/internal/api/handlers"
	apmiddleware "github.com/mgarrido/chatforge/internal/api/middleware"
	"github.com/mgarrido/chatforge/internal/domain/activity"
	domainauth "github.com/mgarrido/chatforge/internal/domain/auth"
	"github.com/mgarrido/chatforge/internal/domain/chat"
	"github.com/mgarrido/chatforge/internal/domain/project"
	"github.com/mgarrido/chatforge/internal/infra/config"
	"github.com/mgarrido/chatforge/internal/infra/eventbus"
	"github.com/mgarrido/chatforge/internal/infra/llm"
)

// NewRouter creates and configures a chi router with all routes. The
// provider was selected once from cfg by llm.New; every chat turn goes
// through it.
func NewRouter(db *sql.DB, cfg *config.Config, provider llm.Provider) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Activity log: auth and chat publish entries on the bus, the recorder
	// persists them off the request path.
	bus := eventbus.New()
	recorder := activity.NewRecorder(db)
	go recorder.Start(context.Background(), bus)

	projectService := project.NewService(db)
	sessionStore := chat.NewSessionStore(db)
	assembler := chat.NewAssembler(projectService, sessionStore)
	orchestrator := chat.NewOrchestratorWithBus(projectService, sessionStore, assembler, provider, bus)

	authHandler := handlers.NewAuthHandler(domainauth.NewServiceWithBus(db, bus))

	// ===== PUBLIC ROUTES (no auth required) =====

	// Health check — unauthenticated, used by load balancers and health probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register) // POST /auth/register
		r.Post("/login", authHandler.Login)       // POST /auth/login
	})

	// ===== PROTECTED ROUTES (JWT required via AuthMiddleware) =====

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apmiddleware.AuthMiddleware)

		projectHandler := handlers.NewProjectHandler(projectService)
		promptHandler := handlers.NewPromptHandler(projectService)
		sessionHandler := handlers.NewSessionHandler(projectService, sessionStore)
		chatHandler := handlers.NewChatHandler(orchestrator)
		providerHandler := handlers.NewProviderHandler(cfg, provider)
		activityHandler := handlers.NewActivityHandler(recorder)

		r.Get("/users/me", authHandler.Me) // GET /api/v1/users/me

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", projectHandler.CreateProject)       // POST /api/v1/projects
			r.Get("/", projectHandler.ListProjects)         // GET /api/v1/projects
			r.Get("/{id}", projectHandler.GetProject)       // GET /api/v1/projects/{id}
			r.Put("/{id}", projectHandler.UpdateProject)    // PUT /api/v1/projects/{id}
			r.Delete("/{id}", projectHandler.DeleteProject) // DELETE /api/v1/projects/{id}

			r.Post("/{id}/prompts", promptHandler.CreatePrompt)  // POST /api/v1/projects/{id}/prompts
			r.Get("/{id}/prompts", promptHandler.ListPrompts)    // GET /api/v1/projects/{id}/prompts
			r.Get("/{id}/sessions", sessionHandler.ListSessions) // GET /api/v1/projects/{id}/sessions
		})

		r.Delete("/prompts/{id}", promptHandler.DeletePrompt)         // DELETE /api/v1/prompts/{id}
		r.Get("/sessions/{id}/messages", sessionHandler.ListMessages) // GET /api/v1/sessions/{id}/messages

		r.Post("/chat", chatHandler.Chat)                 // POST /api/v1/chat
		r.Get("/provider/status", providerHandler.Status) // GET /api/v1/provider/status
		r.Get("/activity", activityHandler.ListActivity)  // GET /api/v1/activity
	})

	return r
}
