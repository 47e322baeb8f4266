package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mstrand/todoapi/internal/auth"
	"github.com/mstrand/todoapi/internal/handler"
	"github.com/mstrand/todoapi/internal/middleware"
	"github.com/mstrand/todoapi/internal/store"
	"github.com/mstrand/todoapi/internal/token"
)

type Server struct {
	db      *sql.DB
	authSvc *auth.Service
	userH   *handler.UserHandler
	todoH   *handler.TodoHandler
	logger  *slog.Logger
}

func New(db *sql.DB, tokenSecret []byte, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	todoStore := store.NewTodoStore(db)
	tokenStore := store.NewTokenStore(db)

	signer := token.NewSigner(tokenSecret)
	authSvc := auth.NewService(userStore, tokenStore, signer)

	return &Server{
		db:      db,
		authSvc: authSvc,
		userH:   handler.NewUserHandler(authSvc, logger.With("component", "user")),
		todoH:   handler.NewTodoHandler(todoStore, logger.With("component", "todo")),
		logger:  logger,
	}
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes: registration and login are the only ways in without
	// a token.
	outerMux.HandleFunc("POST /users", s.userH.Register)
	outerMux.HandleFunc("POST /users/login", s.userH.Login)
	outerMux.HandleFunc("GET /health", s.healthHandler)

	// Everything else sits behind the auth gate.
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /todos", s.todoH.List)
	protectedMux.HandleFunc("POST /todos", s.todoH.Create)
	protectedMux.HandleFunc("GET /todos/{id}", s.todoH.Get)
	protectedMux.HandleFunc("PUT /todos/{id}", s.todoH.Update)
	protectedMux.HandleFunc("DELETE /todos/{id}", s.todoH.Delete)
	protectedMux.HandleFunc("DELETE /users/login", s.userH.Logout)

	authMiddleware := middleware.RequireAuth(s.authSvc)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
