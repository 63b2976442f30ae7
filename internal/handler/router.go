package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

type RouterDeps struct {
	Auth   *service.AuthService
	Tasks  *service.TaskService
	Ping   func(ctx context.Context) error
	Logger *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth, deps.Logger)
	taskHandler := NewTaskHandler(deps.Tasks, deps.Logger)
	authed := NewAuthMiddleware(deps.Auth, deps.Logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ping != nil {
			if err := deps.Ping(r.Context()); err != nil {
				deps.Logger.Error("health check failed", zap.Error(err))
				respond.JSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/register", authHandler.Register)
	r.Post("/token", authHandler.Login)

	r.Get("/tasks/", taskHandler.ListPublic)

	r.Post("/tasks/auth/", authed.Require(taskHandler.Create))
	r.Get("/tasks/auth/", authed.Require(taskHandler.ListOwn))
	r.Get("/tasks/auth/{id}", authed.Require(taskHandler.Get))
	r.Put("/tasks/auth/{id}", authed.Require(taskHandler.Update))
	r.Delete("/tasks/auth/{id}", authed.Require(taskHandler.Delete))

	return r
}
