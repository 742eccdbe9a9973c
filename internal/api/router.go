package api

import (
	"net/http"
	"time"

	"quizzical/internal/api/handler"
	"quizzical/internal/api/middleware"
	"quizzical/internal/app/service"
	"quizzical/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(
	cfg *config.Config,
	authService *service.AuthService,
	questionService *service.QuestionService,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	authHandler := handler.NewAuthHandler(authService, cfg.SelfURL)
	questionHandler := handler.NewQuestionHandler(questionService)

	// Public listing endpoints read the question store directly.
	r.Get("/uses", questionHandler.Uses)
	r.Get("/subjects", questionHandler.Subjects)

	// Public self-check; it re-authenticates as the first stored user by
	// calling back into this server over HTTP.
	r.Get("/test", authHandler.Test)

	// Everything else sits behind Basic auth.
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.BasicAuth(authService))

		protected.Get("/login", authHandler.Login)

		protected.Group(func(read chi.Router) {
			if cfg.EnforcePermissions {
				read.Use(middleware.RequireRead)
			}
			read.Get("/ask", questionHandler.Ask)
		})

		protected.Group(func(write chi.Router) {
			if cfg.EnforcePermissions {
				write.Use(middleware.RequireWrite)
			}
			write.Put("/add", questionHandler.Add)
		})
	})

	return r
}
