package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

// AuthedHandlerFunc is a handler that runs on behalf of an authenticated user.
type AuthedHandlerFunc func(w http.ResponseWriter, r *http.Request, user model.User)

type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (model.User, error)
}

// AuthMiddleware resolves the bearer token once per request and hands the
// user to the wrapped handler. Every auth failure is the same 401.
type AuthMiddleware struct {
	resolver IdentityResolver
	logger   *zap.Logger
}

func NewAuthMiddleware(resolver IdentityResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver, logger: logger}
}

func (m *AuthMiddleware) Require(next AuthedHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, r, "Could not validate credentials")
			return
		}

		user, err := m.resolver.Resolve(r.Context(), token)
		if errors.Is(err, service.ErrUnauthorized) {
			unauthorized(w, r, "Could not validate credentials")
			return
		}
		if err != nil {
			m.logger.Error("resolve identity", zap.Error(err))
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		next(w, r, user)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respond.Error(w, r, http.StatusUnauthorized, message)
}

// RequestLogger пишет access log через zap
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("took", time.Since(start)),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
