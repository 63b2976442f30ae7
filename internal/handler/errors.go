package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/internal/service"
	"github.com/BuzzLyutic/task-tracker/pkg/respond"
)

func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Validation(w, r, verr.Fields)
	case errors.Is(err, service.ErrConflict):
		respond.Error(w, r, http.StatusBadRequest, "Username already registered")
	case errors.Is(err, service.ErrUnauthorized):
		unauthorized(w, r, "Incorrect username or password")
	case errors.Is(err, service.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "Task not found")
	default:
		logger.Error("internal error", zap.Error(err), zap.String("path", r.URL.Path))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
