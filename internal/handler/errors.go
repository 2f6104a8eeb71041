package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/YVINAY2005/task-manager/internal/repo"
	"github.com/YVINAY2005/task-manager/internal/service"
	"github.com/YVINAY2005/task-manager/internal/token"
	"github.com/YVINAY2005/task-manager/pkg/respond"
)

type fieldErrorsResponse struct {
	Success bool                 `json:"success"`
	Errors  []service.FieldError `json:"errors"`
}

// handleErrors - единая точка перевода ошибок сервисов в HTTP-ответы
func handleErrors(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respond.JSON(w, r, http.StatusBadRequest, fieldErrorsResponse{Success: false, Errors: verr.Fields})
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "Task not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		respond.Error(w, r, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, token.ErrInvalidToken), errors.Is(err, token.ErrExpiredToken):
		respond.Error(w, r, http.StatusUnauthorized, "Not authorized to access this route")
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "Server error")
	}
}
