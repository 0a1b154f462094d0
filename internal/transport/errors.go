package transport

import (
	"errors"
	"net/http"

	"vibe-cart/internal/middleware"
	"vibe-cart/internal/repository"
	"vibe-cart/internal/service"

	"go.uber.org/zap"
)

// respondWithServiceError maps service and repository errors onto HTTP
// statuses and envelope codes. Storage failures are logged and hidden behind a
// generic message.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, action string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		middleware.RespondWithCode(w, http.StatusBadRequest, middleware.CodeEmptyCart, err.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, repository.ErrInvalidQuantity):
		logger.Debug(action+" rejected", zap.Error(err))
		middleware.RespondWithCode(w, http.StatusBadRequest, middleware.CodeValidationFailed, err.Error())
	case errors.Is(err, service.ErrNotFound):
		middleware.RespondWithCode(w, http.StatusNotFound, notFoundCode(err), err.Error())
	case errors.Is(err, repository.ErrStorage):
		logger.Error(action+" failed", zap.Error(err))
		middleware.RespondWithCode(w, http.StatusInternalServerError, middleware.CodeStorageFailure, "failed to "+action)
	default:
		logger.Error(action+" failed", zap.Error(err))
		middleware.RespondWithCode(w, http.StatusInternalServerError, middleware.CodeInternalError, "failed to "+action)
	}
}

func notFoundCode(err error) string {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return middleware.CodeProductNotFound
	case errors.Is(err, service.ErrCartItemNotFound):
		return middleware.CodeCartItemNotFound
	case errors.Is(err, repository.ErrOrderNotFound):
		return middleware.CodeOrderNotFound
	default:
		return middleware.CodeNotFound
	}
}

// respondWithDecodeError answers a body that failed to decode or validate
func respondWithDecodeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	if errors.Is(err, middleware.ErrEmptyBody) {
		middleware.RespondWithCode(w, http.StatusBadRequest, middleware.CodeInvalidBody, "request body is required")
		return
	}

	middleware.RespondWithCode(w, http.StatusBadRequest, middleware.CodeInvalidBody, "invalid request body")
}
