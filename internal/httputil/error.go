package httputil

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Kaabero/Gambler-sub000/internal/pool"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	writeError(w, http.StatusBadRequest, msg)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	writeError(w, http.StatusNotFound, msg)
}

func Unauthorized(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("unauthorized", "message", msg, "error", err)
	} else {
		slog.Warn("unauthorized", "message", msg)
	}
	writeError(w, http.StatusUnauthorized, msg)
}

func Forbidden(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("forbidden", "message", msg, "error", err)
	} else {
		slog.Warn("forbidden", "message", msg)
	}
	writeError(w, http.StatusForbidden, msg)
}

// ServiceError maps a service-layer error onto the response status.
// A missing credential and an expired one both answer 401 but with
// distinct bodies, so a client can prompt re-login specifically.
func ServiceError(w http.ResponseWriter, msg string, err error) {
	var ve *pool.ValidationError
	switch {
	case errors.Is(err, pool.ErrBadCredential):
		Unauthorized(w, "invalid token", err)
	case errors.Is(err, pool.ErrExpiredCredential):
		Unauthorized(w, "token expired", err)
	case errors.Is(err, pool.ErrForbidden):
		Forbidden(w, "operation not allowed", err)
	case errors.As(err, &ve):
		BadRequest(w, ve.Reason, nil)
	case errors.Is(err, pool.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		NotFound(w, "record not found", err)
	default:
		InternalServerError(w, msg, err)
	}
}
