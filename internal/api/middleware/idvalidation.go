// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvermaat/stock-trade-tracker/internal/api/response"
	"github.com/mvermaat/stock-trade-tracker/internal/validation"
)

// ValidateUUIDMiddleware validates that the uuid URL parameter is present and
// is a valid UUID. Returns 400 Bad Request if the ID is missing or invalid.
// Apply to routes that carry an account ID in the URL path.
func ValidateUUIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "uuid")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "valid UUID is required", "")
			return
		}

		if err := validation.ValidateUUID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ValidateTradeIDMiddleware validates that the id URL parameter is a positive
// integer. Trade IDs are store-assigned integers, not UUIDs.
func ValidateTradeIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "valid trade ID is required", "")
			return
		}

		if _, err := validation.ParseTradeID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid trade ID", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
