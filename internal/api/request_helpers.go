package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/dayplan-api/internal/api/shared"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
)

// UserIDParam is the path parameter naming the calendar owner.
const UserIDParam = "userID"

// getUserIDFromContext extracts the authenticated user's UUID from the request context.
// The user ID is placed in the context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// authorizeCalendarOwner returns the user ID of the calendar addressed by the
// path, after checking that it belongs to the authenticated user. It writes
// the error response and returns false when either check fails.
func authorizeCalendarOwner(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	if log == nil {
		log = logger.FromContextOrDefault(r.Context(), slog.Default())
	}

	authUserID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}

	pathUserID, err := getPathUUID(r, UserIDParam)
	if err != nil {
		log.Warn("invalid "+UserIDParam, slog.String("value", chi.URLParam(r, UserIDParam)))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}

	if pathUserID != authUserID {
		log.Warn("token subject does not own the calendar",
			slog.String("path_user_id", pathUserID.String()))
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return uuid.Nil, false
	}

	return pathUserID, true
}

// parseDateField parses a YYYY-MM-DD value, reporting failures as a
// validation error on field.
func parseDateField(field, value string) (domain.Date, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, domain.NewValidationError(field, "must be a YYYY-MM-DD date", domain.ErrInvalidDate)
	}
	return d, nil
}
