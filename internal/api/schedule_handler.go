package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/dayplan-api/internal/api/shared"
	"github.com/phrazzld/dayplan-api/internal/domain"
	"github.com/phrazzld/dayplan-api/internal/platform/logger"
	"github.com/phrazzld/dayplan-api/internal/service/schedule"
)

// ScheduleHandler handles calendar placement requests.
type ScheduleHandler struct {
	scheduleService schedule.Service
	logger          *slog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService schedule.Service, logger *slog.Logger) *ScheduleHandler {
	if scheduleService == nil {
		panic("scheduleService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleHandler{
		scheduleService: scheduleService,
		logger:          logger.With(slog.String("component", "schedule_handler")),
	}
}

// decodeAndValidate reads the JSON body into req and validates it, writing
// a 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, log *slog.Logger, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		log.Debug("invalid request format", slog.String("error", err.Error()))
		HandleAPIError(w, r, domain.ErrValidation, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("request validation failed", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, SanitizeValidationError(err))
		return false
	}
	return true
}

// AssignSpecific handles POST /api/users/{userID}/assign-specific.
func (h *ScheduleHandler) AssignSpecific(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authorizeCalendarOwner(w, r, log)
	if !ok {
		return
	}

	var req AssignSpecificRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.scheduleService.AssignSpecific(r.Context(), userID, schedule.AssignSpecificRequest{
		Date:    date,
		SlotIdx: *req.SlotIdx,
		Task:    req.Task.toDomain(),
		Source:  domain.Source(req.Source),
	})
	if err != nil {
		log.Debug("assign specific failed",
			slog.String("date", req.Date),
			slog.Int("slot_idx", *req.SlotIdx),
			slog.String("task_id", req.Task.ID))
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task assigned to slot",
		slog.String("date", result.Date.String()),
		slog.Int("slot_idx", result.SlotIdx),
		slog.String("task_id", result.TaskID),
		slog.Bool("carried", result.Carried != nil))

	shared.RespondWithJSON(w, r, http.StatusOK, AssignSpecificResponse{
		OK:                true,
		PlacementResponse: *placementToResponse(&result.Placement),
		Carried:           placementToResponse(result.Carried),
	})
}

// AssignFirstFree handles POST /api/users/{userID}/assign-first-free.
func (h *ScheduleHandler) AssignFirstFree(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authorizeCalendarOwner(w, r, log)
	if !ok {
		return
	}

	var req AssignFirstFreeRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}
	from, err := parseDateField("dateFrom", req.DateFrom)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	placement, err := h.scheduleService.AssignFirstFree(r.Context(), userID, from, req.Task.toDomain())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("task assigned to first free slot",
		slog.String("date", placement.Date.String()),
		slog.Int("slot_idx", placement.SlotIdx),
		slog.String("task_id", placement.TaskID))

	shared.RespondWithJSON(w, r, http.StatusOK, AssignFirstFreeResponse{
		OK:                true,
		PlacementResponse: *placementToResponse(placement),
	})
}

// Promote handles POST /api/users/{userID}/promote.
func (h *ScheduleHandler) Promote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authorizeCalendarOwner(w, r, log)
	if !ok {
		return
	}

	var req PromoteRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	result, err := h.scheduleService.PromoteTask(r.Context(), userID, req.TaskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PromoteResponse{
		OK:      true,
		Swapped: result.Swapped,
		From:    placementToResponse(result.From),
		To:      placementToResponse(result.To),
	})
}

// GenerateSkeleton handles POST /api/users/{userID}/skeleton.
func (h *ScheduleHandler) GenerateSkeleton(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authorizeCalendarOwner(w, r, log)
	if !ok {
		return
	}

	var req SkeletonRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}
	until, err := parseDateField("until", req.Until)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	created, err := h.scheduleService.GenerateSkeleton(r.Context(), userID, until)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SkeletonResponse{
		OK:      true,
		Created: datesToStrings(created),
	})
}

// ListDays handles GET /api/users/{userID}/days?from=YYYY-MM-DD&to=YYYY-MM-DD.
// to is optional.
func (h *ScheduleHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := authorizeCalendarOwner(w, r, log)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := parseDateField("from", query.Get("from"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var to domain.Date
	if raw := query.Get("to"); raw != "" {
		if to, err = parseDateField("to", raw); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
	}

	days, err := h.scheduleService.ListDays(r.Context(), userID, from, to)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := ListDaysResponse{OK: true, Days: make([]DayResponse, 0, len(days))}
	for _, d := range days {
		resp.Days = append(resp.Days, dayToResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
