package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// registerInternalJobRoutes mounts the endpoints a cron/job-queue caller
// hits with the internal job token instead of a tenant bearer token, so
// tenant id travels in the path rather than a resolved principal.
func registerInternalJobRoutes(r chi.Router, h *Handler) {
	r.Route("/{tenant}/seasons/{seasonID}", func(sr chi.Router) {
		sr.Post("/schedule/generate", h.InternalGenerateSchedule)
		sr.Post("/schedule/publish", h.InternalPublishSchedule)
		sr.Post("/conflicts/recheck", h.InternalRecheckConflicts)
	})
}

func (h *Handler) InternalGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InternalGenerateSchedule")
	defer span.End()

	var in generateScheduleRequest
	if err := decodeJSON(w, r, h.validator, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.scheduleSvc.Generate(ctx, pathParam(r, "tenant"), pathParam(r, "seasonID"), in.Divisions, in.Params)
	if err != nil {
		h.logger.WarnContext(ctx, "internal job: generate schedule failed", "season_id", pathParam(r, "seasonID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) InternalPublishSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InternalPublishSchedule")
	defer span.End()

	out, err := h.scheduleSvc.Publish(ctx, pathParam(r, "tenant"), pathParam(r, "seasonID"))
	if err != nil {
		h.logger.WarnContext(ctx, "internal job: publish schedule failed", "season_id", pathParam(r, "seasonID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) InternalRecheckConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InternalRecheckConflicts")
	defer span.End()

	out, err := h.conflictSvc.CheckSeason(ctx, pathParam(r, "tenant"), pathParam(r, "seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
