package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerConflictRoutes(r chi.Router, h *Handler) {
	r.Route("/seasons/{seasonID}/conflicts", func(cr chi.Router) {
		cr.Get("/", h.CheckSeasonConflicts)
		cr.Post("/check-slot", h.CheckSlotConflicts)
	})
}

func (h *Handler) CheckSeasonConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckSeasonConflicts")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.conflictSvc.CheckSeason(ctx, tenantID, pathParam(r, "seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

type checkSlotRequest struct {
	VenueID         string `json:"venue_id" validate:"required"`
	Start           string `json:"start" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

func (h *Handler) CheckSlotConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckSlotConflicts")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in checkSlotRequest
	if err := decodeJSON(w, r, h.validator, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	start, err := parseRFC3339(in.Start)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err))
		return
	}

	out, err := h.conflictSvc.CheckSlot(ctx, tenantID, pathParam(r, "seasonID"), in.VenueID, start, in.DurationMinutes)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
