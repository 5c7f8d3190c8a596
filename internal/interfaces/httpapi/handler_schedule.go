package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/scheduler"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerScheduleRoutes(r chi.Router, h *Handler) {
	r.Route("/seasons/{seasonID}/schedule", func(sr chi.Router) {
		sr.Post("/generate", h.GenerateSchedule)
		sr.Get("/preview", h.PreviewSchedule)
		sr.Post("/publish", h.PublishSchedule)
	})
}

type generateScheduleRequest struct {
	Divisions []scheduler.Division `json:"divisions" validate:"required,min=1"`
	Params    scheduler.Params     `json:"params"`
}

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateSchedule")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in generateScheduleRequest
	if err := decodeJSON(w, r, h.validator, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.scheduleSvc.Generate(ctx, tenantID, pathParam(r, "seasonID"), in.Divisions, in.Params)
	if err != nil {
		h.logger.WarnContext(ctx, "generate schedule failed", "season_id", pathParam(r, "seasonID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewSchedule")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, ready, err := h.scheduleSvc.Preview(ctx, tenantID, pathParam(r, "seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"result": out,
		"ready":  ready,
	})
}

func (h *Handler) PublishSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishSchedule")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.scheduleSvc.Publish(ctx, tenantID, pathParam(r, "seasonID"))
	if err != nil {
		h.logger.WarnContext(ctx, "publish schedule failed", "season_id", pathParam(r, "seasonID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}
