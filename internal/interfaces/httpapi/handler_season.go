package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/domain/season"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerSeasonRoutes(r chi.Router, h *Handler) {
	r.Route("/seasons", func(sr chi.Router) {
		sr.Post("/", h.CreateSeason)
		sr.Get("/", h.ListSeasons)
		sr.Get("/{seasonID}", h.GetSeason)
		sr.Put("/{seasonID}", h.UpdateSeason)
		sr.Delete("/{seasonID}", h.DeleteSeason)
	})
}

func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeason")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in season.Season
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.seasonSvc.Create(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "create season failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) GetSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeason")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.seasonSvc.Get(ctx, tenantID, pathParam(r, "seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	f := season.Filter{
		LeagueID: r.URL.Query().Get("league_id"),
		Status:   season.Status(r.URL.Query().Get("status")),
	}
	out, err := h.seasonSvc.List(ctx, tenantID, f)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeason")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in season.Season
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.ID = pathParam(r, "seasonID")

	out, err := h.seasonSvc.Update(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "update season failed", "season_id", in.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeason")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.seasonSvc.Delete(ctx, tenantID, pathParam(r, "seasonID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusNoContent, nil)
}
