package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/domain/division"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerDivisionRoutes(r chi.Router, h *Handler) {
	r.Route("/seasons/{seasonID}/divisions", func(dr chi.Router) {
		dr.Post("/", h.CreateDivision)
		dr.Get("/", h.ListDivisions)
	})
	r.Route("/divisions", func(dr chi.Router) {
		dr.Get("/{divisionID}", h.GetDivision)
		dr.Put("/{divisionID}", h.UpdateDivision)
		dr.Delete("/{divisionID}", h.DeleteDivision)
	})
}

func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDivision")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in division.Division
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.SeasonID = pathParam(r, "seasonID")

	out, err := h.divisionSvc.Create(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "create division failed", "season_id", in.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) GetDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDivision")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.divisionSvc.Get(ctx, tenantID, pathParam(r, "divisionID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDivisions")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.divisionSvc.ListBySeason(ctx, tenantID, pathParam(r, "seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDivision")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in division.Division
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.ID = pathParam(r, "divisionID")

	out, err := h.divisionSvc.Update(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "update division failed", "division_id", in.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDivision")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.divisionSvc.Delete(ctx, tenantID, pathParam(r, "divisionID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusNoContent, nil)
}
