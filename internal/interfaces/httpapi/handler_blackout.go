package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/domain/blackout"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerBlackoutRoutes(r chi.Router, h *Handler) {
	r.Route("/seasons/{seasonID}/blackouts", func(br chi.Router) {
		br.Post("/", h.CreateBlackout)
		br.Get("/", h.ListBlackouts)
	})
	r.Route("/blackouts", func(br chi.Router) {
		br.Get("/{blackoutID}", h.GetBlackout)
		br.Put("/{blackoutID}", h.UpdateBlackout)
		br.Delete("/{blackoutID}", h.DeleteBlackout)
	})
}

func (h *Handler) CreateBlackout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateBlackout")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in blackout.BlackoutDate
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.SeasonID = pathParam(r, "seasonID")

	out, err := h.blackoutSvc.Create(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "create blackout failed", "season_id", in.SeasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) GetBlackout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBlackout")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.blackoutSvc.Get(ctx, tenantID, pathParam(r, "blackoutID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListBlackouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBlackouts")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.blackoutSvc.ListBySeason(ctx, tenantID, pathParam(r, "seasonID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateBlackout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateBlackout")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in blackout.BlackoutDate
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.ID = pathParam(r, "blackoutID")

	out, err := h.blackoutSvc.Update(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "update blackout failed", "blackout_id", in.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteBlackout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteBlackout")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.blackoutSvc.Delete(ctx, tenantID, pathParam(r, "blackoutID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusNoContent, nil)
}
