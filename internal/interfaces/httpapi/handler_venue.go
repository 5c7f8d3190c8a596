package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/domain/venue"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerVenueRoutes(r chi.Router, h *Handler) {
	r.Route("/venues", func(vr chi.Router) {
		vr.Post("/", h.CreateVenue)
		vr.Get("/", h.ListVenues)
		vr.Get("/{venueID}", h.GetVenue)
		vr.Put("/{venueID}", h.UpdateVenue)
		vr.Delete("/{venueID}", h.DeleteVenue)
		vr.Get("/{venueID}/availability", h.ListVenueAvailability)
		vr.Post("/{venueID}/availability", h.UpsertVenueAvailability)
		vr.Delete("/{venueID}/availability/{availabilityID}", h.DeleteVenueAvailability)
	})
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateVenue")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in venue.Venue
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.venueSvc.Create(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "create venue failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVenue")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.venueSvc.Get(ctx, tenantID, pathParam(r, "venueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenues")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.venueSvc.List(ctx, tenantID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateVenue")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in venue.Venue
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.ID = pathParam(r, "venueID")

	out, err := h.venueSvc.Update(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "update venue failed", "venue_id", in.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteVenue")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.venueSvc.Delete(ctx, tenantID, pathParam(r, "venueID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusNoContent, nil)
}

func (h *Handler) ListVenueAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVenueAvailability")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.venueSvc.ListAvailability(ctx, tenantID, pathParam(r, "venueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpsertVenueAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertVenueAvailability")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in venue.Availability
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.VenueID = pathParam(r, "venueID")

	out, err := h.venueSvc.UpsertAvailability(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "upsert venue availability failed", "venue_id", in.VenueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteVenueAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteVenueAvailability")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.venueSvc.DeleteAvailability(ctx, tenantID, pathParam(r, "availabilityID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusNoContent, nil)
}
