package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/domain/official"
	"github.com/riskibarqy/hoopscheduler/internal/officials"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerOfficialRoutes(r chi.Router, h *Handler) {
	r.Route("/officials", func(or chi.Router) {
		or.Post("/", h.CreateOfficial)
		or.Get("/", h.ListOfficials)
		or.Get("/{officialID}", h.GetOfficial)
		or.Put("/{officialID}", h.UpdateOfficial)
		or.Delete("/{officialID}", h.DeleteOfficial)
		or.Get("/{officialID}/availability", h.ListOfficialAvailability)
		or.Post("/{officialID}/availability", h.UpsertOfficialAvailability)
		or.Delete("/{officialID}/availability/{availabilityID}", h.DeleteOfficialAvailability)
		or.Get("/{officialID}/assignments", h.ListAssignmentsByOfficial)
	})
	r.Route("/assignments", func(ar chi.Router) {
		ar.Post("/{assignmentID}/confirm", h.ConfirmAssignment)
		ar.Post("/{assignmentID}/cancel", h.CancelAssignment)
	})
	r.Route("/seasons/{seasonID}", func(sr chi.Router) {
		sr.Post("/officials/optimize", h.OptimizeOfficials)
		sr.Get("/payroll", h.ExportPayroll)
	})
	r.Route("/games/{gameID}/assignments", func(gr chi.Router) {
		gr.Get("/", h.ListAssignmentsByGame)
	})
}

func (h *Handler) CreateOfficial(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateOfficial")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in official.Official
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.officialSvc.Create(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "create official failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) GetOfficial(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOfficial")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.officialSvc.Get(ctx, tenantID, pathParam(r, "officialID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListOfficials(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOfficials")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.officialSvc.List(ctx, tenantID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpdateOfficial(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateOfficial")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in official.Official
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.ID = pathParam(r, "officialID")

	out, err := h.officialSvc.Update(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "update official failed", "official_id", in.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteOfficial(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteOfficial")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.officialSvc.Delete(ctx, tenantID, pathParam(r, "officialID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusNoContent, nil)
}

func (h *Handler) ListOfficialAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOfficialAvailability")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.officialSvc.ListAvailability(ctx, tenantID, pathParam(r, "officialID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpsertOfficialAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertOfficialAvailability")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in official.Availability
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	in.OfficialID = pathParam(r, "officialID")

	out, err := h.officialSvc.UpsertAvailability(ctx, tenantID, in)
	if err != nil {
		h.logger.WarnContext(ctx, "upsert official availability failed", "official_id", in.OfficialID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) DeleteOfficialAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteOfficialAvailability")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	if err := h.officialSvc.DeleteAvailability(ctx, tenantID, pathParam(r, "availabilityID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusNoContent, nil)
}

func (h *Handler) ListAssignmentsByOfficial(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAssignmentsByOfficial")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.officialSvc.ListAssignmentsByOfficial(ctx, tenantID, pathParam(r, "officialID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListAssignmentsByGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAssignmentsByGame")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.officialSvc.ListAssignmentsByGame(ctx, tenantID, pathParam(r, "gameID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ConfirmAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmAssignment")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.officialSvc.ConfirmAssignment(ctx, tenantID, pathParam(r, "assignmentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelAssignment")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.officialSvc.CancelAssignment(ctx, tenantID, pathParam(r, "assignmentID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) OptimizeOfficials(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OptimizeOfficials")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	constraints := officials.DefaultConstraints()
	if r.ContentLength > 0 {
		if err := decodeJSON(w, r, nil, &constraints); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	out, err := h.officialSvc.Optimize(ctx, tenantID, pathParam(r, "seasonID"), constraints)
	if err != nil {
		h.logger.WarnContext(ctx, "optimize officials failed", "season_id", pathParam(r, "seasonID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportPayroll")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	from, err := queryTime(r, "from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.officialSvc.ExportPayroll(ctx, tenantID, pathParam(r, "seasonID"), from, to)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
