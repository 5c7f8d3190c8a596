package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

func registerGameRoutes(r chi.Router, h *Handler) {
	r.Route("/games", func(gr chi.Router) {
		gr.Get("/", h.ListGames)
		gr.Get("/{gameID}", h.GetGame)
		gr.Post("/{gameID}/reschedule", h.RescheduleGame)
		gr.Post("/{gameID}/cancel", h.CancelGame)
		gr.Post("/{gameID}/result", h.RecordGameResult)
	})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	out, err := h.gameSvc.Get(ctx, tenantID, pathParam(r, "gameID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	q := r.URL.Query()
	f := game.Filter{
		SeasonID:   q.Get("season_id"),
		DivisionID: q.Get("division_id"),
		TeamID:     q.Get("team_id"),
		VenueID:    q.Get("venue_id"),
		Status:     game.Status(q.Get("status")),
	}
	if q.Get("date_from") != "" {
		from, err := queryTime(r, "date_from")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		f.DateFrom = from
	}
	if q.Get("date_to") != "" {
		to, err := queryTime(r, "date_to")
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		f.DateTo = to
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	f.Limit = limit

	out, err := h.gameSvc.List(ctx, tenantID, f)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

type rescheduleGameRequest struct {
	VenueID       string `json:"venue_id" validate:"required"`
	Start         string `json:"start" validate:"required"`
	BufferMinutes int    `json:"buffer_minutes"`
}

func (h *Handler) RescheduleGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RescheduleGame")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in rescheduleGameRequest
	if err := decodeJSON(w, r, h.validator, &in); err != nil {
		writeError(ctx, w, err)
		return
	}
	start, err := parseRFC3339(in.Start)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err))
		return
	}

	out, conflicts, err := h.gameSvc.Reschedule(ctx, tenantID, pathParam(r, "gameID"), in.VenueID, start, in.BufferMinutes)
	if err != nil {
		h.logger.WarnContext(ctx, "reschedule game failed", "game_id", pathParam(r, "gameID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"game":      out,
		"conflicts": conflicts,
	})
}

type cancelGameRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) CancelGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelGame")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in cancelGameRequest
	if err := decodeJSON(w, r, nil, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.gameSvc.Cancel(ctx, tenantID, pathParam(r, "gameID"), in.Reason)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

type recordGameResultRequest struct {
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
	Status    game.Status `json:"status" validate:"required"`
}

func (h *Handler) RecordGameResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGameResult")
	defer span.End()

	tenantID, ok := requirePrincipal(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing authenticated principal", usecase.ErrUnauthorized))
		return
	}

	var in recordGameResultRequest
	if err := decodeJSON(w, r, h.validator, &in); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.gameSvc.RecordResult(ctx, tenantID, pathParam(r, "gameID"), in.HomeScore, in.AwayScore, in.Status)
	if err != nil {
		h.logger.WarnContext(ctx, "record game result failed", "game_id", pathParam(r, "gameID"), "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
