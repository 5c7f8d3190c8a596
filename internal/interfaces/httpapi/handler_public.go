package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/riskibarqy/hoopscheduler/internal/domain/game"
	"github.com/riskibarqy/hoopscheduler/internal/platform/etag"
)

func registerPublicRoutes(r chi.Router, h *Handler) {
	r.Route("/{tenant}", func(pr chi.Router) {
		pr.Get("/standings", h.PublicStandings)
		pr.Get("/schedule", h.PublicSchedule)
		pr.Get("/teams/{team}", h.PublicTeamDetail)
		pr.Get("/games/{game}", h.PublicGame)
		pr.Get("/calendar.ics", h.PublicCalendar)
	})
}

const publicCacheTTLSeconds = 300

func writePublicCacheHeaders(w http.ResponseWriter, maxAge int) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
}

// writeCachedJSON computes an ETag over payload, honors a matching
// If-None-Match with a 304, and otherwise writes the success envelope with
// cache headers attached.
func writeCachedJSON(w http.ResponseWriter, r *http.Request, maxAge int, payload any) {
	ctx := r.Context()

	tag, err := etag.Compute(payload)
	if err != nil {
		writeInternalError(ctx, w)
		return
	}
	writePublicCacheHeaders(w, maxAge)
	w.Header().Set("ETag", tag)

	if etag.Matches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, payload)
}

func (h *Handler) PublicStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublicStandings")
	defer span.End()

	q := r.URL.Query()
	out, err := h.publicSvc.Standings(ctx, pathParam(r, "tenant"), q.Get("season"), q.Get("division"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeCachedJSON(w, r, publicCacheTTLSeconds, out)
}

func publicScheduleFilter(r *http.Request) (game.Filter, error) {
	q := r.URL.Query()
	f := game.Filter{
		SeasonID: q.Get("season"),
		TeamID:   q.Get("team"),
		VenueID:  q.Get("venue"),
	}
	if q.Get("date_from") != "" {
		from, err := queryTime(r, "date_from")
		if err != nil {
			return game.Filter{}, err
		}
		f.DateFrom = from
	}
	if q.Get("date_to") != "" {
		to, err := queryTime(r, "date_to")
		if err != nil {
			return game.Filter{}, err
		}
		f.DateTo = to
	}
	limit, err := queryInt(r, "limit", 200)
	if err != nil {
		return game.Filter{}, err
	}
	if limit > 200 {
		limit = 200
	}
	f.Limit = limit
	return f, nil
}

func (h *Handler) PublicSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublicSchedule")
	defer span.End()

	f, err := publicScheduleFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.publicSvc.Schedule(ctx, pathParam(r, "tenant"), f)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeCachedJSON(w, r, publicCacheTTLSeconds, out)
}

func (h *Handler) PublicTeamDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublicTeamDetail")
	defer span.End()

	out, err := h.publicSvc.TeamDetail(ctx, pathParam(r, "tenant"), r.URL.Query().Get("season"), pathParam(r, "team"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeCachedJSON(w, r, publicCacheTTLSeconds, out)
}

func (h *Handler) PublicGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublicGame")
	defer span.End()

	out, err := h.publicSvc.Game(ctx, pathParam(r, "tenant"), pathParam(r, "game"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	maxAge := publicCacheTTLSeconds
	if out.Status == game.StatusCompleted {
		maxAge = int(time.Hour.Seconds())
	}
	writeCachedJSON(w, r, maxAge, out)
}

func (h *Handler) PublicCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublicCalendar")
	defer span.End()

	f, err := publicScheduleFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	body, err := h.publicSvc.Calendar(ctx, pathParam(r, "tenant"), f, r.URL.Query().Get("tz"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tag, err := etag.Compute(body)
	if err != nil {
		writeInternalError(ctx, w)
		return
	}
	writePublicCacheHeaders(w, publicCacheTTLSeconds)
	w.Header().Set("ETag", tag)
	if etag.Matches(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
