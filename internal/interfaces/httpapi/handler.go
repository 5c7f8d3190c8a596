package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/hoopscheduler/internal/platform/logging"
	"github.com/riskibarqy/hoopscheduler/internal/usecase"
)

// Handler wires every tenant-facing use case into its HTTP surface. Route
// registration and handler methods live together in the per-resource
// handler_*.go files.
type Handler struct {
	seasonSvc    *usecase.SeasonService
	divisionSvc  *usecase.DivisionService
	blackoutSvc  *usecase.BlackoutService
	venueSvc     *usecase.VenueService
	officialSvc  *usecase.OfficialService
	scheduleSvc  *usecase.ScheduleUsecase
	gameSvc      *usecase.GameService
	conflictSvc  *usecase.ConflictService
	publicSvc    *usecase.PublicService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(
	seasonSvc *usecase.SeasonService,
	divisionSvc *usecase.DivisionService,
	blackoutSvc *usecase.BlackoutService,
	venueSvc *usecase.VenueService,
	officialSvc *usecase.OfficialService,
	scheduleSvc *usecase.ScheduleUsecase,
	gameSvc *usecase.GameService,
	conflictSvc *usecase.ConflictService,
	publicSvc *usecase.PublicService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonSvc:   seasonSvc,
		divisionSvc: divisionSvc,
		blackoutSvc: blackoutSvc,
		venueSvc:    venueSvc,
		officialSvc: officialSvc,
		scheduleSvc: scheduleSvc,
		gameSvc:     gameSvc,
		conflictSvc: conflictSvc,
		publicSvc:   publicSvc,
		logger:      logger,
		validator:   validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// decodeJSON reads and validates a JSON request body against dst's
// validate tags, capping the body at 1MiB to bound memory per request.
func decodeJSON(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && err != io.EOF {
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err)
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be RFC3339", usecase.ErrInvalidInput, name)
	}
	return t, nil
}

func parseRFC3339(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(raw))
}

func requirePrincipal(ctx context.Context) (tenantID string, ok bool) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return "", false
	}
	return p.TenantID, true
}
