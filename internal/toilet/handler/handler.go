package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"looview/internal/geocoding"
	"looview/internal/locale"
	"looview/internal/platform/metrics"
	"looview/internal/platform/middleware"
	"looview/internal/toilet/models"
	"looview/internal/toilet/registry"
	"looview/internal/toilet/service"
	"looview/pkg/domain"
	dErrors "looview/pkg/domain-errors"
	"looview/pkg/platform/httputil"
	"looview/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/toilet-mocks.go -package=mocks Service

// Service defines the toilet operations the HTTP layer needs.
type Service interface {
	Submit(ctx context.Context, raw models.RawSubmission) (*service.SubmitResult, error)
	List(ctx context.Context) ([]models.Toilet, error)
	Get(ctx context.Context, id domain.ToiletID) (*models.Toilet, error)
	Highlights(ctx context.Context) (*service.Highlights, error)
}

// Drafts gives access to open add-toilet form sessions.
type Drafts interface {
	Get(id string) (*geocoding.Session, bool)
	Close(id string) bool
}

// Translations hands out a translator per locale tag.
type Translations interface {
	For(code string) locale.Translator
	Supported() []string
}

// Handler handles the toilet endpoints.
type Handler struct {
	toilets      Service
	drafts       Drafts
	translations Translations
	logger       *slog.Logger
	metrics      *metrics.Metrics
	mapCenter    geocoding.Point
	countryCode  string
}

type Option func(*Handler)

// WithMapDefaults sets the defaults advertised by GET /config.
func WithMapDefaults(center geocoding.Point, countryCode string) Option {
	return func(h *Handler) {
		h.mapCenter = center
		h.countryCode = countryCode
	}
}

// New creates a toilet Handler.
func New(toilets Service, drafts Drafts, translations Translations, logger *slog.Logger, metrics *metrics.Metrics, opts ...Option) *Handler {
	h := &Handler{
		toilets:      toilets,
		drafts:       drafts,
		translations: translations,
		logger:       logger,
		metrics:      metrics,
		countryCode:  "GB",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the toilet routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.LatencyMiddleware(h.metrics))

		r.Get("/config", h.handleConfig)
		r.Get("/toilets", h.handleList)
		r.Get("/toilets/highlights", h.handleHighlights)
		r.Get("/toilets/{id}", h.handleGet)
		r.Post("/toilets", h.handleSubmit)
		r.Post("/drafts/{id}/submit", h.handleSubmitDraft)
	})
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	tr := h.translations.For(requestcontext.Locale(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, ConfigResponse{
		Locale:               tr.Locale(),
		Locales:              h.translations.Supported(),
		Features:             localize(tr, registry.Features),
		ToiletTypes:          localize(tr, registry.ToiletTypes),
		QuickTags:            localize(tr, registry.QuickTags),
		QuickTagCategories:   localize(tr, registry.QuickTagCategories),
		LocationTypes:        localize(tr, registry.LocationTypes),
		AccessibilityOptions: localize(tr, registry.AccessibilityOptions),
		MapCenter:            h.mapCenter,
		CountryCode:          h.countryCode,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	toilets, err := h.toilets.List(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list toilets", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Toilets: toilets, Count: len(toilets)})
}

func (h *Handler) handleHighlights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	highlights, err := h.toilets.Highlights(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to build highlights", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, highlights)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseToiletID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	toilet, err := h.toilets.Get(ctx, id)
	if err != nil {
		h.fail(ctx, w, "failed to load toilet", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toilet)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw, ok := httputil.DecodeAndPrepare[models.RawSubmission](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	h.submit(ctx, w, *raw)
}

// handleSubmitDraft submits the form body merged with the draft's marker,
// address and photo. The draft is closed once the toilet is stored.
func (h *Handler) handleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	draft, found := h.drafts.Get(id)
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "draft not found"))
		return
	}
	raw, ok := httputil.DecodeAndPrepare[models.RawSubmission](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	merged := MergeDraft(*raw, draft.Snapshot())
	if h.submit(ctx, w, merged) {
		h.drafts.Close(id)
	}
}

func (h *Handler) submit(ctx context.Context, w http.ResponseWriter, raw models.RawSubmission) bool {
	res, err := h.toilets.Submit(ctx, raw)
	switch {
	case err == nil:
		httputil.WriteJSON(w, http.StatusCreated, res)
		return true
	case errors.Is(err, service.ErrAuthRequired):
		httputil.WriteErrorAs(w, err, service.ReasonAuthRequired)
	case errors.Is(err, service.ErrAuthPending):
		httputil.WriteErrorAs(w, err, service.ReasonAuthPending)
	case dErrors.HasCode(err, dErrors.CodeValidation):
		h.logger.InfoContext(ctx, "submission rejected",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
	default:
		h.fail(ctx, w, "failed to submit toilet", err)
	}
	return false
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
