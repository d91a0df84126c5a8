// Package handler exposes geocoding lookups and add-toilet form drafts
// over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"looview/internal/geocoding"
	"looview/internal/locale"
	"looview/internal/platform/metrics"
	"looview/internal/platform/middleware"
	dErrors "looview/pkg/domain-errors"
	"looview/pkg/platform/httputil"
	"looview/pkg/requestcontext"
)

// Resolver runs one-shot lookups.
type Resolver interface {
	ResolveAddress(ctx context.Context, p geocoding.Point, tr locale.Translator, sink geocoding.Sink) <-chan geocoding.Result
	ResolvePoint(ctx context.Context, address string, tr locale.Translator, sink geocoding.Sink) <-chan geocoding.Result
}

// Drafts owns open form sessions.
type Drafts interface {
	Open(ctx context.Context, tr locale.Translator, req geocoding.OpenRequest) (*geocoding.Session, <-chan geocoding.State)
	Get(id string) (*geocoding.Session, bool)
	Close(id string) bool
}

// Translations hands out a translator per locale tag.
type Translations interface {
	For(code string) locale.Translator
}

// Handler serves /geocode and /drafts.
type Handler struct {
	resolver     Resolver
	drafts       Drafts
	translations Translations
	logger       *slog.Logger
	metrics      *metrics.Metrics
	timeout      time.Duration
}

// New creates a geocoding Handler.
func New(resolver Resolver, drafts Drafts, translations Translations, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		resolver:     resolver,
		drafts:       drafts,
		translations: translations,
		logger:       logger,
		metrics:      metrics,
		timeout:      10 * time.Second,
	}
}

// Register registers the geocoding and draft routes.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.timeout))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.LatencyMiddleware(h.metrics))

		r.Post("/geocode/reverse", h.handleReverse)
		r.Post("/geocode/forward", h.handleForward)

		r.Post("/drafts", h.handleOpenDraft)
		r.Get("/drafts/{id}", h.handleGetDraft)
		r.Delete("/drafts/{id}", h.handleCloseDraft)
		r.Post("/drafts/{id}/map-click", h.handleMapClick)
		r.Post("/drafts/{id}/address", h.handleAddress)
		r.Post("/drafts/{id}/locate", h.handleLocate)
		r.Post("/drafts/{id}/photo", h.handleSetPhoto)
		r.Delete("/drafts/{id}/photo", h.handleClearPhoto)
	})
}

func (h *Handler) translator(ctx context.Context) locale.Translator {
	return h.translations.For(requestcontext.Locale(ctx))
}

func (h *Handler) handleReverse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PointRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	res, ok := awaitResult(ctx, h.resolver.ResolveAddress(ctx, req.Point(), h.translator(ctx), nil))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "geocode lookup timed out"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLookupResponse(res))
}

func (h *Handler) handleForward(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[AddressRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	res, ok := awaitResult(ctx, h.resolver.ResolvePoint(ctx, req.Address, h.translator(ctx), nil))
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "geocode lookup timed out"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toLookupResponse(res))
}

func (h *Handler) handleOpenDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[OpenDraftRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	sess, settled := h.drafts.Open(ctx, h.translator(ctx), req.toOpenRequest())
	h.logger.InfoContext(ctx, "draft opened",
		"request_id", middleware.GetRequestID(ctx),
		"draft_id", sess.ID(),
	)
	httputil.WriteJSON(w, http.StatusCreated, awaitState(ctx, sess, settled))
}

func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.Snapshot())
}

func (h *Handler) handleCloseDraft(w http.ResponseWriter, r *http.Request) {
	if !h.drafts.Close(chi.URLParam(r, "id")) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "draft not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMapClick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PointRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, awaitState(ctx, sess, sess.MapClick(ctx, req.Point())))
}

func (h *Handler) handleAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddressRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, awaitState(ctx, sess, sess.AddressBlur(ctx, req.Address)))
}

func (h *Handler) handleLocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[LocationReport](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, awaitState(ctx, sess, sess.Locate(ctx, req.Locator())))
}

func (h *Handler) handleSetPhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[PhotoRequest](w, r, h.logger, ctx, middleware.GetRequestID(ctx))
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.SetPhoto(req.FileName, req.ContentType, req.Size))
}

func (h *Handler) handleClearPhoto(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.ClearPhoto())
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*geocoding.Session, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	sess, ok := h.drafts.Get(id)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "draft not found"))
		return nil, false
	}
	return sess, true
}

func awaitResult(ctx context.Context, ch <-chan geocoding.Result) (geocoding.Result, bool) {
	select {
	case res, ok := <-ch:
		return res, ok
	case <-ctx.Done():
		return geocoding.Result{}, false
	}
}

// awaitState waits for the update to settle. If the request gives up
// first, the in-flight state is returned and the lookup still lands on
// the session.
func awaitState(ctx context.Context, sess *geocoding.Session, ch <-chan geocoding.State) geocoding.State {
	select {
	case st, ok := <-ch:
		if ok {
			return st
		}
	case <-ctx.Done():
	}
	return sess.Snapshot()
}
