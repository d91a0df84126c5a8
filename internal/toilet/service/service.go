package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"looview/internal/audit"
	"looview/internal/locale"
	"looview/internal/toilet/builder"
	"looview/internal/toilet/metrics"
	"looview/internal/toilet/models"
	"looview/internal/toilet/normalizer"
	"looview/internal/toilet/validation"
	"looview/pkg/attrs"
	"looview/pkg/domain"
	dErrors "looview/pkg/domain-errors"
	"looview/pkg/platform/sentinel"
	"looview/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/service-mocks.go -package=mocks Store,AuditPublisher,Translations

type Store interface {
	Read(ctx context.Context) ([]models.StoredRecord, error)
	Prepend(ctx context.Context, rec models.StoredRecord) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

type Translations interface {
	For(code string) locale.Translator
}

// Refusal reasons, used in metrics and audit events.
const (
	ReasonAuthPending  = "auth_pending"
	ReasonAuthRequired = "auth_required"
	ReasonValidation   = "validation"
	ReasonConflict     = "conflict"
	ReasonStore        = "store"
)

var (
	// ErrAuthPending means the identity check has not settled yet.
	ErrAuthPending = errors.New("authentication status pending")
	// ErrAuthRequired means no authenticated identity is present.
	ErrAuthRequired = errors.New("authentication required")
)

// Highlight sizes for the landing page.
const (
	RecentLimit   = 6
	TopRatedLimit = 3
	DirtiestLimit = 3
)

// SubmitResult is an accepted submission and its confirmation message.
type SubmitResult struct {
	Toilet  models.Toilet `json:"toilet"`
	Message string        `json:"message"`
}

// Highlights groups the landing page sections.
type Highlights struct {
	Recent     []models.Toilet `json:"recent"`
	TopRated   []models.Toilet `json:"topRated"`
	Dirtiest   []models.Toilet `json:"dirtiest"`
	WithPhotos []models.Toilet `json:"withPhotos"`
}

// Service runs the submission pipeline (auth gate, validation, build,
// prepend) and the normalized read path.
type Service struct {
	store          Store
	builder        *builder.Builder
	normalizer     *normalizer.Normalizer
	translations   Translations
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store Store, b *builder.Builder, n *normalizer.Normalizer, translations Translations, opts ...Option) *Service {
	s := &Service{
		store:        store,
		builder:      b,
		normalizer:   n,
		translations: translations,
		logger:       slog.Default(),
		tracer:       otel.Tracer("looview/toilet"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit turns a raw form payload into a stored toilet. Nothing is
// validated, built or stored unless a settled identity is present.
func (s *Service) Submit(ctx context.Context, raw models.RawSubmission) (*SubmitResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "toilet.submit")
	defer span.End()

	tr := s.translations.For(requestcontext.Locale(ctx))
	auth := requestcontext.Auth(ctx)
	switch {
	case auth.Loading:
		s.refuse(ctx, span, ReasonAuthPending, "")
		return nil, dErrors.Wrap(ErrAuthPending, dErrors.CodeUnavailable, tr.T("addToilet.toast.authPending", nil))
	case !auth.Authenticated():
		s.refuse(ctx, span, ReasonAuthRequired, "")
		return nil, dErrors.Wrap(ErrAuthRequired, dErrors.CodeUnauthorized, tr.T("addToilet.toast.authRequired", nil))
	}
	userID := auth.Identity.UserID

	sub, err := validation.Validate(raw, tr)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			for _, field := range verrs.Fields() {
				s.incrementValidationFailure(field)
			}
		}
		s.refuse(ctx, span, ReasonValidation, userID.String())
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid submission")
	}

	toilet := s.builder.Build(*sub, userID, tr)
	span.SetAttributes(attribute.String("toilet.id", toilet.ID.String()))

	if err := s.store.Prepend(ctx, normalizer.ToRecord(toilet)); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			s.refuse(ctx, span, ReasonConflict, userID.String())
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "toilet already exists")
		case errors.Is(err, sentinel.ErrUnavailable):
			s.refuse(ctx, span, ReasonStore, userID.String())
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "store unavailable")
		default:
			s.refuse(ctx, span, ReasonStore, userID.String())
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store toilet")
		}
	}

	s.logAudit(ctx, audit.EventToiletCreated, "toilet_submitted", toilet,
		"user_id", userID.String(),
		"toilet_id", toilet.ID.String(),
	)
	if s.metrics != nil {
		s.metrics.IncrementSubmitted()
		s.metrics.ObserveSubmit(start)
	}

	return &SubmitResult{
		Toilet:  toilet,
		Message: tr.T("addToilet.toast.added", map[string]any{"name": toilet.Name}),
	}, nil
}

// List returns every toilet, normalized, newest first.
func (s *Service) List(ctx context.Context) ([]models.Toilet, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "toilet.list")
	defer span.End()

	recs, err := s.store.Read(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, sentinel.ErrUnavailable) {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "store unavailable")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read toilets")
	}
	toilets := s.normalizer.NormalizeAll(recs)
	span.SetAttributes(attribute.Int("toilet.count", len(toilets)))
	if s.metrics != nil {
		s.metrics.ObserveList(start)
	}
	return toilets, nil
}

// Get returns one normalized toilet.
func (s *Service) Get(ctx context.Context, id domain.ToiletID) (*models.Toilet, error) {
	toilets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range toilets {
		if toilets[i].ID == id {
			return &toilets[i], nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "toilet not found")
}

// Highlights builds the landing page sections without reordering the
// underlying list.
func (s *Service) Highlights(ctx context.Context) (*Highlights, error) {
	toilets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildHighlights(toilets), nil
}

// BuildHighlights derives the landing sections from a newest-first list.
func BuildHighlights(toilets []models.Toilet) *Highlights {
	h := &Highlights{
		Recent:     head(toilets, RecentLimit),
		TopRated:   []models.Toilet{},
		Dirtiest:   []models.Toilet{},
		WithPhotos: []models.Toilet{},
	}

	ranked := append([]models.Toilet(nil), toilets...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageRating > ranked[j].AverageRating
	})
	h.TopRated = head(ranked, TopRatedLimit)

	for _, t := range toilets {
		if t.AverageRating == 1 && len(h.Dirtiest) < DirtiestLimit {
			h.Dirtiest = append(h.Dirtiest, t)
		}
		if t.HasPhotos() {
			h.WithPhotos = append(h.WithPhotos, t)
		}
	}
	return h
}

func head(toilets []models.Toilet, n int) []models.Toilet {
	if len(toilets) < n {
		n = len(toilets)
	}
	return append([]models.Toilet{}, toilets[:n]...)
}

func (s *Service) refuse(ctx context.Context, span trace.Span, reason, userID string) {
	span.SetStatus(codes.Error, reason)
	span.SetAttributes(attribute.String("submission.refused", reason))
	if s.metrics != nil {
		s.metrics.IncrementRefused(reason)
	}
	s.logAudit(ctx, audit.EventSubmissionRefused, "submission_refused", nil,
		"user_id", userID,
		"reason", reason,
	)
}

// logAudit writes the audit log line and publishes the matching event.
func (s *Service) logAudit(ctx context.Context, typ audit.EventType, event string, payload any, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	base := audit.Event{
		Type:      typ,
		Timestamp: requestcontext.Now(ctx),
		UserID:    attrs.ExtractString(attributes, "user_id"),
		ToiletID:  attrs.ExtractString(attributes, "toilet_id"),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: attrs.ExtractString(attributes, "request_id"),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to encode event payload", "event_type", string(typ), "error", err)
			return
		}
		base.Payload = data
	}
	if err := s.auditPublisher.Emit(ctx, base); err != nil {
		s.logger.WarnContext(ctx, "failed to emit event",
			"event_type", string(typ),
			"error", err,
		)
	}
}

func (s *Service) incrementValidationFailure(field string) {
	if s.metrics != nil {
		s.metrics.IncrementValidationFailure(field)
	}
}
