package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"looview/internal/geocoding"
	"looview/internal/locale"
	"looview/internal/platform/middleware"
	"looview/internal/toilet/handler/mocks"
	"looview/internal/toilet/models"
	"looview/internal/toilet/photo"
	"looview/internal/toilet/registry"
	"looview/internal/toilet/service"
	"looview/internal/toilet/validation"
	"looview/pkg/domain"
	dErrors "looview/pkg/domain-errors"
	"looview/pkg/testutil"
)

type ToiletHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	drafts  *geocoding.Sessions
	router  chi.Router
}

func TestToiletHandlerSuite(t *testing.T) {
	suite.Run(t, new(ToiletHandlerSuite))
}

func (s *ToiletHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.drafts = geocoding.NewSessions(geocoding.NewAdapter(nil), photo.New(), geocoding.Point{Lat: 51.5074, Lng: -0.1278})

	catalog := locale.Default()
	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Locale(catalog))
	New(s.service, s.drafts, catalog, logger, nil,
		WithMapDefaults(geocoding.Point{Lat: 52.37, Lng: 4.89}, "NL"),
	).Register(s.router)
}

func (s *ToiletHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ToiletHandlerSuite) TestConfigListsRegistries() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/config")
	req.Header.Set("Accept-Language", "nl")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)

	resp := testutil.UnmarshalResponse[ConfigResponse](s.T(), rr)
	s.Equal("nl", resp.Locale)
	s.Len(resp.Features, registry.Features.Len())
	s.Len(resp.ToiletTypes, registry.ToiletTypes.Len())
	s.Len(resp.QuickTags, registry.QuickTags.Len())
	s.Len(resp.LocationTypes, registry.LocationTypes.Len())
	s.Equal("Zeep", resp.Features[0].Label)
	s.Equal("Toiletpapier", resp.Features[1].Label)
	s.Equal("Paper towels", resp.Features[3].Label, "untranslated entries fall back to the registry label")
	s.Equal("NL", resp.CountryCode)
	s.Equal(geocoding.Point{Lat: 52.37, Lng: 4.89}, resp.MapCenter)
}

func (s *ToiletHandlerSuite) TestList() {
	s.service.EXPECT().List(gomock.Any()).Return([]models.Toilet{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/toilets"))
	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
	s.Equal(2, resp.Count)
	s.Equal(domain.ToiletID("a"), resp.Toilets[0].ID)
}

func (s *ToiletHandlerSuite) TestListStoreUnavailable() {
	s.service.EXPECT().List(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeUnavailable, "store unavailable"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/toilets"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "unavailable")
}

func (s *ToiletHandlerSuite) TestHighlightsRouteIsNotAnID() {
	s.service.EXPECT().Highlights(gomock.Any()).Return(&service.Highlights{}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/toilets/highlights"))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *ToiletHandlerSuite) TestGet() {
	s.service.EXPECT().Get(gomock.Any(), domain.ToiletID("abc")).Return(&models.Toilet{ID: "abc", Name: "Found"}, nil)
	s.service.EXPECT().Get(gomock.Any(), domain.ToiletID("nope")).Return(nil, dErrors.New(dErrors.CodeNotFound, "toilet not found"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/toilets/abc"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "name", "Found")

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/toilets/nope"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")

	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/toilets/bad%20id"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *ToiletHandlerSuite) TestSubmitAccepted() {
	s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, raw models.RawSubmission) (*service.SubmitResult, error) {
		s.Equal("Station Loo", raw.Name)
		s.Equal(51.5, raw.Latitude)
		return &service.SubmitResult{Toilet: models.Toilet{ID: "t-1", Name: raw.Name}, Message: "Station Loo has been successfully added to LooView."}, nil
	})

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/toilets", map[string]any{
		"name": "Station Loo", "latitude": 51.5, "longitude": -0.1, "wheelchairAccessible": "no", "rating": 3,
	})
	rr := testutil.DoRequest(s.router, testutil.WithUserID(req, "user-1"))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)
	testutil.AssertJSONContains(s.T(), rr, "message", "Station Loo has been successfully added to LooView.")
}

func (s *ToiletHandlerSuite) TestSubmitRefusals() {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no identity", dErrors.Wrap(service.ErrAuthRequired, dErrors.CodeUnauthorized, "You must be logged in to add a toilet."), http.StatusUnauthorized, "auth_required"},
		{"auth pending", dErrors.Wrap(service.ErrAuthPending, dErrors.CodeUnavailable, "Authentication status is loading…"), http.StatusServiceUnavailable, "auth_pending"},
		{"conflict", dErrors.New(dErrors.CodeConflict, "toilet already exists"), http.StatusConflict, "conflict"},
		{"internal", dErrors.New(dErrors.CodeInternal, "boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/toilets", map[string]any{"name": "x"}))
			testutil.AssertStatusAndError(s.T(), rr, tt.status, tt.code)
		})
	}
}

func (s *ToiletHandlerSuite) TestSubmitValidationFields() {
	verrs := validation.Errors{}
	verrs.Add("name", "Name must be at least 3 characters.")
	verrs.Add("rating", "Please select a rating.")
	s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, dErrors.Wrap(verrs, dErrors.CodeValidation, "invalid submission"))

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/toilets", map[string]any{"name": "ab"}))
	testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
	fields := testutil.UnmarshalFieldErrors(s.T(), rr)
	s.Equal([]string{"Name must be at least 3 characters."}, fields["name"])
	s.Contains(fields, "rating")
}

func (s *ToiletHandlerSuite) TestSubmitMalformedBody() {
	rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/toilets", "{not json"))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
}

func (s *ToiletHandlerSuite) openDraft() *geocoding.Session {
	start := geocoding.Point{Lat: 52.3731, Lng: 4.8926}
	sess, settled := s.drafts.Open(context.Background(), locale.Default().For("en"), geocoding.OpenRequest{Start: &start, Address: "Dam 1, Amsterdam"})
	select {
	case <-settled:
	case <-time.After(time.Second):
		s.T().Fatal("draft did not settle")
	}
	return sess
}

func (s *ToiletHandlerSuite) TestSubmitDraftMergesAndCloses() {
	sess := s.openDraft()
	pv := sess.SetPhoto("loo.jpg", "image/jpeg", 10)

	s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, raw models.RawSubmission) (*service.SubmitResult, error) {
		s.Equal(52.3731, raw.Latitude)
		s.Equal(4.8926, raw.Longitude)
		s.Equal("Dam 1, Amsterdam", raw.Address)
		s.Equal(pv.Photo.Ref, raw.Photo)
		return &service.SubmitResult{Toilet: models.Toilet{ID: "t-1"}}, nil
	})

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/drafts/"+sess.ID()+"/submit", map[string]any{"name": "Dam Loo"}))
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	_, open := s.drafts.Get(sess.ID())
	s.False(open)
}

func (s *ToiletHandlerSuite) TestSubmitDraftRefusedKeepsDraft() {
	sess := s.openDraft()
	s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, dErrors.Wrap(service.ErrAuthRequired, dErrors.CodeUnauthorized, "log in"))

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/drafts/"+sess.ID()+"/submit", map[string]any{"name": "Dam Loo"}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "auth_required")

	_, open := s.drafts.Get(sess.ID())
	s.True(open)
}

func (s *ToiletHandlerSuite) TestSubmitUnknownDraft() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/drafts/missing/submit", map[string]any{}))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func TestMergeDraftKeepsTypedAddress(t *testing.T) {
	raw := MergeDraft(models.RawSubmission{Address: "Typed", Photo: "https://example.com/p.jpg"}, geocoding.State{
		Marker:  geocoding.Point{Lat: 1, Lng: 2},
		Address: "Resolved",
		Photo:   &photo.Preview{Ref: "blob:x"},
	})
	assert.Equal(t, "Typed", raw.Address)
	assert.Equal(t, "https://example.com/p.jpg", raw.Photo)
	assert.Equal(t, 1.0, raw.Latitude)
}
