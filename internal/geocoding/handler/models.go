package handler

import (
	"strings"

	"looview/internal/geocoding"
	dErrors "looview/pkg/domain-errors"
)

// PointRequest is a coordinate in a request body.
type PointRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func (r *PointRequest) Validate() error {
	if r.Lat == nil || r.Lng == nil {
		return dErrors.New(dErrors.CodeBadRequest, "lat and lng are required")
	}
	if !r.Point().Valid() {
		return dErrors.New(dErrors.CodeBadRequest, "coordinates out of range")
	}
	return nil
}

func (r *PointRequest) Point() geocoding.Point {
	var p geocoding.Point
	if r.Lat != nil {
		p.Lat = *r.Lat
	}
	if r.Lng != nil {
		p.Lng = *r.Lng
	}
	return p
}

// AddressRequest carries free-text address input. Blank input is allowed
// and resolves to no result.
type AddressRequest struct {
	Address string `json:"address"`
}

func (r *AddressRequest) Validate() error {
	r.Address = strings.TrimSpace(r.Address)
	return nil
}

// LocationReport is what the client device reported when asked for its
// position.
type LocationReport struct {
	Position    *geocoding.Point `json:"position,omitempty"`
	Error       string           `json:"error,omitempty"`
	Unsupported bool             `json:"unsupported,omitempty"`
}

func (r *LocationReport) Locator() geocoding.Locator {
	return geocoding.ReportedLocator{Point: r.Position, Err: r.Error, Unsupported: r.Unsupported}
}

// OpenDraftRequest starts a form session. With no start point the
// device report decides the centre; with neither, the default centre is
// used.
type OpenDraftRequest struct {
	Start    *geocoding.Point `json:"start,omitempty"`
	Address  string           `json:"address,omitempty"`
	Location *LocationReport  `json:"location,omitempty"`
}

func (r *OpenDraftRequest) Validate() error {
	if r.Start != nil && !r.Start.Valid() {
		return dErrors.New(dErrors.CodeBadRequest, "start coordinates out of range")
	}
	r.Address = strings.TrimSpace(r.Address)
	return nil
}

func (r *OpenDraftRequest) toOpenRequest() geocoding.OpenRequest {
	req := geocoding.OpenRequest{Start: r.Start, Address: r.Address}
	if r.Location != nil {
		req.Locator = r.Location.Locator()
	}
	return req
}

// PhotoRequest selects a local image for preview.
type PhotoRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

func (r *PhotoRequest) Validate() error {
	r.FileName = strings.TrimSpace(r.FileName)
	if r.FileName == "" {
		return dErrors.New(dErrors.CodeBadRequest, "fileName is required")
	}
	if r.ContentType != "" && !strings.HasPrefix(r.ContentType, "image/") {
		return dErrors.New(dErrors.CodeBadRequest, "only images can be previewed")
	}
	if r.Size < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "size must not be negative")
	}
	return nil
}

// LookupResponse is the body of /geocode/* responses.
type LookupResponse struct {
	Status         geocoding.Status `json:"status"`
	Message        string           `json:"message"`
	Address        string           `json:"address,omitempty"`
	Point          *geocoding.Point `json:"point,omitempty"`
	CountryCode    string           `json:"countryCode,omitempty"`
	ProviderStatus string           `json:"providerStatus,omitempty"`
}

func toLookupResponse(res geocoding.Result) LookupResponse {
	out := LookupResponse{
		Status:         res.Status,
		Message:        res.Feedback.Message,
		ProviderStatus: res.ProviderStatus,
	}
	if res.Place != nil {
		pt := res.Place.Point
		out.Address = res.Place.Address
		out.Point = &pt
		out.CountryCode = res.Place.CountryCode
	}
	return out
}
