package testutil

import (
	"net/http"

	"looview/pkg/domain"
	"looview/pkg/requestcontext"
)

// WithUserID marks the request as authenticated for userID with the plain
// user role. Invalid ids leave the request anonymous.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := domain.ParseUserID(userID)
	if err != nil {
		return req
	}
	return WithIdentity(req, domain.Identity{UserID: parsed, Role: domain.RoleUser})
}

// WithIdentity stands in for the auth middleware on a valid bearer token.
func WithIdentity(req *http.Request, identity domain.Identity) *http.Request {
	return req.WithContext(requestcontext.WithIdentity(req.Context(), identity))
}
