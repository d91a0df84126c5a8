package middleware

import (
	"net/http"

	"looview/pkg/requestcontext"
)

// LocaleNegotiator picks a supported locale from Accept-Language values.
type LocaleNegotiator interface {
	Negotiate(accept ...string) string
}

// Locale stores the negotiated locale on the request context and
// advertises it via Content-Language.
func Locale(n LocaleNegotiator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := n.Negotiate(r.Header.Values("Accept-Language")...)
			w.Header().Set("Content-Language", tag)
			next.ServeHTTP(w, r.WithContext(requestcontext.WithLocale(r.Context(), tag)))
		})
	}
}
