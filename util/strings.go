package util

import (
	"net/http"
	"strings"
)

// Coalesce returns the first non-zero value, or the zero value if all are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// sensitiveHeaders are masked by MaskHeaders regardless of the extra names.
var sensitiveHeaders = map[string]bool{
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
	"Set-Cookie":          true,
	"X-Api-Key":           true,
}

// MaskHeaders returns a copy of headers with credential values masked for
// logging. extra names more headers to mask; names are compared in
// canonical form.
func MaskHeaders(headers map[string]string, extra ...string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	masked := make(map[string]bool, len(extra))
	for _, name := range extra {
		masked[http.CanonicalHeaderKey(name)] = true
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		ck := http.CanonicalHeaderKey(k)
		if sensitiveHeaders[ck] || masked[ck] {
			v = maskValue(v)
		}
		out[k] = v
	}
	return out
}

// maskValue replaces a credential with "***", keeping an auth scheme such
// as "Bearer " visible.
func maskValue(v string) string {
	if i := strings.IndexByte(v, ' '); i > 0 && i < 16 && i < len(v)-1 {
		return v[:i+1] + "***"
	}
	return "***"
}
