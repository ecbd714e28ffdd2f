package httpclient

import (
	"maps"
	"net/http"
)

// Request is a fully built outbound request. The URL is absolute and the
// body is already encoded; the adapter sends both as-is.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE, etc).
	Method string
	// URL is the absolute request URL, query string included.
	URL string
	// Headers are request-specific headers. They override Config.Headers.
	Headers map[string]string
	// Body is the encoded request body.
	Body []byte
	// HasBody reports whether a body is sent at all. A request with
	// HasBody set and a nil Body carries an empty body.
	HasBody bool
}

// Response is the raw result of an exchange. Status codes are not
// interpreted; every status the server answers with is a Response.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, first value per name.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Header returns the first value of a response header.
func (r *Response) Header(name string) string {
	return r.Headers[http.CanonicalHeaderKey(name)]
}

func mergeHeaders(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	maps.Copy(out, base)
	maps.Copy(out, override)
	return out
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
