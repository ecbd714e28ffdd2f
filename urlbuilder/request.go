package urlbuilder

import (
	"maps"

	"github.com/kbukum/restmapper/mapping"
)

// Request is a fully resolved request descriptor.
type Request struct {
	Kind     mapping.Kind
	TypeName string
	Method   string
	URL      string
	Headers  map[string]string
	// Body is the serialized body. It is only meaningful when HasBody is set.
	Body []byte
	// HasBody distinguishes "no body" (delete, get, list) from an explicitly
	// empty body (assoc without data).
	HasBody bool
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	out := *r
	out.Headers = maps.Clone(r.Headers)
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return &out
}
