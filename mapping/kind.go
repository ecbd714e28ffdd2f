package mapping

import (
	"fmt"
	"net/http"
)

// Kind is an abstract operation kind.
type Kind int

const (
	// KindInsert creates an entity.
	KindInsert Kind = iota
	// KindUpdate modifies an entity.
	KindUpdate
	// KindDelete removes an entity.
	KindDelete
	// KindGet retrieves one entity.
	KindGet
	// KindList retrieves a collection.
	KindList
	// KindAssoc associates entities.
	KindAssoc
)

// Kinds lists every operation kind in declaration order.
var Kinds = []Kind{KindInsert, KindUpdate, KindDelete, KindGet, KindList, KindAssoc}

// String returns the configuration key of the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	case KindGet:
		return "get"
	case KindList:
		return "list"
	case KindAssoc:
		return "assoc"
	default:
		return "unknown"
	}
}

// DefaultMethod returns the HTTP method used when a directive does not override it.
func (k Kind) DefaultMethod() string {
	switch k {
	case KindInsert, KindAssoc:
		return http.MethodPost
	case KindUpdate:
		return http.MethodPut
	case KindDelete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// Appends reports whether the kind ends its path with an append segment.
func (k Kind) Appends() bool {
	return k == KindUpdate || k == KindDelete || k == KindGet
}

// Inserts reports whether the kind honors the insert directive.
func (k Kind) Inserts() bool {
	return k == KindGet || k == KindList || k == KindAssoc
}

// Queries reports whether the kind lifts entity fields into the query string.
func (k Kind) Queries() bool {
	return k == KindGet || k == KindList
}

// ParseKind parses a configuration key into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("mapping: unknown operation kind %q", s)
}
