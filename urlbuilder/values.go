package urlbuilder

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/spf13/cast"
)

// stringify renders an entity value for a path segment or query value.
// Scalars use their shortest textual form; nested values are JSON-encoded.
func stringify(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		return jsonString(v)
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return jsonString(v)
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// queryBuilder encodes query parameters in insertion order.
type queryBuilder struct {
	b strings.Builder
}

func (q *queryBuilder) raw(s string) {
	if s == "" {
		return
	}
	if q.b.Len() > 0 {
		q.b.WriteByte('&')
	}
	q.b.WriteString(s)
}

func (q *queryBuilder) add(key string, v any) {
	rv := reflect.ValueOf(v)
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Type().Elem().Kind() != reflect.Uint8 {
		for i := 0; i < rv.Len(); i++ {
			q.raw(url.QueryEscape(key) + "=" + url.QueryEscape(stringify(rv.Index(i).Interface())))
		}
		return
	}
	q.raw(url.QueryEscape(key) + "=" + url.QueryEscape(stringify(v)))
}

func (q *queryBuilder) String() string {
	return q.b.String()
}
