package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/restmapper/mapping"
)

// As decodes a result returned by the client into T, matching struct fields
// by their json tags. Numbers, RFC 3339 timestamps and durations are
// converted as needed.
//
//	v, err := client.Get(ctx, "video", mapping.Entity{"id": 3})
//	video, err := rest.As[Video](v)
func As[T any](v any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return out, fmt.Errorf("rest: decoder for %T: %w", out, err)
	}
	if err := dec.Decode(v); err != nil {
		return out, fmt.Errorf("rest: decode result into %T: %w", out, err)
	}
	return out, nil
}

// Call runs one operation and decodes a successful result into T.
func Call[T any](ctx context.Context, c *Client, kind mapping.Kind, typeName string, entity mapping.Entity) (T, error) {
	v, err := c.Do(ctx, kind, typeName, entity).Unwrap()
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](v)
}
