package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldState tells how a Field was configured.
type FieldState uint8

const (
	// FieldDefault means the key was omitted; the operation default applies.
	FieldDefault FieldState = iota
	// FieldExplicit means a field name was configured.
	FieldExplicit
	// FieldSuppressed means the key was set to null to disable the behavior.
	FieldSuppressed
)

// Field is an optional entity field name that distinguishes "omitted" from
// "explicitly disabled". The zero value is FieldDefault.
type Field struct {
	state FieldState
	name  string
}

// Explicit returns a Field naming the given entity field.
func Explicit(name string) Field {
	return Field{state: FieldExplicit, name: name}
}

// Suppressed returns a Field that disables the behavior it configures.
func Suppressed() Field {
	return Field{state: FieldSuppressed}
}

// State returns how the field was configured.
func (f Field) State() FieldState { return f.state }

// Name returns the configured field name; empty unless the state is FieldExplicit.
func (f Field) Name() string { return f.name }

// IsZero reports whether the field was omitted.
func (f Field) IsZero() bool { return f.state == FieldDefault }

// Resolve returns the field name to use, falling back to def when the
// field was omitted. ok is false when the field is suppressed.
func (f Field) Resolve(def string) (name string, ok bool) {
	switch f.state {
	case FieldExplicit:
		return f.name, true
	case FieldSuppressed:
		return "", false
	default:
		return def, true
	}
}

// String implements fmt.Stringer.
func (f Field) String() string {
	switch f.state {
	case FieldExplicit:
		return f.name
	case FieldSuppressed:
		return "<suppressed>"
	default:
		return "<default>"
	}
}

// MarshalJSON encodes a suppressed field as null and an explicit one as its name.
func (f Field) MarshalJSON() ([]byte, error) {
	if f.state == FieldExplicit {
		return json.Marshal(f.name)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes null as FieldSuppressed and a string as FieldExplicit.
func (f *Field) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Suppressed()
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("mapping: field must be a string or null: %w", err)
	}
	*f = Explicit(name)
	return nil
}

// MarshalYAML encodes a suppressed field as null and an explicit one as its name.
func (f Field) MarshalYAML() (any, error) {
	if f.state == FieldExplicit {
		return f.name, nil
	}
	return nil, nil
}

// UnmarshalYAML decodes a string node as FieldExplicit.
// yaml.v3 never calls unmarshalers for null nodes, so Directive inspects the
// raw node to detect explicit nulls (see decodeFieldNode).
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	return f.decodeFieldNode(node)
}

func (f *Field) decodeFieldNode(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		*f = Suppressed()
		return nil
	}
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("mapping: line %d: field must be a string or null", node.Line)
	}
	*f = Explicit(node.Value)
	return nil
}
