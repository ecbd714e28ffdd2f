package mapping

import (
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/restmapper/validation"
)

// Directive configures how one type name is turned into a request.
// Every field is optional.
type Directive struct {
	// Method overrides the operation kind's default HTTP method.
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// Append names the entity field appended as the last path segment
	// (update, delete, get). Omitted means "id"; null disables the segment.
	Append Field `json:"append,omitzero" yaml:"append,omitempty"`
	// Insert names the entity field whose value is spliced right after the
	// first occurrence of the field name in the path (get, list, assoc).
	Insert string `json:"insert,omitempty" yaml:"insert,omitempty"`
	// RewriteURL replaces the type name as the path template.
	RewriteURL string `json:"rewriteUrl,omitempty" yaml:"rewriteUrl,omitempty"`
	// Query lists entity fields lifted into query parameters, in order (get, list).
	Query []string `json:"query,omitempty" yaml:"query,omitempty"`
	// Data names the entity field serialized as the request body (assoc).
	Data string `json:"data,omitempty" yaml:"data,omitempty"`
}

// UnmarshalYAML decodes a directive, keeping `append: null` distinct from
// an omitted append key.
func (d *Directive) UnmarshalYAML(node *yaml.Node) error {
	type plain struct {
		Method     string   `yaml:"method"`
		Insert     string   `yaml:"insert"`
		RewriteURL string   `yaml:"rewriteUrl"`
		Query      []string `yaml:"query"`
		Data       string   `yaml:"data"`
	}
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*d = Directive{
		Method:     p.Method,
		Insert:     p.Insert,
		RewriteURL: p.RewriteURL,
		Query:      p.Query,
		Data:       p.Data,
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "append" {
			return d.Append.decodeFieldNode(node.Content[i+1])
		}
	}
	return nil
}

// clone returns a copy that shares no slices with d.
func (d Directive) clone() Directive {
	d.Query = slices.Clone(d.Query)
	return d
}

// validate reports settings of d that cannot take effect under kind or
// cannot produce a valid request.
func (d Directive) validate(kind Kind, s *validation.Scope) {
	s.Method("method", d.Method)
	if d.Append.State() == FieldExplicit {
		s.Required("append", d.Append.Name())
	}
	if d.Append.State() != FieldDefault {
		s.AppliesTo(kind.Appends(), "append", kindNames(Kind.Appends)...)
	}
	if d.Insert != "" {
		s.AppliesTo(kind.Inserts(), "insert", kindNames(Kind.Inserts)...)
	}
	if len(d.Query) > 0 {
		s.AppliesTo(kind.Queries(), "query", kindNames(Kind.Queries)...)
	}
	s.Each("query", d.Query, func(s *validation.Scope, field, value string) {
		s.Required(field, value)
	})
	if d.Data != "" {
		s.AppliesTo(kind == KindAssoc, "data", KindAssoc.String())
	}
}

// kindNames lists the kinds for which has holds, in declaration order.
func kindNames(has func(Kind) bool) []string {
	var names []string
	for _, k := range Kinds {
		if has(k) {
			names = append(names, k.String())
		}
	}
	return names
}
