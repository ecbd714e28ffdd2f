package urlbuilder

import (
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/kbukum/restmapper/codec"
	"github.com/kbukum/restmapper/errors"
	"github.com/kbukum/restmapper/mapping"
)

// DefaultAppendField is the entity field appended when a directive does not
// override append.
const DefaultAppendField = "id"

// Builder builds request descriptors from a mapping configuration.
type Builder struct {
	base         *url.URL
	mapping      mapping.Config
	translations mapping.TranslationMap
	codec        codec.Codec
	headers      map[string]string
}

// Option configures a Builder.
type Option func(*Builder)

// WithTranslations sets the placeholder table applied to every template.
func WithTranslations(t mapping.TranslationMap) Option {
	return func(b *Builder) {
		b.translations = t.Clone()
	}
}

// WithCodec sets the body codec. Defaults to codec.JSON.
func WithCodec(c codec.Codec) Option {
	return func(b *Builder) {
		if c != nil {
			b.codec = c
		}
	}
}

// WithHeaders adds headers to every descriptor. They override the codec's
// Content-Type and Accept defaults.
func WithHeaders(h map[string]string) Option {
	return func(b *Builder) {
		maps.Copy(b.headers, h)
	}
}

// New creates a Builder for baseURL. The mapping is normalized and copied,
// so later changes to cfg do not affect the builder.
func New(baseURL string, cfg mapping.Config, opts ...Option) (*Builder, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.InvalidConfig(fmt.Sprintf("invalid base URL %q", baseURL)).WithCause(err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.InvalidConfig(fmt.Sprintf("base URL %q must be absolute", baseURL))
	}
	base.Fragment = ""

	b := &Builder{
		base:         base,
		mapping:      mapping.Normalize(&cfg),
		translations: mapping.TranslationMap{},
		codec:        codec.JSON,
		headers:      map[string]string{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// BaseURL returns the base URL the builder resolves paths against.
func (b *Builder) BaseURL() string {
	return b.base.String()
}

// Codec returns the body codec.
func (b *Builder) Codec() codec.Codec {
	return b.codec
}

// Insert builds an insert descriptor. The whole entity is the body.
func (b *Builder) Insert(typeName string, entity mapping.Entity) (*Request, bool, error) {
	return b.Build(mapping.KindInsert, typeName, entity)
}

// Update builds an update descriptor. The whole entity is the body.
func (b *Builder) Update(typeName string, entity mapping.Entity) (*Request, bool, error) {
	return b.Build(mapping.KindUpdate, typeName, entity)
}

// Delete builds a delete descriptor without a body.
func (b *Builder) Delete(typeName string, entity mapping.Entity) (*Request, bool, error) {
	return b.Build(mapping.KindDelete, typeName, entity)
}

// Get builds a get descriptor without a body.
func (b *Builder) Get(typeName string, entity mapping.Entity) (*Request, bool, error) {
	return b.Build(mapping.KindGet, typeName, entity)
}

// List builds a list descriptor without a body.
func (b *Builder) List(typeName string, entity mapping.Entity) (*Request, bool, error) {
	return b.Build(mapping.KindList, typeName, entity)
}

// Assoc builds an association descriptor. The body is the entity's data
// field, or explicitly empty when the directive names none.
func (b *Builder) Assoc(typeName string, entity mapping.Entity) (*Request, bool, error) {
	return b.Build(mapping.KindAssoc, typeName, entity)
}

// Build resolves the directive for typeName under kind and builds the
// descriptor. ok is false when the type name is not mapped; err is only set
// when the body cannot be serialized.
func (b *Builder) Build(kind mapping.Kind, typeName string, entity mapping.Entity) (req *Request, ok bool, err error) {
	d, ok := b.mapping.Lookup(kind, typeName)
	if !ok {
		return nil, false, nil
	}

	template := typeName
	if d.RewriteURL != "" {
		template = d.RewriteURL
	}
	template = b.translations.Apply(template)

	p := &pathBuilder{}
	p.addEscaped(b.base.EscapedPath())
	tail := b.insert(kind, d, template, entity, p)
	p.addTemplate(tail)

	if kind.Appends() {
		if field, enabled := d.Append.Resolve(DefaultAppendField); enabled {
			if v, present := entity.Lookup(field); present {
				p.addValue(stringify(v))
			}
		}
	}

	u := *b.base
	setPath(&u, p.String())

	q := &queryBuilder{}
	q.raw(b.base.RawQuery)
	if kind.Queries() {
		for _, field := range d.Query {
			if v, present := entity.Lookup(field); present {
				q.add(field, v)
			}
		}
	}
	u.RawQuery = q.String()

	req = &Request{
		Kind:     kind,
		TypeName: typeName,
		Method:   kind.DefaultMethod(),
		URL:      u.String(),
		Headers:  b.defaultHeaders(),
	}
	if d.Method != "" {
		req.Method = d.Method
	}

	if err := b.setBody(req, kind, d, entity); err != nil {
		return nil, true, err
	}
	return req, true, nil
}

// insert splices "/<field>/<value>/" in place of the first occurrence of
// the insert field in template. The part up to the value goes into p and the
// remainder is returned.
func (b *Builder) insert(kind mapping.Kind, d mapping.Directive, template string, entity mapping.Entity, p *pathBuilder) string {
	if !kind.Inserts() || d.Insert == "" {
		return template
	}
	v, present := entity.Lookup(d.Insert)
	if !present {
		return template
	}
	before, after, found := strings.Cut(template, d.Insert)
	if !found {
		return template
	}
	p.addTemplate(before + "/" + d.Insert)
	p.addValue(stringify(v))
	return "/" + after
}

func (b *Builder) setBody(req *Request, kind mapping.Kind, d mapping.Directive, entity mapping.Entity) error {
	var payload any
	switch kind {
	case mapping.KindInsert, mapping.KindUpdate:
		if entity == nil {
			entity = mapping.Entity{}
		}
		payload = entity
	case mapping.KindAssoc:
		req.HasBody = true
		if d.Data == "" {
			return nil
		}
		v, present := entity.Lookup(d.Data)
		if !present {
			return nil
		}
		payload = v
	default:
		return nil
	}

	body, err := b.codec.Marshal(payload)
	if err != nil {
		return errors.InvalidInput("entity", fmt.Sprintf("cannot encode %s body: %v", b.codec.Name(), err)).WithCause(err)
	}
	req.Body = body
	req.HasBody = true
	return nil
}

func (b *Builder) defaultHeaders() map[string]string {
	h := make(map[string]string, len(b.headers)+2)
	h["Content-Type"] = b.codec.ContentType()
	h["Accept"] = b.codec.ContentType()
	maps.Copy(h, b.headers)
	return h
}
