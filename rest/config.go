package rest

import (
	"net/http"

	"github.com/kbukum/restmapper/codec"
	apperrors "github.com/kbukum/restmapper/errors"
	"github.com/kbukum/restmapper/httpclient"
	"github.com/kbukum/restmapper/mapping"
	"github.com/kbukum/restmapper/validation"
)

const defaultName = "rest"

// Config configures a Client.
//
// Mapping and Translations are case sensitive and therefore never read
// through viper; load them from MappingFile and TranslationsFile or set them
// programmatically. Programmatic entries win over file entries.
type Config struct {
	// Name identifies the client in logs and in a component.Registry.
	Name string `yaml:"name" mapstructure:"name" json:"name"`
	// BaseURL is the absolute URL every mapped path is resolved against.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" json:"base_url" validate:"required,url"`
	// MappingFile is a YAML or JSON mapping document.
	MappingFile string `yaml:"mapping_file" mapstructure:"mapping_file" json:"mapping_file"`
	// Mapping holds directives set in code.
	Mapping mapping.Config `yaml:"-" mapstructure:"-" json:"-"`
	// TranslationsFile is a flat YAML or JSON object of placeholder values.
	TranslationsFile string `yaml:"translations_file" mapstructure:"translations_file" json:"translations_file"`
	// Translations holds placeholder values set in code.
	Translations mapping.TranslationMap `yaml:"-" mapstructure:"-" json:"-"`
	// Headers are added to every request. They override the codec's
	// Content-Type and Accept.
	Headers map[string]string `yaml:"headers" mapstructure:"headers" json:"headers"`
	// SecretHeaders names headers masked in debug logs in addition to
	// Authorization, Cookie and X-Api-Key.
	SecretHeaders []string `yaml:"secret_headers" mapstructure:"secret_headers" json:"secret_headers"`
	// Codec selects the body format: json (default) or msgpack.
	Codec string `yaml:"codec" mapstructure:"codec" json:"codec" validate:"omitempty,oneof=json msgpack"`
	// RequestIDHeader, when set, carries a fresh request ID on every call.
	RequestIDHeader string `yaml:"request_id_header" mapstructure:"request_id_header" json:"request_id_header"`
	// HTTP configures the default transport.
	HTTP httpclient.Config `yaml:"http" mapstructure:"http" json:"-"`
}

// ApplyDefaults fills in the client name, codec and transport defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Codec == "" {
		c.Codec = codec.NameJSON
	}
	if c.HTTP.Name == "" {
		c.HTTP.Name = c.Name + "-http"
	}
	c.HTTP.ApplyDefaults()
}

// Validate checks the struct constraints, the transport settings and the
// programmatic mapping.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.RequestIDHeader != "" && !validHeaderName(c.RequestIDHeader) {
		return apperrors.InvalidConfig("request_id_header: invalid header name " + c.RequestIDHeader)
	}
	for name := range c.Headers {
		if !validHeaderName(name) {
			return apperrors.InvalidConfig("headers: invalid header name " + name)
		}
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	return c.Mapping.Validate()
}

// resolve loads the file-backed mapping and translations and overlays the
// programmatic ones.
func (c *Config) resolve() (mapping.Config, mapping.TranslationMap, error) {
	m := mapping.Normalize(nil)
	if c.MappingFile != "" {
		loaded, err := mapping.LoadFile(c.MappingFile)
		if err != nil {
			return mapping.Config{}, nil, err
		}
		if err := loaded.Validate(); err != nil {
			return mapping.Config{}, nil, err
		}
		m = loaded
	}
	m = m.Merge(c.Mapping)

	tr := mapping.TranslationMap{}
	if c.TranslationsFile != "" {
		loaded, err := mapping.LoadTranslationsFile(c.TranslationsFile)
		if err != nil {
			return mapping.Config{}, nil, err
		}
		tr = loaded
	}
	for k, v := range c.Translations {
		tr[k] = v
	}
	return m, tr, nil
}

// canonicalHeaders returns h with canonical header keys. Viper hands keys
// over lower-cased, which would otherwise sit next to the codec defaults.
func canonicalHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[http.CanonicalHeaderKey(k)] = v
	}
	return out
}

func validHeaderName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r <= ' ' || r >= 0x7f || r == ':' {
			return false
		}
	}
	return true
}
