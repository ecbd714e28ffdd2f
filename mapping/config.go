package mapping

import (
	"fmt"

	"github.com/kbukum/restmapper/validation"
)

// Config is the mapping table: one map per operation kind from type name
// to Directive.
type Config struct {
	Insert map[string]Directive `json:"insert,omitempty" yaml:"insert,omitempty"`
	Update map[string]Directive `json:"update,omitempty" yaml:"update,omitempty"`
	Delete map[string]Directive `json:"delete,omitempty" yaml:"delete,omitempty"`
	Get    map[string]Directive `json:"get,omitempty" yaml:"get,omitempty"`
	List   map[string]Directive `json:"list,omitempty" yaml:"list,omitempty"`
	Assoc  map[string]Directive `json:"assoc,omitempty" yaml:"assoc,omitempty"`
}

// Normalize returns a deep copy of cfg with all six tables present.
// A nil cfg yields six empty tables. Directives are copied verbatim.
func Normalize(cfg *Config) Config {
	if cfg == nil {
		cfg = &Config{}
	}
	return Config{
		Insert: cloneTable(cfg.Insert),
		Update: cloneTable(cfg.Update),
		Delete: cloneTable(cfg.Delete),
		Get:    cloneTable(cfg.Get),
		List:   cloneTable(cfg.List),
		Assoc:  cloneTable(cfg.Assoc),
	}
}

func cloneTable(in map[string]Directive) map[string]Directive {
	out := make(map[string]Directive, len(in))
	for name, d := range in {
		out[name] = d.clone()
	}
	return out
}

// Table returns the type-name table for kind.
func (c Config) Table(kind Kind) map[string]Directive {
	switch kind {
	case KindInsert:
		return c.Insert
	case KindUpdate:
		return c.Update
	case KindDelete:
		return c.Delete
	case KindGet:
		return c.Get
	case KindList:
		return c.List
	case KindAssoc:
		return c.Assoc
	default:
		return nil
	}
}

// Lookup returns the directive for typeName under kind.
// ok is false when the type name is not mapped.
func (c Config) Lookup(kind Kind, typeName string) (Directive, bool) {
	d, ok := c.Table(kind)[typeName]
	return d, ok
}

// Len returns the number of mapped type names across all kinds.
func (c Config) Len() int {
	n := 0
	for _, k := range Kinds {
		n += len(c.Table(k))
	}
	return n
}

// Validate checks every directive for settings that can never take effect
// or cannot produce a valid request. Unknown type names are never errors.
func (c Config) Validate() error {
	v := validation.New()
	for _, kind := range Kinds {
		for name, d := range c.Table(kind) {
			d.validate(kind, v.Scope(fmt.Sprintf("%s[%s]", kind, name)))
		}
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
