package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/restmapper/errors"
)

// Parse decodes a YAML (or JSON) mapping document and normalizes it.
func Parse(data []byte) (Config, error) {
	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.InvalidConfig("mapping: " + err.Error()).WithCause(err)
	}
	return Normalize(&raw), nil
}

// LoadFile reads and parses the mapping document at path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.InvalidConfig(fmt.Sprintf("mapping: read %s", path)).WithCause(err)
	}
	return Parse(data)
}

// ParseTranslations decodes a flat YAML (or JSON) object of placeholder
// names to values. Keys keep their case.
func ParseTranslations(data []byte) (TranslationMap, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.InvalidConfig("translations: " + err.Error()).WithCause(err)
	}
	return TranslationMap(raw).Clone(), nil
}

// LoadTranslationsFile reads and parses the translation document at path.
func LoadTranslationsFile(path string) (TranslationMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidConfig(fmt.Sprintf("translations: read %s", path)).WithCause(err)
	}
	return ParseTranslations(data)
}

// Merge returns a copy of c where every directive of override replaces the
// directive of the same kind and type name.
func (c Config) Merge(override Config) Config {
	out := Normalize(&c)
	for _, k := range Kinds {
		dst := out.Table(k)
		for name, d := range override.Table(k) {
			dst[name] = d.clone()
		}
	}
	return out
}
