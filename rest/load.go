package rest

import (
	"errors"
	"fmt"

	"github.com/kbukum/restmapper/config"
	"github.com/kbukum/restmapper/observability"
	"github.com/kbukum/restmapper/util"
	"github.com/kbukum/restmapper/version"
)

// FileConfig is the configuration file layout of a service using the
// client:
//
//	name: catalog-sync
//	environment: production
//	logging:
//	  level: info
//	rest:
//	  base_url: http://catalog/rest/v1
//	  mapping_file: mapping.yaml
//	  http:
//	    timeout: 5s
//	observability:
//	  enabled: true
//	  endpoint: otel-collector:4318
type FileConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	REST                 Config               `yaml:"rest" mapstructure:"rest"`
	Observability        observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills every section. The exporter identity follows the
// service section unless set explicitly.
func (c *FileConfig) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.REST.Name == "" && c.Name != "" {
		c.REST.Name = c.Name
	}
	c.REST.ApplyDefaults()

	defaults := observability.DefaultConfig(c.Name)
	o := &c.Observability
	o.ServiceName = util.Coalesce(o.ServiceName, defaults.ServiceName)
	o.ServiceVersion = util.Coalesce(o.ServiceVersion, c.Version, version.GetShortVersion())
	o.Environment = util.Coalesce(o.Environment, c.Environment)
	o.Endpoint = util.Coalesce(o.Endpoint, defaults.Endpoint)
	o.SampleRate = util.Coalesce(o.SampleRate, defaults.SampleRate)
	o.MetricInterval = util.Coalesce(o.MetricInterval, defaults.MetricInterval)
}

// Validate validates every section.
func (c *FileConfig) Validate() error {
	var errs []error
	if err := c.ServiceConfig.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.REST.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rest: %w", err))
	}
	if err := c.Observability.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadConfig loads, defaults and validates the FileConfig of serviceName.
// Files and environment variables are resolved by config.LoadConfig, so
// REST_BASE_URL overrides rest.base_url.
func LoadConfig(serviceName string, opts ...config.LoaderOption) (*FileConfig, error) {
	cfg := &FileConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
