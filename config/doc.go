// Package config loads service configuration with viper.
//
// A config.yml is searched in the usual service locations (or given
// explicitly), a .env file is loaded with godotenv, and environment
// variables override file values. With an env prefix only variables
// carrying it are bound, e.g. RESTMAPPER_REST_BASE_URL sets rest.base_url.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("catalog-sync", &cfg, config.WithEnvPrefix("RESTMAPPER"))
//
// Viper lowercases every key, so configuration whose map keys are
// case-sensitive (mapping tables, translations) is loaded from its own
// file by the package that owns it.
package config
