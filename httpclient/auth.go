package httpclient

import (
	"fmt"
	"net/http"
)

// AuthType identifies the authentication method.
type AuthType string

const (
	// AuthNone disables authentication.
	AuthNone AuthType = ""
	// AuthBearer uses Bearer token authentication.
	AuthBearer AuthType = "bearer"
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic AuthType = "basic"
	// AuthAPIKey uses API key authentication (header or query parameter).
	AuthAPIKey AuthType = "api_key"
	// AuthJWT signs a bearer token per JWTConfig.
	AuthJWT AuthType = "jwt"
	// AuthCustom uses a custom authentication function.
	AuthCustom AuthType = "custom"
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType `yaml:"type" mapstructure:"type"`
	// Token is the bearer token (AuthBearer).
	Token string `yaml:"token" mapstructure:"token"`
	// Username is the basic auth username (AuthBasic).
	Username string `yaml:"username" mapstructure:"username"`
	// Password is the basic auth password (AuthBasic).
	Password string `yaml:"password" mapstructure:"password"`
	// Key is the API key value (AuthAPIKey).
	Key string `yaml:"key" mapstructure:"key"`
	// In specifies where to place the API key: "header" (default) or "query" (AuthAPIKey).
	In string `yaml:"in" mapstructure:"in"`
	// Name is the header or query parameter name (AuthAPIKey). Defaults to "X-API-Key".
	Name string `yaml:"name" mapstructure:"name"`
	// JWT configures token signing (AuthJWT).
	JWT *JWTConfig `yaml:"jwt" mapstructure:"jwt"`
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*http.Request) `yaml:"-" mapstructure:"-"`
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: "X-API-Key"}
}

// APIKeyAuthHeader creates an API key auth config with a custom header name.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: headerName}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// JWTAuth creates an auth config that signs its own bearer tokens.
func JWTAuth(cfg JWTConfig) *AuthConfig {
	return &AuthConfig{Type: AuthJWT, JWT: &cfg}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// Validate checks the fields required by the auth type.
func (a *AuthConfig) Validate() error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthNone, AuthBasic:
	case AuthBearer:
		if a.Token == "" {
			return fmt.Errorf("auth: token is required for bearer auth")
		}
	case AuthAPIKey:
		if a.Key == "" {
			return fmt.Errorf("auth: key is required for api_key auth")
		}
		if a.In != "" && a.In != "header" && a.In != "query" {
			return fmt.Errorf("auth: api_key location must be header or query, got %q", a.In)
		}
	case AuthJWT:
		if a.JWT == nil {
			return fmt.Errorf("auth: jwt section is required for jwt auth")
		}
		j := *a.JWT
		j.ApplyDefaults()
		return j.Validate()
	case AuthCustom:
		if a.Apply == nil {
			return fmt.Errorf("auth: custom auth requires an Apply function")
		}
	default:
		return fmt.Errorf("auth: unsupported type %q", a.Type)
	}
	return nil
}

// authenticator applies an AuthConfig, holding the JWT token source if any.
type authenticator struct {
	cfg    *AuthConfig
	tokens *tokenSource
}

func newAuthenticator(cfg *AuthConfig) (*authenticator, error) {
	a := &authenticator{cfg: cfg}
	if cfg != nil && cfg.Type == AuthJWT {
		ts, err := newTokenSource(*cfg.JWT)
		if err != nil {
			return nil, err
		}
		a.tokens = ts
	}
	return a, nil
}

// apply applies authentication to an HTTP request.
func (a *authenticator) apply(req *http.Request) error {
	if a == nil || a.cfg == nil {
		return nil
	}
	c := a.cfg
	switch c.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.Token)
	case AuthBasic:
		req.SetBasicAuth(c.Username, c.Password)
	case AuthAPIKey:
		name := c.Name
		if name == "" {
			name = "X-API-Key"
		}
		if c.In == "query" {
			q := req.URL.Query()
			q.Set(name, c.Key)
			req.URL.RawQuery = q.Encode()
		} else {
			req.Header.Set(name, c.Key)
		}
	case AuthJWT:
		token, err := a.tokens.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	case AuthCustom:
		if c.Apply != nil {
			c.Apply(req)
		}
	}
	return nil
}
