package httpclient

import (
	"fmt"
	"os"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SigningMethod defines supported JWT signing algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
	RS256 SigningMethod = "RS256"
	RS384 SigningMethod = "RS384"
	RS512 SigningMethod = "RS512"
	ES256 SigningMethod = "ES256"
	ES384 SigningMethod = "ES384"
	ES512 SigningMethod = "ES512"
)

// JWTConfig configures self-signed bearer tokens sent with every request.
type JWTConfig struct {
	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`
	// Secret is the HMAC signing key (HS* methods).
	Secret string `yaml:"secret" mapstructure:"secret"`
	// PrivateKeyFile is a PEM encoded RSA or ECDSA key (RS*/ES* methods).
	PrivateKeyFile string `yaml:"private_key_file" mapstructure:"private_key_file"`
	// Issuer is the "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`
	// Subject is the "sub" claim (optional).
	Subject string `yaml:"subject" mapstructure:"subject"`
	// Audience is the "aud" claim (optional).
	Audience []string `yaml:"audience" mapstructure:"audience"`
	// TTL is the token lifetime (default: 15m). Tokens are reused until
	// they are within a tenth of their lifetime from expiry.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *JWTConfig) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL <= 0 {
		c.TTL = 15 * time.Minute
	}
}

// Validate checks required fields based on the signing method.
func (c *JWTConfig) Validate() error {
	switch c.Method {
	case HS256, HS384, HS512:
		if c.Secret == "" {
			return fmt.Errorf("jwt: secret is required for %s", c.Method)
		}
	case RS256, RS384, RS512, ES256, ES384, ES512:
		if c.PrivateKeyFile == "" {
			return fmt.Errorf("jwt: private_key_file is required for %s", c.Method)
		}
	default:
		return fmt.Errorf("jwt: unsupported signing method: %s", c.Method)
	}
	return nil
}

func (c *JWTConfig) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	case RS256:
		return gojwt.SigningMethodRS256
	case RS384:
		return gojwt.SigningMethodRS384
	case RS512:
		return gojwt.SigningMethodRS512
	case ES256:
		return gojwt.SigningMethodES256
	case ES384:
		return gojwt.SigningMethodES384
	case ES512:
		return gojwt.SigningMethodES512
	default:
		return gojwt.SigningMethodHS256
	}
}

func (c *JWTConfig) signKey() (any, error) {
	switch c.Method {
	case HS256, HS384, HS512:
		return []byte(c.Secret), nil
	}
	pem, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return nil, fmt.Errorf("jwt: read private key: %w", err)
	}
	switch c.Method {
	case RS256, RS384, RS512:
		return gojwt.ParseRSAPrivateKeyFromPEM(pem)
	default:
		return gojwt.ParseECPrivateKeyFromPEM(pem)
	}
}

// tokenSource signs tokens and caches the current one.
type tokenSource struct {
	cfg    JWTConfig
	method gojwt.SigningMethod
	key    any
	now    func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func newTokenSource(cfg JWTConfig) (*tokenSource, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key, err := cfg.signKey()
	if err != nil {
		return nil, err
	}
	return &tokenSource{cfg: cfg, method: cfg.signingMethod(), key: key, now: time.Now}, nil
}

// Token returns a valid signed token, signing a new one when needed.
func (s *tokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Add(s.cfg.TTL/10).Before(s.expires) {
		return s.token, nil
	}

	expires := now.Add(s.cfg.TTL)
	claims := gojwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.cfg.Issuer,
		Subject:   s.cfg.Subject,
		IssuedAt:  gojwt.NewNumericDate(now),
		NotBefore: gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(expires),
	}
	if len(s.cfg.Audience) > 0 {
		claims.Audience = gojwt.ClaimStrings(s.cfg.Audience)
	}
	signed, err := gojwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	s.token, s.expires = signed, expires
	return signed, nil
}
