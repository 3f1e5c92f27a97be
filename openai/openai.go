package openai

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/rs/zerolog"
)

type Config struct {
	APIKey       string        `env:"OPENAI_API_KEY"`
	BaseURL      string        `env:"OPENAI_BASE_URL"`
	APIPrefix    string        `env:"OPENAI_API_PREFIX"`
	Organization string        `env:"OPENAI_ORG_ID"`
	Timeout      time.Duration `env:"OPENAI_TIMEOUT"`

	// Headers are added to every request.
	Headers map[string]string

	// HTTPClient carries the request. Timeouts, proxies and TLS belong here.
	HTTPClient *http.Client

	// Logger receives debug traces of each request. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// LoadConfig reads the client configuration from OPENAI_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Organization = strings.TrimSpace(cfg.Organization)
	return cfg, nil
}

type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: normalizeConfig(cfg)}
}

// NewClientFromEnv is NewClient over LoadConfig.
func NewClientFromEnv() (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg), nil
}

var defaultClient atomic.Pointer[Client]

func init() {
	cfg, err := LoadConfig()
	if err != nil {
		cfg = Config{}
	}
	defaultClient.Store(NewClient(cfg))
}

// Configure replaces the client used when callers pass a nil *Client.
func Configure(cfg Config) {
	defaultClient.Store(NewClient(cfg))
}

func Default() *Client { return defaultClient.Load() }

func (c *Client) Config() Config { return c.cfg }

// URL joins the base URL, API prefix and an endpoint path such as "/images/edits".
func (c *Client) URL(path string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	prefix := strings.TrimRight(c.cfg.APIPrefix, "/")
	return base + prefix + "/" + strings.TrimLeft(path, "/")
}

// Headers returns the per-request headers: bearer auth, organization and static extras.
func (c *Client) Headers() http.Header {
	h := make(http.Header)
	if c.cfg.APIKey != "" {
		h.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	if c.cfg.Organization != "" {
		h.Set("OpenAI-Organization", c.cfg.Organization)
	}
	for k, v := range c.cfg.Headers {
		h.Set(k, v)
	}
	return h
}

func normalizeConfig(cfg Config) Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/v1"
	}
	if cfg.HTTPClient == nil {
		if cfg.Timeout > 0 {
			cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
		} else {
			cfg.HTTPClient = http.DefaultClient
		}
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	return cfg
}
