package openai

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", " sk-env ")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:8080/")
	t.Setenv("OPENAI_API_PREFIX", "/openai/v1/")
	t.Setenv("OPENAI_ORG_ID", "org-1")
	t.Setenv("OPENAI_TIMEOUT", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.APIKey)
	assert.Equal(t, "org-1", cfg.Organization)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	c := NewClient(cfg)
	assert.Equal(t, "http://localhost:8080/openai/v1/images/edits", c.URL("/images/edits"))
	assert.Equal(t, 30*time.Second, c.Config().HTTPClient.Timeout)
}

func TestLoadConfig_BadTimeout(t *testing.T) {
	t.Setenv("OPENAI_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	cfg := c.Config()

	assert.Equal(t, "https://api.openai.com/v1/images/generations", c.URL("images/generations"))
	assert.Same(t, http.DefaultClient, cfg.HTTPClient)
	require.NotNil(t, cfg.Logger)
}

func TestClient_Headers(t *testing.T) {
	c := NewClient(Config{
		APIKey:       "sk-1",
		Organization: "org-2",
		Headers:      map[string]string{"X-Trace": "t"},
	})
	h := c.Headers()

	assert.Equal(t, "Bearer sk-1", h.Get("Authorization"))
	assert.Equal(t, "org-2", h.Get("OpenAI-Organization"))
	assert.Equal(t, "t", h.Get("X-Trace"))

	assert.Empty(t, NewClient(Config{}).Headers().Get("Authorization"))
}

func TestConfigure_ReplacesDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { defaultClient.Store(prev) })

	Configure(Config{APIKey: "sk-default"})
	assert.Equal(t, "sk-default", Default().Config().APIKey)
}
