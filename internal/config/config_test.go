package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRIPPO_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TRIPPO_HTTP_ADDR", "")
	t.Setenv("TRIPPO_GEN_MAX_RETRIES", "")
	t.Setenv("TRIPPO_GEN_TIMEOUT_SECONDS", "")
	t.Setenv("TRIPPO_MONTHLY_TRIPS", "")
	t.Setenv("TRIPPO_CORS_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 20, cfg.LLM.MonthlyTrips)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey())
}

func TestLoad_ProviderRequiresCredential(t *testing.T) {
	cases := map[string]string{
		"openai": "OPENAI_API_KEY",
		"gemini": "GEMINI_API_KEY",
		"proxy":  "TRIPPO_PROXY_URL",
	}
	for provider, key := range cases {
		t.Run(provider, func(t *testing.T) {
			t.Setenv("TRIPPO_LLM_PROVIDER", provider)
			t.Setenv(key, "")
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("TRIPPO_LLM_PROVIDER", "llama")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_GeminiSelection(t *testing.T) {
	t.Setenv("TRIPPO_LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("TRIPPO_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey())
	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.Model())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
}

func TestLoad_RejectsBadGenerationBounds(t *testing.T) {
	cases := map[string]map[string]string{
		"negative retries": {"TRIPPO_GEN_MAX_RETRIES": "-1"},
		"negative timeout": {"TRIPPO_GEN_TIMEOUT_SECONDS": "-5"},
		"zero timeout":     {"TRIPPO_GEN_TIMEOUT_SECONDS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TRIPPO_LLM_PROVIDER", "openai")
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("TRIPPO_GEN_MAX_RETRIES", "")
			t.Setenv("TRIPPO_GEN_TIMEOUT_SECONDS", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			for k := range env {
				assert.Contains(t, err.Error(), k)
			}
		})
	}
}

func TestLoad_ZeroRetriesAllowed(t *testing.T) {
	t.Setenv("TRIPPO_LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TRIPPO_GEN_MAX_RETRIES", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.LLM.MaxRetries)
}

func TestLoad_CORSOrigins(t *testing.T) {
	cases := map[string]bool{
		"*":                                   true,
		"https://app.example":                 true,
		"http://localhost:8081, https://x.io": true,
		"example.com":                         false,
		"https://app.example, *":              false,
	}
	for origins, ok := range cases {
		t.Run(origins, func(t *testing.T) {
			t.Setenv("TRIPPO_LLM_PROVIDER", "openai")
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("TRIPPO_CORS_ORIGINS", origins)
			_, err := Load()
			if ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "TRIPPO_CORS_ORIGINS")
		})
	}
}
