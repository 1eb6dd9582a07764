package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://main-website-api.arabicglobalschool.com/api", c.APIBaseURL)
	assert.Equal(t, 25*time.Second, c.RequestTimeout)
	assert.Equal(t, "registration.db", c.DraftDBPath)
	assert.Equal(t, "api", c.UploadBackend)
	assert.Equal(t, int64(5<<20), c.MaxAttachmentSize)
	assert.Equal(t, "slog", c.LogBackend)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://main-website-api.arabicglobalschool.com/api", cfg.APIBaseURL)
	assert.Equal(t, 25*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":    "http://json.example/api",
		"request_timeout": "40s",
		"upload_backend":  "s3",
	})
	os.Args = []string{"testbin", "-c", path, "-a", "http://flag.example/api"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag.example/api", cfg.APIBaseURL)
	assert.Equal(t, 40*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "s3", cfg.UploadBackend)
}

func TestLoadConfig_SubSecondTimeoutFromEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	for in, want := range map[string]time.Duration{
		"1500ms": 1500 * time.Millisecond,
		"500ms":  500 * time.Millisecond,
		"2":      2 * time.Second,
	} {
		t.Setenv("AGS_REQUEST_TIMEOUT", in)

		cfg := LoadConfig()
		assert.Equal(t, want, cfg.RequestTimeout, "AGS_REQUEST_TIMEOUT=%s", in)
	}
}
