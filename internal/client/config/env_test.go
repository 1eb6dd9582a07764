package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("process environment", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("AGS_API_BASE_URL", "http://env.example/api")
		t.Setenv("AGS_REQUEST_TIMEOUT", "7")
		t.Setenv("AGS_MAX_ATTACHMENT_SIZE", "2048")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "http://env.example/api", cfg.APIBaseURL)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
		assert.Equal(t, int64(2048), cfg.MaxAttachmentSize)
	})

	t.Run("env file with process override", func(t *testing.T) {
		path := writeEnvFile(t, "AGS_UPLOAD_BACKEND=s3\nAGS_S3_BUCKET=from-file\nAGS_REQUEST_TIMEOUT=1m\n")
		os.Args = []string{"testbin", "-e", path}
		t.Setenv("AGS_S3_BUCKET", "from-env")

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "s3", cfg.UploadBackend)
		assert.Equal(t, "from-env", cfg.S3Bucket)
		assert.Equal(t, time.Minute, cfg.RequestTimeout)
		_, set := os.LookupEnv("AGS_UPLOAD_BACKEND")
		assert.False(t, set)
	})

	t.Run("malformed size panics", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("AGS_MAX_ATTACHMENT_SIZE", "lots")

		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("missing env file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-env", filepath.Join(t.TempDir(), "absent.env")}

		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}

func Test_parseSeconds(t *testing.T) {
	d, err := parseSeconds("30")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	d, err = parseSeconds("1m30s")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	_, err = parseSeconds("soon")
	assert.Error(t, err)
}
