package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/agsregistration/internal/flagx"
)

const envPrefix = "AGS_"

const defaultEnvFile = ".env"

// envFile returns the env file named by -e/-env, or .env when it exists.
func envFile() string {
	if f := flagx.EnvFileFlags(); f != "" {
		return f
	}
	if _, err := os.Stat(defaultEnvFile); err == nil {
		return defaultEnvFile
	}
	return ""
}

// parseEnv overlays Config with AGS_* variables. Values come from the
// process environment first and the env file second; the process
// environment itself is not modified. Unreadable files and malformed
// numbers panic.
func parseEnv(cfg *Config) {
	fileVars := map[string]string{}
	if f := envFile(); f != "" {
		m, err := godotenv.Read(f)
		if err != nil {
			panic(fmt.Errorf("read env file %s: %w", f, err))
		}
		fileVars = m
	}

	get := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := fileVars[envPrefix+name]
		return v, ok
	}
	str := func(dst *string, name string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	str(&cfg.APIBaseURL, "API_BASE_URL")
	str(&cfg.DraftDBPath, "DRAFT_DB_PATH")
	str(&cfg.UploadBackend, "UPLOAD_BACKEND")
	str(&cfg.S3Bucket, "S3_BUCKET")
	str(&cfg.S3Region, "S3_REGION")
	str(&cfg.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	str(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	str(&cfg.S3SecretKey, "S3_SECRET_KEY")
	str(&cfg.LogBackend, "LOG_BACKEND")
	str(&cfg.LogLevel, "LOG_LEVEL")
	str(&cfg.Environment, "ENVIRONMENT")

	if v, ok := get("REQUEST_TIMEOUT"); ok {
		d, err := parseSeconds(v)
		if err != nil {
			panic(fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err))
		}
		cfg.RequestTimeout = d
	}

	if v, ok := get("MAX_ATTACHMENT_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(fmt.Errorf("%sMAX_ATTACHMENT_SIZE: %w", envPrefix, err))
		}
		cfg.MaxAttachmentSize = n
	}
}

// parseSeconds accepts a plain number of seconds or a Go duration string.
func parseSeconds(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(v)
}
