package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/agsregistration/internal/flagx"
	"github.com/dmitrijs2005/agsregistration/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "zero" so a partial file only overrides
// what it names.
type JsonConfig struct {
	APIBaseURL        *string         `json:"api_base_url"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	DraftDBPath       *string         `json:"draft_db_path"`
	UploadBackend     *string         `json:"upload_backend"`
	S3Bucket          *string         `json:"s3_bucket"`
	S3Region          *string         `json:"s3_region"`
	S3BaseEndpoint    *string         `json:"s3_base_endpoint"`
	S3AccessKey       *string         `json:"s3_access_key"`
	S3SecretKey       *string         `json:"s3_secret_key"`
	MaxAttachmentSize *int64          `json:"max_attachment_size"`
	LogBackend        *string         `json:"log_backend"`
	LogLevel          *string         `json:"log_level"`
	Environment       *string         `json:"environment"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays Config with values loaded from the JSON file given by
// -c or -config. Without the flag nothing happens. Read or decode errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	setString(&cfg.DraftDBPath, jc.DraftDBPath)
	setString(&cfg.UploadBackend, jc.UploadBackend)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.MaxAttachmentSize != nil {
		cfg.MaxAttachmentSize = *jc.MaxAttachmentSize
	}
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.Environment, jc.Environment)
}
