// Package config loads runtime configuration for the registration CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. AGS_* variables from the environment, then from an env file selected
//     with -e or -env (default: ./.env when present), read with godotenv.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   registration API base URL
//	-t int      request timeout (seconds)
//	-d string   draft database path
//	-b string   upload backend: api or s3
//	-l string   log level
//
// # JSON schema
//
// Durations accept strings like "25s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://main-website-api.arabicglobalschool.com/api",
//	  "request_timeout": "25s",
//	  "draft_db_path": "registration.db",
//	  "upload_backend": "s3",
//	  "s3_bucket": "registrations",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://localhost:9000",
//	  "max_attachment_size": 5242880,
//	  "log_backend": "zap",
//	  "log_level": "info",
//	  "environment": "development"
//	}
//
// Malformed configuration panics at startup.
package config
