// Package client holds the registration client's outbound building blocks.
//
// # Remote capabilities
//
// APIClient speaks the school's HTTP/JSON API:
//
//	POST   {base}/students            submit a RegistrationPayload
//	POST   {base}/studentImage        upload one attachment (multipart)
//	DELETE {base}/studentImage/{id}   remove an uploaded attachment
//
// Uploads carry the client-generated file id in the Idempotency-Key header.
// S3Uploader is an alternative attachment backend that writes straight to an
// S3-compatible bucket (AWS or MinIO) under deterministic object keys.
//
// # Errors
//
// Failures are reported with sentinels matched by errors.Is:
// ErrUnavailable (network, timeout, 5xx), ErrRejected (4xx or success=false,
// see *APIError for the server message) and ErrUnexpectedResponse.
//
// # Local database
//
// InitDatabase opens the SQLite draft database and applies the embedded goose
// migrations (RunMigrations).
package client
