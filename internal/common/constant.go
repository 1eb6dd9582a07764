// Package common contains constants and sentinel errors shared by the
// registration client packages.
package common

// IdempotencyKeyHeaderName carries the client-generated attachment id on
// upload requests so that a retried upload is recognised by the server.
const IdempotencyKeyHeaderName = "Idempotency-Key"

// StudentIDFieldName is the optional multipart field linking an uploaded
// image to an existing student record.
const StudentIDFieldName = "student_id"
