package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/agsregistration/internal/client/client"
	"github.com/dmitrijs2005/agsregistration/internal/client/models"
)

var (
	ErrUnsupportedType = errors.New("file type not accepted for this document")
	ErrNothingToSubmit = errors.New("nothing to submit")
)

// UploadError reports the file whose upload aborted a batch.
type UploadError struct {
	FileName     string
	DocumentType models.DocumentType
	Err          error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %q (%s) failed: %v", e.FileName, e.DocumentType, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// SubmissionError wraps a failed registration submission.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "registration submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// UserMessage is a short explanation suitable for showing to the applicant.
func (e *SubmissionError) UserMessage() string {
	var apiErr *client.APIError
	switch {
	case errors.As(e.Err, &apiErr) && apiErr.Message != "":
		return "The school did not accept the registration: " + apiErr.Message + ". Your answers are saved; correct them and try again."
	case errors.Is(e.Err, client.ErrRejected):
		return "The school did not accept the registration. Your answers are saved; check them and try again."
	case errors.Is(e.Err, client.ErrUnavailable):
		return "The registration service cannot be reached right now. Your answers are saved; please try again in a moment."
	}
	return "Something went wrong while sending the registration. Your answers are saved; please try again."
}
