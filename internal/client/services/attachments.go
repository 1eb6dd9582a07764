package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/filex"
)

// NewUploadedFile inspects the local file at path and returns a pending
// attachment of type d with a fresh id. The file content must match one of
// the media types the slot accepts and fit within maxSize bytes.
func NewUploadedFile(path string, d models.DocumentType, maxSize int64) (models.UploadedFile, error) {
	if !d.Valid() {
		return models.UploadedFile{}, fmt.Errorf("unknown document type %d", d)
	}

	a, err := filex.ReadAttachment(path, maxSize)
	if err != nil {
		return models.UploadedFile{}, err
	}
	if !d.Accepts(a.ContentType) {
		return models.UploadedFile{}, fmt.Errorf("%s is %s, expected one of %s: %w",
			a.Name, a.ContentType, strings.Join(d.AcceptedTypes(), ", "), ErrUnsupportedType)
	}

	return models.UploadedFile{
		ID:           uuid.NewString(),
		FileName:     a.Name,
		LocalPath:    path,
		ContentType:  a.ContentType,
		Size:         int64(len(a.Data)),
		DocumentType: d,
	}, nil
}
