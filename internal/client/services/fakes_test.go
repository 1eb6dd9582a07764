package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/filex"
)

type fakeUploader struct {
	mu        sync.Mutex
	uploads   []models.ImageUpload
	deletes   []string
	failOn    map[string]error // file name -> error
	deleteErr error
	onUpload  func(n int)
	seq       int
}

func (f *fakeUploader) UploadImage(ctx context.Context, in models.ImageUpload) (*models.ImageDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, in)
	if f.onUpload != nil {
		f.onUpload(len(f.uploads))
	}
	if err := f.failOn[in.FileName]; err != nil {
		return nil, err
	}
	f.seq++
	return &models.ImageDescriptor{
		ServerID:     fmt.Sprintf("srv-%d", f.seq),
		Path:         "/uploads/" + in.FileName,
		DocumentType: in.DocumentType,
	}, nil
}

func (f *fakeUploader) DeleteImage(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}

func (f *fakeUploader) uploadedNames() []string {
	out := make([]string, 0, len(f.uploads))
	for _, u := range f.uploads {
		out = append(out, u.FileName)
	}
	return out
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// fakeReader serves every path as a small PNG.
func fakeReader(path string, _ int64) (*filex.Attachment, error) {
	if path == "" {
		return nil, errors.New("no path")
	}
	return &filex.Attachment{Name: path, ContentType: "image/png", Extension: ".png", Data: pngBytes}, nil
}

func pendingFile(id, name string, d models.DocumentType) models.UploadedFile {
	return models.UploadedFile{ID: id, FileName: name, LocalPath: "/local/" + name, ContentType: "image/png", DocumentType: d}
}

type fakeRegistrationClient struct {
	calls   []*models.RegistrationPayload
	receipt *models.SubmissionReceipt
	err     error
}

func (f *fakeRegistrationClient) SubmitRegistration(_ context.Context, p *models.RegistrationPayload) (*models.SubmissionReceipt, error) {
	f.calls = append(f.calls, p)
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}
