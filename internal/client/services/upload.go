package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/filex"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

// Uploader is a remote attachment store.
type Uploader interface {
	UploadImage(ctx context.Context, in models.ImageUpload) (*models.ImageDescriptor, error)
	DeleteImage(ctx context.Context, id string) error
}

// UploadManager uploads the pending files of an attachments draft one at a
// time and rolls back the current batch when any file fails.
type UploadManager struct {
	uploader Uploader
	maxSize  int64
	log      logging.Logger

	readFile func(path string, maxSize int64) (*filex.Attachment, error)

	// Progress, when set, is called before each file of a batch is sent.
	Progress func(f models.UploadedFile, n, total int)
}

func NewUploadManager(u Uploader, maxSize int64, log logging.Logger) *UploadManager {
	if log == nil {
		log = logging.Nop()
	}
	return &UploadManager{
		uploader: u,
		maxSize:  maxSize,
		log:      log.With("component", "uploads"),
		readFile: filex.ReadAttachment,
	}
}

type batchItem struct {
	file *models.UploadedFile
	desc models.ImageDescriptor
}

// UploadPending uploads every file of a that is not yet uploaded, updating
// each entry in place as it succeeds. With nothing pending no remote call is
// made. It returns the descriptors of files uploaded earlier followed by
// those uploaded now.
//
// On the first failure the files uploaded earlier in this call are deleted
// remotely and marked pending again, later files are not attempted, and an
// *UploadError naming the failing file is returned. Files uploaded by
// earlier calls are left alone. studentID is forwarded when non-empty.
func (m *UploadManager) UploadPending(ctx context.Context, a *models.Attachments, studentID string) ([]models.ImageDescriptor, error) {
	var (
		already []models.ImageDescriptor
		pending []*models.UploadedFile
	)
	for _, d := range models.SlotOrder {
		slot := a.Slot(d)
		for i := range *slot {
			f := &(*slot)[i]
			if f.Uploaded {
				already = append(already, f.Descriptor())
			} else {
				pending = append(pending, f)
			}
		}
	}

	if len(pending) == 0 {
		return already, nil
	}

	batch := make([]batchItem, 0, len(pending))
	for i, f := range pending {
		if m.Progress != nil {
			m.Progress(*f, i+1, len(pending))
		}

		desc, err := m.uploadOne(ctx, f, studentID)
		if err != nil {
			m.log.Warn(ctx, "upload failed, rolling back batch", "file", f.FileName, "uploaded", len(batch), "err", err)
			m.rollback(ctx, batch)
			return nil, &UploadError{FileName: f.FileName, DocumentType: f.DocumentType, Err: err}
		}

		f.MarkUploaded(desc)
		batch = append(batch, batchItem{file: f, desc: desc})
		m.log.Debug(ctx, "file uploaded", "file", f.FileName, "id", desc.ServerID)
	}

	out := already
	for _, b := range batch {
		out = append(out, b.desc)
	}
	return out, nil
}

func (m *UploadManager) uploadOne(ctx context.Context, f *models.UploadedFile, studentID string) (models.ImageDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return models.ImageDescriptor{}, err
	}

	att, err := m.readFile(f.LocalPath, m.maxSize)
	if err != nil {
		return models.ImageDescriptor{}, err
	}

	ct := att.ContentType
	if !f.DocumentType.Accepts(ct) {
		return models.ImageDescriptor{}, fmt.Errorf("%s: %s: %w", f.FileName, ct, ErrUnsupportedType)
	}

	ext := att.Extension
	if ext == "" {
		ext = filepath.Ext(f.FileName)
	}

	desc, err := m.uploader.UploadImage(ctx, models.ImageUpload{
		FileID:       f.ID,
		FileName:     f.FileName,
		ContentType:  ct,
		Extension:    ext,
		Data:         att.Data,
		DocumentType: f.DocumentType,
		StudentID:    studentID,
	})
	if err != nil {
		return models.ImageDescriptor{}, err
	}
	return *desc, nil
}

// rollback deletes the batch in upload order on a context that survives
// cancellation of ctx, then marks every entry pending.
func (m *UploadManager) rollback(ctx context.Context, batch []batchItem) {
	dctx := context.WithoutCancel(ctx)
	for _, b := range batch {
		if err := m.uploader.DeleteImage(dctx, b.desc.ServerID); err != nil {
			m.log.Error(ctx, "compensating delete failed", "file", b.file.FileName, "id", b.desc.ServerID, "err", err)
		} else {
			m.log.Info(ctx, "compensating delete done", "file", b.file.FileName, "id", b.desc.ServerID)
		}
		b.file.MarkPending()
	}
}

// Discard removes the remote copy of f if it was uploaded. Pending files
// have nothing to remove.
func (m *UploadManager) Discard(ctx context.Context, f models.UploadedFile) error {
	if !f.Uploaded || f.ServerID == "" {
		return nil
	}
	if err := m.uploader.DeleteImage(ctx, f.ServerID); err != nil {
		return fmt.Errorf("delete %s: %w", f.FileName, err)
	}
	m.log.Info(ctx, "uploaded file discarded", "file", f.FileName, "id", f.ServerID)
	return nil
}
