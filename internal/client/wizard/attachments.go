package wizard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/agsregistration/internal/client/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/client/mapper"
	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/client/schemas"
	"github.com/dmitrijs2005/agsregistration/internal/client/services"
	"github.com/dmitrijs2005/agsregistration/internal/common"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

// Uploads converts pending attachments into uploaded ones.
type Uploads interface {
	UploadPending(ctx context.Context, a *models.Attachments, studentID string) ([]models.ImageDescriptor, error)
	Discard(ctx context.Context, f models.UploadedFile) error
}

// Submitter sends the final payload.
type Submitter interface {
	Submit(ctx context.Context, p *models.RegistrationPayload) (*models.SubmissionReceipt, error)
}

// AttachmentsStep is the last step: it collects files and, on Finish,
// uploads them and submits the registration.
type AttachmentsStep struct {
	form      *Form[models.Attachments]
	store     drafts.Store
	uploads   Uploads
	submitter Submitter
	maxSize   int64
	log       logging.Logger
}

func newAttachmentsStep(store drafts.Store, uploads Uploads, submitter Submitter, maxSize int64, log logging.Logger) *AttachmentsStep {
	draftOnly := func(a models.Attachments) (models.Attachments, error) {
		return schemas.ValidateAttachments(a, schemas.AttachmentsDraft)
	}
	return &AttachmentsStep{
		form:      NewForm(models.KeyAttachments, store, draftOnly),
		store:     store,
		uploads:   uploads,
		submitter: submitter,
		maxSize:   maxSize,
		log:       log,
	}
}

func (s *AttachmentsStep) Form() *Form[models.Attachments] { return s.form }

func (s *AttachmentsStep) current(ctx context.Context) models.Attachments {
	if s.form.State() == Idle {
		return s.form.Mount(ctx)
	}
	return s.form.Value()
}

// persist replaces the stored draft wholesale so removed files disappear.
func (s *AttachmentsStep) persist(ctx context.Context, a models.Attachments) {
	s.store.Save(ctx, models.KeyAttachments, a)
	s.form.value = a
	s.form.loaded = true
}

// Add selects the local file at path for slot d and saves the draft.
func (s *AttachmentsStep) Add(ctx context.Context, path string, d models.DocumentType) (models.UploadedFile, error) {
	a := s.current(ctx)

	f, err := services.NewUploadedFile(path, d, s.maxSize)
	if err != nil {
		return models.UploadedFile{}, err
	}
	if err := a.Add(f); err != nil {
		return models.UploadedFile{}, err
	}

	s.persist(ctx, a)
	return f, nil
}

// Remove drops the file with the given id. An uploaded file is also deleted
// remotely; failing that is logged and does not keep the file selected.
func (s *AttachmentsStep) Remove(ctx context.Context, id string) (models.UploadedFile, bool) {
	a := s.current(ctx)

	f, ok := a.Remove(id)
	if !ok {
		return models.UploadedFile{}, false
	}
	if err := s.uploads.Discard(ctx, f); err != nil {
		s.log.Warn(ctx, "remote copy not removed", "file", f.FileName, "id", f.ServerID, "err", err)
	}

	s.persist(ctx, a)
	return f, true
}

// SetStudentID links future uploads to an existing student record.
func (s *AttachmentsStep) SetStudentID(ctx context.Context, id string) {
	a := s.current(ctx)
	a.StudentID = id
	s.persist(ctx, a)
}

// committed loads the drafts of the four data steps, failing with
// common.ErrStepIncomplete for the first one missing.
func committed(ctx context.Context, store drafts.Store) (models.ClassInfo, models.StudentInfo, models.FamilyInfo, models.EducationHealth, error) {
	var (
		class   models.ClassInfo
		student models.StudentInfo
		family  models.FamilyInfo
		eh      models.EducationHealth
	)
	for _, d := range []struct {
		key string
		dst any
	}{
		{models.KeyClassInfo, &class},
		{models.KeyStudentInfo, &student},
		{models.KeyFamilyInfo, &family},
		{models.KeyEducationHealth, &eh},
	} {
		if !store.Load(ctx, d.key, d.dst) {
			return class, student, family, eh, fmt.Errorf("%s: %w", d.key, common.ErrStepIncomplete)
		}
	}
	return class, student, family, eh, nil
}

// BuildPayload transforms the committed drafts and the files uploaded so far
// without sending anything.
func (s *AttachmentsStep) BuildPayload(ctx context.Context) (models.RegistrationPayload, error) {
	class, student, family, eh, err := committed(ctx, s.store)
	if err != nil {
		return models.RegistrationPayload{}, err
	}

	a := s.current(ctx)
	var images []models.ImageDescriptor
	for _, f := range a.All() {
		if f.Uploaded {
			images = append(images, f.Descriptor())
		}
	}
	return mapper.Transform(student.WithClass(class), family, eh, images), nil
}

// Finish validates that every slot has a file, uploads what is pending,
// and submits the registration. Upload state is saved after the upload
// attempt either way, so a retry only sends what is still pending. On
// success the submitter has cleared the drafts and the step is Advancing.
func (s *AttachmentsStep) Finish(ctx context.Context) (*models.SubmissionReceipt, error) {
	a := s.current(ctx)
	f := s.form

	class, student, family, eh, err := committed(ctx, s.store)
	if err != nil {
		f.state = Editing
		return nil, err
	}

	if _, err := schemas.ValidateAttachments(a, schemas.AttachmentsStrict); err != nil {
		f.errs, _ = schemas.AsFieldErrors(err)
		f.state = Editing
		return nil, err
	}
	f.errs = nil
	f.state = Committing
	s.persist(ctx, a)

	images, err := s.uploads.UploadPending(ctx, &a, a.StudentID)
	s.persist(ctx, a)
	if err != nil {
		f.state = Editing
		return nil, err
	}

	payload := mapper.Transform(student.WithClass(class), family, eh, images)
	receipt, err := s.submitter.Submit(ctx, &payload)
	if err != nil {
		f.state = Editing
		return nil, err
	}

	f.state = Advancing
	return receipt, nil
}
