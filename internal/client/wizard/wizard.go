package wizard

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/agsregistration/internal/client/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/client/schemas"
	"github.com/dmitrijs2005/agsregistration/internal/common"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

// StepID identifies a wizard page.
type StepID int

const (
	StepClass StepID = iota
	StepStudent
	StepFamily
	StepEducationHealth
	StepAttachments
	StepThankYou
)

var stepTitles = map[StepID]string{
	StepClass:           "Class selection",
	StepStudent:         "Student information",
	StepFamily:          "Family information",
	StepEducationHealth: "Education and health",
	StepAttachments:     "Attachments",
	StepThankYou:        "Thank you",
}

var stepKeys = map[StepID]string{
	StepClass:           models.KeyClassInfo,
	StepStudent:         models.KeyStudentInfo,
	StepFamily:          models.KeyFamilyInfo,
	StepEducationHealth: models.KeyEducationHealth,
	StepAttachments:     models.KeyAttachments,
}

func (s StepID) String() string { return stepTitles[s] }

// DraftKey is the draft store key of the step, empty for the thank-you page.
func (s StepID) DraftKey() string { return stepKeys[s] }

// Steps lists the data-entry steps in order.
func Steps() []StepID {
	return []StepID{StepClass, StepStudent, StepFamily, StepEducationHealth, StepAttachments}
}

// StepStatus is one line of the stepper.
type StepStatus struct {
	ID      StepID
	Saved   bool
	Current bool
}

// Wizard owns the step controllers and the current position.
type Wizard struct {
	store drafts.Store
	log   logging.Logger

	Class           *Form[models.ClassInfo]
	Student         *Form[models.StudentInfo]
	Family          *Form[models.FamilyInfo]
	EducationHealth *Form[models.EducationHealth]
	Attachments     *AttachmentsStep

	current StepID
	receipt *models.SubmissionReceipt
}

func New(store drafts.Store, uploads Uploads, submitter Submitter, maxAttachmentSize int64, log logging.Logger) *Wizard {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("component", "wizard")

	return &Wizard{
		store:           store,
		log:             log,
		Class:           NewForm(models.KeyClassInfo, store, schemas.ValidateClassInfo),
		Student:         NewForm(models.KeyStudentInfo, store, schemas.ValidateStudentInfo),
		Family:          NewForm(models.KeyFamilyInfo, store, schemas.ValidateFamilyInfo),
		EducationHealth: NewForm(models.KeyEducationHealth, store, schemas.ValidateEducationHealth),
		Attachments:     newAttachmentsStep(store, uploads, submitter, maxAttachmentSize, log),
	}
}

func (w *Wizard) Current() StepID { return w.current }

// Receipt is set once the registration has been accepted.
func (w *Wizard) Receipt() *models.SubmissionReceipt { return w.receipt }

func (w *Wizard) saved(ctx context.Context) map[string]bool {
	out := map[string]bool{}
	for _, m := range w.store.Stat(ctx) {
		out[m.Key] = true
	}
	return out
}

// Resume positions the wizard on the first step without a saved draft.
func (w *Wizard) Resume(ctx context.Context) StepID {
	saved := w.saved(ctx)
	w.current = StepAttachments
	for _, s := range Steps() {
		if !saved[s.DraftKey()] {
			w.current = s
			break
		}
	}
	return w.current
}

// Status reports, per step, whether a draft is saved.
func (w *Wizard) Status(ctx context.Context) []StepStatus {
	saved := w.saved(ctx)
	out := make([]StepStatus, 0, len(Steps()))
	for _, s := range Steps() {
		out = append(out, StepStatus{ID: s, Saved: saved[s.DraftKey()], Current: s == w.current})
	}
	return out
}

// Goto moves to step id. Steps after the first unsaved one cannot be
// entered.
func (w *Wizard) Goto(ctx context.Context, id StepID) error {
	if id < StepClass || id > StepAttachments {
		return fmt.Errorf("unknown step %d", id)
	}
	saved := w.saved(ctx)
	for _, s := range Steps() {
		if s >= id {
			break
		}
		if !saved[s.DraftKey()] {
			return fmt.Errorf("%s must be completed first: %w", s, common.ErrStepIncomplete)
		}
	}
	w.current = id
	return nil
}

// Advance moves past a step whose commit succeeded.
func (w *Wizard) Advance(from StepID) {
	if from >= w.current && from < StepThankYou {
		w.current = from + 1
	}
}

// Finish runs the attachments step to completion and moves to the
// thank-you page on success.
func (w *Wizard) Finish(ctx context.Context) (*models.SubmissionReceipt, error) {
	receipt, err := w.Attachments.Finish(ctx)
	if err != nil {
		return nil, err
	}
	w.receipt = receipt
	w.current = StepThankYou
	w.resetForms()
	return receipt, nil
}

// Reset clears every draft and returns to the first step.
func (w *Wizard) Reset(ctx context.Context) {
	w.store.ClearAll(ctx, models.DraftKeys())
	w.resetForms()
	w.receipt = nil
	w.current = StepClass
}

func (w *Wizard) resetForms() {
	w.Class.Reset()
	w.Student.Reset()
	w.Family.Reset()
	w.EducationHealth.Reset()
	w.Attachments.form.Reset()
}
