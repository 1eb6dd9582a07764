package services

import (
	"context"

	"github.com/dmitrijs2005/agsregistration/internal/client/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/logging"
)

// RegistrationClient sends the final payload.
type RegistrationClient interface {
	SubmitRegistration(ctx context.Context, p *models.RegistrationPayload) (*models.SubmissionReceipt, error)
}

// Submitter posts registrations and clears the drafts once one is accepted.
type Submitter struct {
	client RegistrationClient
	store  drafts.Store
	keys   []string
	log    logging.Logger
}

func NewSubmitter(c RegistrationClient, store drafts.Store, log logging.Logger) *Submitter {
	if log == nil {
		log = logging.Nop()
	}
	return &Submitter{client: c, store: store, keys: models.DraftKeys(), log: log.With("component", "submitter")}
}

// Submit sends p. On success every known draft is cleared; a draft that
// survives the clear is only logged. On failure the drafts are untouched
// and the error is a *SubmissionError.
func (s *Submitter) Submit(ctx context.Context, p *models.RegistrationPayload) (*models.SubmissionReceipt, error) {
	if p == nil {
		return nil, &SubmissionError{Err: ErrNothingToSubmit}
	}

	receipt, err := s.client.SubmitRegistration(ctx, p)
	if err != nil {
		s.log.Error(ctx, "submission failed", "err", err)
		return nil, &SubmissionError{Err: err}
	}

	s.log.Info(ctx, "registration accepted", "id", receipt.ID, "student_id", receipt.StudentID)

	s.store.ClearAll(ctx, s.keys)
	for _, m := range s.store.Stat(ctx) {
		for _, k := range s.keys {
			if m.Key == k {
				s.log.Warn(ctx, "draft left after submission", "key", k)
			}
		}
	}

	return receipt, nil
}
