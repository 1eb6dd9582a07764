package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/agsregistration/internal/client/drafts"
	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/client/wizard"
	"github.com/dmitrijs2005/agsregistration/internal/common"
)

var errUsage = errors.New("usage")

// Attach adds a local file to a slot. rest is the raw text after the
// command, "<slot> <path>"; everything after the slot is the path, spaces
// included. Missing parts are prompted for.
func (a *App) Attach(ctx context.Context, rest string) error {
	if err := a.wizard.Goto(ctx, wizard.StepAttachments); err != nil {
		a.printError(err)
		return err
	}

	slot, path := splitFirst(rest)

	var err error
	if slot == "" {
		if slot, err = GetSimpleText(a.reader, "Slot (parentsId, birthCertificate, studentPhotos, familyCard)", a.prompts); err != nil {
			a.printError(err)
			return err
		}
	}
	d, err := models.ParseDocumentType(slot)
	if err != nil {
		a.printError(err)
		return err
	}

	if path == "" {
		if path, err = GetSimpleText(a.reader, "Path to the file", a.prompts); err != nil {
			a.printError(err)
			return err
		}
	}

	f, err := a.wizard.Attachments.Add(ctx, path, d)
	if err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprintf(a.out, "Added %s to %s (id %s)\n", f.FileName, d.Slot(), f.ID)
	return nil
}

// Detach removes a file by id: detach <id>.
func (a *App) Detach(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: detach <id>")
		return errUsage
	}
	f, ok := a.wizard.Attachments.Remove(ctx, args[0])
	if !ok {
		fmt.Fprintf(a.out, "No file with id %s\n", args[0])
		return fmt.Errorf("file %s: %w", args[0], common.ErrorNotFound)
	}
	fmt.Fprintf(a.out, "Removed %s\n", f.FileName)
	return nil
}

// ListAttachments prints the selected files slot by slot.
func (a *App) ListAttachments(ctx context.Context) error {
	att, _ := drafts.Get[models.Attachments](ctx, a.store, models.KeyAttachments)
	if att.StudentID != "" {
		fmt.Fprintf(a.out, "Student id: %s\n", att.StudentID)
	}
	for _, d := range models.SlotOrder {
		files := *att.Slot(d)
		fmt.Fprintf(a.out, "%s (%d)\n", d.Slot(), len(files))
		for _, f := range files {
			state := "pending"
			if f.Uploaded {
				state = "uploaded"
			}
			fmt.Fprintf(a.out, "  %s  %s  %d bytes  %s\n", f.ID, f.FileName, f.Size, state)
		}
	}
	return nil
}

// SetStudentID links uploads to an existing student: student-id <id>.
func (a *App) SetStudentID(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: student-id <id>")
		return errUsage
	}
	a.wizard.Attachments.SetStudentID(ctx, args[0])
	fmt.Fprintf(a.out, "Uploads will be linked to student %s\n", args[0])
	return nil
}

// Review prints the payload the saved answers would produce. Files not
// yet uploaded are not part of it.
func (a *App) Review(ctx context.Context) error {
	p, err := a.wizard.Attachments.BuildPayload(ctx)
	if err != nil {
		a.printError(err)
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		a.printError(err)
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

// submitTimeout bounds a whole submission: one request per pending file
// plus the registration itself.
func (a *App) submitTimeout(ctx context.Context) time.Duration {
	att, _ := drafts.Get[models.Attachments](ctx, a.store, models.KeyAttachments)
	return a.config.RequestTimeout * time.Duration(att.Pending()+2)
}

// Submit uploads pending files and sends the registration. It runs on a
// context detached from ctx so an interrupt cannot stop a batch halfway
// through its rollback.
func (a *App) Submit(ctx context.Context) error {
	if err := a.wizard.Goto(ctx, wizard.StepAttachments); err != nil {
		a.printError(err)
		return err
	}

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.submitTimeout(ctx))
	defer cancel()

	receipt, err := a.wizard.Finish(sctx)
	if err != nil {
		a.log.Warn(ctx, "submission failed", "err", err)
		a.printError(err)
		return err
	}

	fmt.Fprintln(a.out, "Thank you! The registration was received.")
	if receipt.ID != "" || receipt.StudentID != "" {
		fmt.Fprintf(a.out, "Registration id: %s, student id: %s\n", receipt.ID, receipt.StudentID)
	}
	if receipt.Message != "" {
		fmt.Fprintln(a.out, receipt.Message)
	}
	return nil
}
