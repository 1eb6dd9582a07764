package schemas

import (
	"fmt"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
)

// AttachmentsMode selects how strictly the attachments step is checked.
type AttachmentsMode int

const (
	// AttachmentsDraft allows empty slots, for saving progress.
	AttachmentsDraft AttachmentsMode = iota
	// AttachmentsStrict requires at least one file per slot, for submission.
	AttachmentsStrict
)

// ValidateAttachments checks every file entry and, in strict mode, that no
// slot is empty. Files must sit in the slot matching their document type
// and carry a media type the slot accepts.
func ValidateAttachments(in models.Attachments, mode AttachmentsMode) (models.Attachments, error) {
	fe := FieldErrors{}

	for _, d := range models.SlotOrder {
		slot := *in.Slot(d)
		name := d.Slot()

		if mode == AttachmentsStrict {
			if err := validate.Var(slot, "min=1"); err != nil {
				fe[name] = "at least one file is required"
			}
		}

		for i, f := range slot {
			path := fmt.Sprintf("%s[%d]", name, i)
			if err := check(f); err != nil {
				if sub, ok := AsFieldErrors(err); ok {
					for k, v := range sub {
						fe[path+"."+k] = v
					}
					continue
				}
				fe[path] = err.Error()
				continue
			}
			if f.DocumentType != d {
				fe[path] = fmt.Sprintf("document type %s does not belong in %s", f.DocumentType, name)
				continue
			}
			if f.ContentType != "" && !d.Accepts(f.ContentType) {
				fe[path] = fmt.Sprintf("%s files are not accepted here", f.ContentType)
			}
		}
	}

	if len(fe) > 0 {
		return models.Attachments{}, fe
	}
	return in, nil
}
