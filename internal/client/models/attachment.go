package models

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DocumentType is one of the four attachment categories. The numeric value
// is the code sent to the upload endpoint.
type DocumentType int

const (
	DocStudentPhoto DocumentType = iota
	DocBirthCertificate
	DocFamilyCard
	DocParentID
)

// SlotOrder is the stable order in which attachment slots are processed.
var SlotOrder = []DocumentType{DocParentID, DocBirthCertificate, DocStudentPhoto, DocFamilyCard}

var documentTypeNames = map[DocumentType]string{
	DocStudentPhoto:     "student_photo",
	DocBirthCertificate: "birth_certificate",
	DocFamilyCard:       "family_card",
	DocParentID:         "parents_id",
}

var documentTypeSlots = map[DocumentType]string{
	DocStudentPhoto:     "studentPhotos",
	DocBirthCertificate: "birthCertificate",
	DocFamilyCard:       "familyCard",
	DocParentID:         "parentsId",
}

var (
	imageTypes    = []string{"image/png", "image/jpeg"}
	documentTypes = []string{"image/png", "image/jpeg", "application/pdf"}
)

func (d DocumentType) Valid() bool {
	return d >= DocStudentPhoto && d <= DocParentID
}

// Code is the upload form value, "0" to "3".
func (d DocumentType) Code() string {
	return strconv.Itoa(int(d))
}

// Name is the wire name used in payload image descriptors.
func (d DocumentType) Name() string {
	if n, ok := documentTypeNames[d]; ok {
		return n
	}
	return "unknown"
}

// Slot is the attachments draft field holding files of this type.
func (d DocumentType) Slot() string {
	return documentTypeSlots[d]
}

func (d DocumentType) String() string {
	return d.Name()
}

// Accepts reports whether a file with the given media type may be attached
// to this slot. Student photos must be images; other slots also take PDF.
func (d DocumentType) Accepts(contentType string) bool {
	if d == DocStudentPhoto {
		return slices.Contains(imageTypes, contentType)
	}
	return slices.Contains(documentTypes, contentType)
}

// AcceptedTypes lists the media types Accepts allows.
func (d DocumentType) AcceptedTypes() []string {
	if d == DocStudentPhoto {
		return slices.Clone(imageTypes)
	}
	return slices.Clone(documentTypes)
}

// ParseDocumentType accepts a numeric code, a wire name or a slot name.
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		d := DocumentType(n)
		if d.Valid() {
			return d, nil
		}
		return 0, fmt.Errorf("unknown document type code %q", s)
	}
	for d, name := range documentTypeNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, documentTypeSlots[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown document type %q", s)
}

// UploadedFile tracks one selected attachment from selection to server
// acknowledgment. ID is generated on selection and doubles as the upload
// idempotency key.
type UploadedFile struct {
	ID           string       `json:"id" validate:"required"`
	FileName     string       `json:"file_name" validate:"required"`
	LocalPath    string       `json:"local_path" validate:"required"`
	ContentType  string       `json:"content_type"`
	Size         int64        `json:"size"`
	DocumentType DocumentType `json:"document_type"`
	ServerPath   string       `json:"path,omitempty"`
	ServerID     string       `json:"server_id,omitempty"`
	Uploaded     bool         `json:"uploaded"`
}

// MarkUploaded records the server acknowledgment for f.
func (f *UploadedFile) MarkUploaded(d ImageDescriptor) {
	f.ServerID = d.ServerID
	f.ServerPath = d.Path
	f.Uploaded = true
}

// MarkPending clears server state so the file is uploaded again.
func (f *UploadedFile) MarkPending() {
	f.ServerID = ""
	f.ServerPath = ""
	f.Uploaded = false
}

// Descriptor returns the image descriptor of an uploaded file.
func (f UploadedFile) Descriptor() ImageDescriptor {
	return ImageDescriptor{ServerID: f.ServerID, Path: f.ServerPath, DocumentType: f.DocumentType}
}

// Attachments is the draft of the attachments step: four slots of files.
// StudentID, when set, links uploads to an existing student record.
type Attachments struct {
	StudentID        string         `json:"student_id,omitempty"`
	ParentsID        []UploadedFile `json:"parentsId"`
	BirthCertificate []UploadedFile `json:"birthCertificate"`
	StudentPhotos    []UploadedFile `json:"studentPhotos"`
	FamilyCard       []UploadedFile `json:"familyCard"`
}

// Slot returns a pointer to the file list for d, or nil for an invalid type.
func (a *Attachments) Slot(d DocumentType) *[]UploadedFile {
	switch d {
	case DocParentID:
		return &a.ParentsID
	case DocBirthCertificate:
		return &a.BirthCertificate
	case DocStudentPhoto:
		return &a.StudentPhotos
	case DocFamilyCard:
		return &a.FamilyCard
	}
	return nil
}

// Add appends f to the slot of its document type.
func (a *Attachments) Add(f UploadedFile) error {
	slot := a.Slot(f.DocumentType)
	if slot == nil {
		return fmt.Errorf("unknown document type %d", f.DocumentType)
	}
	*slot = append(*slot, f)
	return nil
}

// Find returns the file with the given id.
func (a *Attachments) Find(id string) (*UploadedFile, bool) {
	for _, d := range SlotOrder {
		slot := a.Slot(d)
		for i := range *slot {
			if (*slot)[i].ID == id {
				return &(*slot)[i], true
			}
		}
	}
	return nil, false
}

// Remove deletes the file with the given id and returns it.
func (a *Attachments) Remove(id string) (UploadedFile, bool) {
	for _, d := range SlotOrder {
		slot := a.Slot(d)
		for i, f := range *slot {
			if f.ID == id {
				*slot = slices.Delete(*slot, i, i+1)
				return f, true
			}
		}
	}
	return UploadedFile{}, false
}

// All returns copies of every file in slot order, then list order.
func (a *Attachments) All() []UploadedFile {
	var out []UploadedFile
	for _, d := range SlotOrder {
		out = append(out, *a.Slot(d)...)
	}
	return out
}

// Total is the number of selected files across all slots.
func (a *Attachments) Total() int {
	return len(a.ParentsID) + len(a.BirthCertificate) + len(a.StudentPhotos) + len(a.FamilyCard)
}

// Pending is the number of files not yet uploaded.
func (a *Attachments) Pending() int {
	n := 0
	for _, f := range a.All() {
		if !f.Uploaded {
			n++
		}
	}
	return n
}
