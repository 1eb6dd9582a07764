package models

import "encoding/json"

// RegistrationPayload is the body of the registration submission.
type RegistrationPayload struct {
	Student   StudentData       `json:"student"`
	Mother    ParentData        `json:"mother"`
	Father    ParentData        `json:"father"`
	Education EducationData     `json:"education"`
	Health    HealthData        `json:"health"`
	Images    []ImageDescriptor `json:"images,omitempty"`
}

type StudentData struct {
	ChildSchool      int    `json:"child_school"`
	ChildNextClass   string `json:"child_next_class"`
	FullName         string `json:"full_name"`
	BirthPlace       string `json:"birth_place"`
	FamilyName       string `json:"family_name"`
	Religion         string `json:"religion"`
	Birthday         string `json:"birthday"`
	AgeInJuly        int    `json:"age_in_july"`
	IDPassportNumber int    `json:"id_passport_number"`
	Gender           bool   `json:"gender"`
	Nationality      int    `json:"nationality"`
	WeightHeight     string `json:"weight_height"`
	SiblingOrder     int    `json:"sibling_order"`
	HomeLanguage     string `json:"home_language"`
	LivingWith       int    `json:"living_with"`
}

type ParentData struct {
	FullName         string `json:"full_name"`
	Birthday         string `json:"birthday"`
	Age              int    `json:"age"`
	Religion         string `json:"religion"`
	BirthPlace       string `json:"birth_place"`
	Nationality      string `json:"nationality"`
	RegistrationRole string `json:"registration_role"`
	Specialization   string `json:"specialization"`
	LastEducation    string `json:"last_education"`
	JobTitle         string `json:"job_title"`
	JobType          string `json:"job_type"`
	Employer         string `json:"employer"`
	EmployerAddress  string `json:"employer_address"`
	OfficePhone      string `json:"office_phone"`
	MonthlyIncome    int    `json:"monthly_income"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyPhone   string `json:"emergency_phone"`
	ContactTime      int    `json:"contact_time"`
}

type EducationData struct {
	PreviousSchool string `json:"previous_school"`
	SchoolAddress  string `json:"school_address"`
	Specialization string `json:"specialization"`
	EnrollmentYear int    `json:"enrollment_year"`
	GraduationYear int    `json:"graduation_year"`
}

type HealthData struct {
	MedicalHistory string `json:"medical_history"`
	Mobility       int    `json:"mobility"`
	Hearing        int    `json:"hearing"`
	Vision         int    `json:"vision"`
	FutureAmbition string `json:"future_ambition"`
}

// ImageDescriptor references an attachment the server has already stored.
type ImageDescriptor struct {
	ServerID     string
	Path         string
	DocumentType DocumentType
}

type imageDescriptorWire struct {
	IDs  string `json:"ids"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// MarshalJSON writes the descriptor as {"ids", "path", "type"} with the
// document type name.
func (d ImageDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(imageDescriptorWire{IDs: d.ServerID, Path: d.Path, Type: d.DocumentType.Name()})
}

// UnmarshalJSON reads the wire form; the type may be a name or a code.
func (d *ImageDescriptor) UnmarshalJSON(b []byte) error {
	var w imageDescriptorWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	dt, err := ParseDocumentType(w.Type)
	if err != nil {
		return err
	}
	*d = ImageDescriptor{ServerID: w.IDs, Path: w.Path, DocumentType: dt}
	return nil
}

// ImageUpload is one file handed to an upload capability.
type ImageUpload struct {
	FileID       string
	FileName     string
	ContentType  string
	Extension    string
	Data         []byte
	DocumentType DocumentType
	StudentID    string
}

// SubmissionReceipt is the server acknowledgment of a registration.
type SubmissionReceipt struct {
	ID        string
	StudentID string
	Message   string
}
