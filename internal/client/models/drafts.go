// Package models holds the registration client's data types: per-step
// drafts, attachment records, and the normalized submission payload.
//
// Draft types keep every value as entered (strings); numeric coercion
// happens only when a payload is built.
package models

import "time"

// Draft keys, one per wizard step.
const (
	KeyClassInfo       = "class_info"
	KeyStudentInfo     = "student_info"
	KeyFamilyInfo      = "family_info"
	KeyEducationHealth = "education_health"
	KeyAttachments     = "attachments"
)

// DraftKeys returns every known draft key in wizard order.
func DraftKeys() []string {
	return []string{KeyClassInfo, KeyStudentInfo, KeyFamilyInfo, KeyEducationHealth, KeyAttachments}
}

// DraftMeta describes one stored draft row.
type DraftMeta struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

type ClassInfo struct {
	ChildSchool    string `json:"child_school" validate:"omitempty,numeric"`
	ChildNextClass string `json:"child_next_class" validate:"required,min=2"`
}

type StudentInfo struct {
	ChildSchool      string `json:"child_school,omitempty"`
	ChildNextClass   string `json:"child_next_class,omitempty"`
	FullName         string `json:"full_name" validate:"required,min=2"`
	BirthPlace       string `json:"birth_place"`
	FamilyName       string `json:"family_name"`
	Religion         string `json:"religion"`
	Birthday         string `json:"birthday" validate:"required,datetime=2006-01-02"`
	AgeInJuly        string `json:"age_in_july"`
	IDPassportNumber string `json:"id_passport_number"`
	Gender           string `json:"gender" validate:"omitempty,oneof=0 1"`
	Nationality      string `json:"nationality"`
	WeightHeight     string `json:"weight_height"`
	SiblingOrder     string `json:"sibling_order"`
	HomeLanguage     string `json:"home_language"`
	LivingWith       string `json:"living_with"`
}

// WithClass fills the class fields from the class selection step when the
// student draft does not carry its own.
func (s StudentInfo) WithClass(c ClassInfo) StudentInfo {
	if s.ChildSchool == "" {
		s.ChildSchool = c.ChildSchool
	}
	if s.ChildNextClass == "" {
		s.ChildNextClass = c.ChildNextClass
	}
	return s
}

// ParentInfo is the mother or father block of the family step.
type ParentInfo struct {
	FullName         string `json:"full_name" validate:"required,min=2"`
	Birthday         string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Age              string `json:"age"`
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
	MonthlyIncome    string `json:"monthly_income"`
	Email            string `json:"email" validate:"omitempty,email"`
	Phone            string `json:"phone"`
	EmergencyPhone   string `json:"emergency_phone"`
	ContactTime      string `json:"contact_time"`
}

type FamilyInfo struct {
	Mother ParentInfo `json:"mother"`
	Father ParentInfo `json:"father"`
}

type EducationInfo struct {
	PreviousSchool string `json:"previous_school"`
	SchoolAddress  string `json:"school_address"`
	Specialization string `json:"specialization"`
	EnrollmentYear string `json:"enrollment_year" validate:"omitempty,fourdigits"`
	GraduationYear string `json:"graduation_year" validate:"omitempty,fourdigits"`
}

// HealthInfo levels (mobility, hearing, vision) are codes "0" to "4".
type HealthInfo struct {
	MedicalHistory string `json:"medical_history"`
	Mobility       string `json:"mobility" validate:"omitempty,oneof=0 1 2 3 4"`
	Hearing        string `json:"hearing" validate:"omitempty,oneof=0 1 2 3 4"`
	Vision         string `json:"vision" validate:"omitempty,oneof=0 1 2 3 4"`
	FutureAmbition string `json:"future_ambition"`
}

type EducationHealth struct {
	Education EducationInfo `json:"education"`
	Health    HealthInfo    `json:"health"`
}
