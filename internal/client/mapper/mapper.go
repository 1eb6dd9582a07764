// Package mapper turns committed step drafts into the registration payload.
// Transform is total: any missing or unparsable input becomes the zero
// value of its output field.
package mapper

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
)

// MaleCode is the gender code that maps to true on the wire.
const MaleCode = "0"

// GenderFromCode maps the gender code to the wire boolean: MaleCode is true,
// every other value (including empty) is false.
func GenderFromCode(code string) bool {
	return strings.TrimSpace(code) == MaleCode
}

// ParseInt parses a base-10 integer, returning 0 for empty or invalid input.
// The whole trimmed string must be an integer: "12.5" and "1,500" give 0,
// not their leading digits.
func ParseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Transform builds the payload from the student, family and
// education/health drafts plus the descriptors of uploaded images.
func Transform(student models.StudentInfo, family models.FamilyInfo, eh models.EducationHealth, images []models.ImageDescriptor) models.RegistrationPayload {
	p := models.RegistrationPayload{
		Student: models.StudentData{
			ChildSchool:      ParseInt(student.ChildSchool),
			ChildNextClass:   student.ChildNextClass,
			FullName:         student.FullName,
			BirthPlace:       student.BirthPlace,
			FamilyName:       student.FamilyName,
			Religion:         student.Religion,
			Birthday:         student.Birthday,
			AgeInJuly:        ParseInt(student.AgeInJuly),
			IDPassportNumber: ParseInt(student.IDPassportNumber),
			Gender:           GenderFromCode(student.Gender),
			Nationality:      ParseInt(student.Nationality),
			WeightHeight:     student.WeightHeight,
			SiblingOrder:     ParseInt(student.SiblingOrder),
			HomeLanguage:     student.HomeLanguage,
			LivingWith:       ParseInt(student.LivingWith),
		},
		Mother: parent(family.Mother),
		Father: parent(family.Father),
		Education: models.EducationData{
			PreviousSchool: eh.Education.PreviousSchool,
			SchoolAddress:  eh.Education.SchoolAddress,
			Specialization: eh.Education.Specialization,
			EnrollmentYear: ParseInt(eh.Education.EnrollmentYear),
			GraduationYear: ParseInt(eh.Education.GraduationYear),
		},
		Health: models.HealthData{
			MedicalHistory: eh.Health.MedicalHistory,
			Mobility:       ParseInt(eh.Health.Mobility),
			Hearing:        ParseInt(eh.Health.Hearing),
			Vision:         ParseInt(eh.Health.Vision),
			FutureAmbition: eh.Health.FutureAmbition,
		},
	}

	if len(images) > 0 {
		p.Images = append([]models.ImageDescriptor(nil), images...)
	}
	return p
}

func parent(in models.ParentInfo) models.ParentData {
	return models.ParentData{
		FullName:         in.FullName,
		Birthday:         in.Birthday,
		Age:              ParseInt(in.Age),
		Religion:         in.Religion,
		BirthPlace:       in.BirthPlace,
		Nationality:      in.Nationality,
		RegistrationRole: in.RegistrationRole,
		Specialization:   in.Specialization,
		LastEducation:    in.LastEducation,
		JobTitle:         in.JobTitle,
		JobType:          in.JobType,
		Employer:         in.Employer,
		EmployerAddress:  in.EmployerAddress,
		OfficePhone:      in.OfficePhone,
		MonthlyIncome:    ParseInt(in.MonthlyIncome),
		Email:            in.Email,
		Phone:            in.Phone,
		EmergencyPhone:   in.EmergencyPhone,
		ContactTime:      ParseInt(in.ContactTime),
	}
}
