package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
	"github.com/dmitrijs2005/agsregistration/internal/client/schemas"
	"github.com/dmitrijs2005/agsregistration/internal/client/services"
	"github.com/dmitrijs2005/agsregistration/internal/client/wizard"
	"github.com/dmitrijs2005/agsregistration/internal/common"
)

// field binds a prompt label to one string of a draft.
type field struct {
	label string
	value *string
}

func classFields(c *models.ClassInfo) []field {
	return []field{
		{"School (number)", &c.ChildSchool},
		{"Next class", &c.ChildNextClass},
	}
}

func studentFields(s *models.StudentInfo) []field {
	return []field{
		{"Full name", &s.FullName},
		{"Family name", &s.FamilyName},
		{"Birth place", &s.BirthPlace},
		{"Birthday (YYYY-MM-DD)", &s.Birthday},
		{"Age in July", &s.AgeInJuly},
		{"Religion", &s.Religion},
		{"ID / passport number", &s.IDPassportNumber},
		{"Gender (0 male, 1 female)", &s.Gender},
		{"Nationality (code)", &s.Nationality},
		{"Weight / height", &s.WeightHeight},
		{"Order among siblings", &s.SiblingOrder},
		{"Home language", &s.HomeLanguage},
		{"Living with (code)", &s.LivingWith},
	}
}

func parentFields(who string, p *models.ParentInfo) []field {
	return []field{
		{who + " full name", &p.FullName},
		{who + " birthday (YYYY-MM-DD)", &p.Birthday},
		{who + " age", &p.Age},
		{who + " religion", &p.Religion},
		{who + " birth place", &p.BirthPlace},
		{who + " nationality", &p.Nationality},
		{who + " registration role", &p.RegistrationRole},
		{who + " specialization", &p.Specialization},
		{who + " last education", &p.LastEducation},
		{who + " job title", &p.JobTitle},
		{who + " job type", &p.JobType},
		{who + " employer", &p.Employer},
		{who + " employer address", &p.EmployerAddress},
		{who + " office phone", &p.OfficePhone},
		{who + " monthly income", &p.MonthlyIncome},
		{who + " email", &p.Email},
		{who + " phone", &p.Phone},
		{who + " emergency phone", &p.EmergencyPhone},
		{who + " preferred contact time (code)", &p.ContactTime},
	}
}

func familyFields(f *models.FamilyInfo) []field {
	return append(parentFields("Mother", &f.Mother), parentFields("Father", &f.Father)...)
}

func educationHealthFields(eh *models.EducationHealth) []field {
	return []field{
		{"Previous school", &eh.Education.PreviousSchool},
		{"School address", &eh.Education.SchoolAddress},
		{"Specialization", &eh.Education.Specialization},
		{"Enrollment year", &eh.Education.EnrollmentYear},
		{"Graduation year", &eh.Education.GraduationYear},
		{"Medical history", &eh.Health.MedicalHistory},
		{"Mobility (0-4)", &eh.Health.Mobility},
		{"Hearing (0-4)", &eh.Health.Hearing},
		{"Vision (0-4)", &eh.Health.Vision},
		{"Future ambition", &eh.Health.FutureAmbition},
	}
}

func (a *App) fill(fields []field) error {
	for _, f := range fields {
		v, err := GetWithDefault(a.reader, f.label, *f.value, a.prompts)
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}

// editStep enters step id, prompts for every field starting from the saved
// draft, and commits. Validation failures are printed per field and leave
// the wizard on the step.
func editStep[T any](ctx context.Context, a *App, id wizard.StepID, form *wizard.Form[T], fields func(*T) []field) error {
	if err := a.wizard.Goto(ctx, id); err != nil {
		a.printError(err)
		return err
	}

	v := form.Mount(ctx)
	fmt.Fprintf(a.out, "%s (Enter keeps the value in brackets, %q clears it)\n", id, clearValue)
	if err := a.fill(fields(&v)); err != nil {
		a.printError(err)
		return err
	}

	if _, err := form.Submit(ctx, v); err != nil {
		a.printError(err)
		return err
	}

	a.wizard.Advance(id)
	fmt.Fprintf(a.out, "%s saved. Next: %s\n", id, a.wizard.Current())
	return nil
}

func (a *App) EditClass(ctx context.Context) error {
	return editStep(ctx, a, wizard.StepClass, a.wizard.Class, classFields)
}

func (a *App) EditStudent(ctx context.Context) error {
	return editStep(ctx, a, wizard.StepStudent, a.wizard.Student, studentFields)
}

func (a *App) EditFamily(ctx context.Context) error {
	return editStep(ctx, a, wizard.StepFamily, a.wizard.Family, familyFields)
}

func (a *App) EditEducationHealth(ctx context.Context) error {
	return editStep(ctx, a, wizard.StepEducationHealth, a.wizard.EducationHealth, educationHealthFields)
}

// Status prints the stepper.
func (a *App) Status(ctx context.Context) error {
	for i, s := range a.wizard.Status(ctx) {
		mark := " "
		if s.Saved {
			mark = "x"
		}
		cur := ""
		if s.Current {
			cur = "  <"
		}
		fmt.Fprintf(a.out, "[%s] %d. %s%s\n", mark, i+1, s.ID, cur)
	}
	if r := a.wizard.Receipt(); r != nil {
		fmt.Fprintf(a.out, "Last registration: id %s, student %s\n", r.ID, r.StudentID)
	}
	return nil
}

// Reset clears every saved answer after confirmation.
func (a *App) Reset(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Clear all saved answers?", a.out)
	if err != nil {
		a.printError(err)
		return err
	}
	if !ok {
		return nil
	}
	a.wizard.Reset(ctx)
	fmt.Fprintln(a.out, "All saved answers were cleared.")
	return nil
}

// printError turns any command error into a message for the applicant.
func (a *App) printError(err error) {
	if fe, ok := schemas.AsFieldErrors(err); ok {
		fmt.Fprintln(a.out, "Please correct the following:")
		for _, k := range fe.Fields() {
			fmt.Fprintf(a.out, "  %s: %s\n", k, fe[k])
		}
		return
	}
	var subErr *services.SubmissionError
	if errors.As(err, &subErr) {
		fmt.Fprintln(a.out, subErr.UserMessage())
		return
	}
	var upErr *services.UploadError
	if errors.As(err, &upErr) {
		fmt.Fprintf(a.out, "Could not upload %s (%s): %v\nYour files are kept; run submit again to retry.\n", upErr.FileName, upErr.DocumentType.Slot(), upErr.Err)
		return
	}
	if errors.Is(err, common.ErrStepIncomplete) {
		fmt.Fprintf(a.out, "Not yet: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "error: %v\n", err)
}
