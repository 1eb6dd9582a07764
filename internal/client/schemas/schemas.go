// Package schemas validates and normalizes the raw values of each wizard
// step. Every Validate function returns either the normalized value or a
// FieldErrors keyed by the JSON path of each offending field.
//
// Numeric-looking fields stay strings here; only their shape is checked.
package schemas

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/agsregistration/internal/client/models"
)

// FieldErrors maps a field path such as "mother.email" to a message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Fields returns the offending field paths in sorted order.
func (fe FieldErrors) Fields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var fourDigits = regexp.MustCompile(`^\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("fourdigits", func(fl validator.FieldLevel) bool {
		return fourDigits.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// check runs struct validation and converts the result to FieldErrors.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		fe[fieldPath(e.Namespace())] = message(e)
	}
	return fe
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "email":
		return "must be a valid email address"
	case "fourdigits":
		return "must be exactly four digits"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "numeric":
		return "must be a number"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	}
	return "is invalid (" + e.Tag() + ")"
}

// trimStrings trims surrounding whitespace from every string field of the
// struct pointed to by p, recursing into nested structs.
func trimStrings(p any) {
	trimValue(reflect.ValueOf(p).Elem())
}

func trimValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(strings.TrimSpace(v.String()))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			trimValue(v.Field(i))
		}
	}
}

// ValidateClassInfo requires a next class of at least two characters; the
// school is optional but numeric when given.
func ValidateClassInfo(in models.ClassInfo) (models.ClassInfo, error) {
	trimStrings(&in)
	if err := check(in); err != nil {
		return models.ClassInfo{}, err
	}
	return in, nil
}

// ValidateStudentInfo requires full name and birthday.
func ValidateStudentInfo(in models.StudentInfo) (models.StudentInfo, error) {
	trimStrings(&in)
	if err := check(in); err != nil {
		return models.StudentInfo{}, err
	}
	return in, nil
}

// ValidateFamilyInfo validates mother and father independently.
func ValidateFamilyInfo(in models.FamilyInfo) (models.FamilyInfo, error) {
	trimStrings(&in)
	if err := check(in); err != nil {
		return models.FamilyInfo{}, err
	}
	return in, nil
}

// ValidateEducationHealth checks year patterns and health level codes.
func ValidateEducationHealth(in models.EducationHealth) (models.EducationHealth, error) {
	trimStrings(&in)
	if err := check(in); err != nil {
		return models.EducationHealth{}, err
	}
	return in, nil
}
