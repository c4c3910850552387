package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/course-kiosk-api/internal/models"
	"github.com/noah-isme/course-kiosk-api/pkg/calendar"
)

// FieldError names one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Value string `json:"value,omitempty"`
}

// ValidationError lists every rule a record broke.
type ValidationError struct {
	Kind   string       `json:"kind"`
	ID     string       `json:"id"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Kind, e.ID, strings.Join(parts, ", "))
}

// Validator checks raw records before they reach enrichment.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the "clock" rule on validate, or on a fresh
// validator when nil.
func NewValidator(validate *validator.Validate) *Validator {
	if validate == nil {
		validate = validator.New()
	}
	if err := validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := calendar.ParseClock(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return &Validator{validate: validate}
}

// Class validates a class record, including start < end.
func (v *Validator) Class(rec models.ClassRecord) error {
	fields := v.structFields(rec)
	start, startErr := calendar.ParseClock(rec.StartTime)
	end, endErr := calendar.ParseClock(rec.EndTime)
	if startErr == nil && endErr == nil && start >= end {
		fields = append(fields, FieldError{Field: "end_time", Rule: "after_start", Value: rec.EndTime})
	}
	return newValidationError("class", rec.ID, fields)
}

func (v *Validator) Course(c models.Course) error {
	return newValidationError("course", c.ID, v.structFields(c))
}

func (v *Validator) Teacher(t models.Teacher) error {
	return newValidationError("teacher", t.ID, v.structFields(t))
}

func (v *Validator) Room(r models.Room) error {
	return newValidationError("room", r.ID, v.structFields(r))
}

// Dataset splits ds into the records that passed validation and the errors
// for those that did not.
func (v *Validator) Dataset(ds models.Dataset) (models.Dataset, []error) {
	var (
		valid models.Dataset
		errs  []error
	)
	for _, c := range ds.Courses {
		if err := v.Course(c); err != nil {
			errs = append(errs, err)
			continue
		}
		valid.Courses = append(valid.Courses, c)
	}
	for _, t := range ds.Teachers {
		if err := v.Teacher(t); err != nil {
			errs = append(errs, err)
			continue
		}
		valid.Teachers = append(valid.Teachers, t)
	}
	for _, r := range ds.Rooms {
		if err := v.Room(r); err != nil {
			errs = append(errs, err)
			continue
		}
		valid.Rooms = append(valid.Rooms, r)
	}
	for _, c := range ds.Classes {
		if err := v.Class(c); err != nil {
			errs = append(errs, err)
			continue
		}
		valid.Classes = append(valid.Classes, c)
	}
	return valid, errs
}

func (v *Validator) structFields(s any) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "*", Rule: err.Error()}}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field: toSnake(fe.Field()),
			Rule:  fe.Tag(),
			Value: fmt.Sprint(fe.Value()),
		})
	}
	return fields
}

func newValidationError(kind, id string, fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, ID: id, Fields: fields}
}

func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
