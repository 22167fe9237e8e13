// Package userform validates the add/edit user form before anything is sent
// to the directory.
package userform

import (
	"regexp"

	errors "github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/common/validation"
	"github.com/frahmantamala/user-dashboard/internal/record"
)

// Unicode separators such as U+00A0 count as whitespace, not just ASCII.
var emailPattern = regexp.MustCompile(`[^\s\p{Z}]+@[^\s\p{Z}]+\.[^\s\p{Z}]+`)

const (
	MsgFirstNameRequired  = "First Name is required"
	MsgLastNameRequired   = "Last Name is required"
	MsgEmailRequired      = "Email is required"
	MsgEmailInvalid       = "Invalid email format"
	MsgDepartmentRequired = "Department is required"
)

// Validate returns nil for a submittable draft, otherwise a validation
// AppError with one message per failing field keyed by its record column.
func Validate(d record.Draft) *errors.AppError {
	v := validation.NewValidator()
	v.Field(string(record.FieldFirstName), d.FirstName).
		Labeled("First Name").
		Required()
	v.Field(string(record.FieldLastName), d.LastName).
		Labeled("Last Name").
		Required()
	v.Field(string(record.FieldEmail), d.Email).
		Labeled("Email").
		Required().
		Matches(emailPattern, MsgEmailInvalid)
	v.Field(string(record.FieldDepartment), d.Department).
		Labeled("Department").
		Required()
	return v.Validate()
}

// Messages flattens a validation error into field -> message.
func Messages(err *errors.AppError) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	if d, ok := err.Details.(errors.ValidationErrors); ok {
		for _, e := range d.Errors {
			out[e.Field] = e.Message
		}
	}
	return out
}
