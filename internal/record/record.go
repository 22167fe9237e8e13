package record

import (
	"strconv"
	"strings"

	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
)

// Field names a sortable or filterable column of a Record.
type Field string

const (
	FieldID         Field = "id"
	FieldFirstName  Field = "firstName"
	FieldLastName   Field = "lastName"
	FieldEmail      Field = "email"
	FieldDepartment Field = "department"
)

// MissingLastName is stored when a directory name has a single token.
const MissingLastName = "N/A"

// TextFields are the string columns, in display order.
var TextFields = []Field{FieldFirstName, FieldLastName, FieldEmail, FieldDepartment}

// ParseField resolves a column name; it accepts the id column too.
func ParseField(name string) (Field, bool) {
	switch f := Field(name); f {
	case FieldID, FieldFirstName, FieldLastName, FieldEmail, FieldDepartment:
		return f, true
	}
	return "", false
}

func (f Field) IsText() bool {
	switch f {
	case FieldFirstName, FieldLastName, FieldEmail, FieldDepartment:
		return true
	}
	return false
}

type Record struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Text returns the value of a string column, or "" for FieldID.
func (r Record) Text(f Field) string {
	switch f {
	case FieldFirstName:
		return r.FirstName
	case FieldLastName:
		return r.LastName
	case FieldEmail:
		return r.Email
	case FieldDepartment:
		return r.Department
	}
	return ""
}

func (r Record) IDString() string {
	return strconv.FormatInt(r.ID, 10)
}

func (r Record) Draft() Draft {
	return Draft{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Department: r.Department,
	}
}

// Draft is the operator's form input for add and edit, without an id.
type Draft struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (d Draft) WithID(id int64) Record {
	return Record{
		ID:         id,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		Department: d.Department,
	}
}

// FullName is the directory "name" for this draft.
func (d Draft) FullName() string {
	return d.FirstName + " " + d.LastName
}

// FromRaw maps a directory user onto a Record. The name is split on single
// spaces: the first token is the first name, the rest the last name.
func FromRaw(u directoryuser.RawUser) Record {
	parts := strings.Split(u.Name, " ")
	lastName := strings.Join(parts[1:], " ")
	if lastName == "" {
		lastName = MissingLastName
	}
	return Record{
		ID:         u.ID,
		FirstName:  parts[0],
		LastName:   lastName,
		Email:      u.Email,
		Department: u.Company.Name,
	}
}

func FromRawList(users []directoryuser.RawUser) []Record {
	records := make([]Record, 0, len(users))
	for _, u := range users {
		records = append(records, FromRaw(u))
	}
	return records
}
