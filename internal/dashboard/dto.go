package dashboard

import (
	"github.com/frahmantamala/user-dashboard/internal/record"
)

type SearchRequest struct {
	Search *string `json:"search"`
}

type SortRequest struct {
	Field string `json:"field"`
	Order string `json:"order,omitempty"`
}

type PageSizeRequest struct {
	PageSize int `json:"page_size"`
}

// PageRequest selects a page by number or steps with direction
// "previous" or "next".
type PageRequest struct {
	Page      *int   `json:"page,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type UserRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func (r UserRequest) Draft() record.Draft {
	return record.Draft{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Department: r.Department,
	}
}

type UserResponse struct {
	User record.Record `json:"user"`
}

type MutationResponse struct {
	User *record.Record `json:"user,omitempty"`
	View View           `json:"view"`
}
