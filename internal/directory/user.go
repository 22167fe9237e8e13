package directory

import (
	"regexp"

	errors "github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/common/validation"
	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate checks the fields a directory entry cannot do without.
func Validate(u directoryuser.RawUser) *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", u.Name).Required().NotBlank().MaxLength(255)
	v.Field("email", u.Email).Required().Matches(emailPattern, "email is invalid").MaxLength(255)
	v.Field("username", u.Username).MaxLength(255)
	return v.Validate()
}

func ToDataModel(u directoryuser.RawUser) *directoryuser.User {
	return &directoryuser.User{
		ID:                 u.ID,
		Name:               u.Name,
		Username:           u.Username,
		Email:              u.Email,
		Phone:              u.Phone,
		Website:            u.Website,
		AddressStreet:      u.Address.Street,
		AddressSuite:       u.Address.Suite,
		AddressCity:        u.Address.City,
		AddressZipcode:     u.Address.Zipcode,
		GeoLat:             u.Address.Geo.Lat,
		GeoLng:             u.Address.Geo.Lng,
		CompanyName:        u.Company.Name,
		CompanyCatchPhrase: u.Company.CatchPhrase,
		CompanyBS:          u.Company.BS,
	}
}

func FromDataModel(u *directoryuser.User) directoryuser.RawUser {
	return directoryuser.RawUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Website:  u.Website,
		Address: directoryuser.Address{
			Street:  u.AddressStreet,
			Suite:   u.AddressSuite,
			City:    u.AddressCity,
			Zipcode: u.AddressZipcode,
			Geo:     directoryuser.Geo{Lat: u.GeoLat, Lng: u.GeoLng},
		},
		Company: directoryuser.Company{
			Name:        u.CompanyName,
			CatchPhrase: u.CompanyCatchPhrase,
			BS:          u.CompanyBS,
		},
	}
}
