package directoryuser

import "time"

// User is a directory_users row. gorm tags serve the repository, db tags the
// sqlx seeder.
type User struct {
	ID                 int64     `gorm:"primaryKey" db:"id"`
	Name               string    `gorm:"column:name;not null" db:"name"`
	Username           string    `gorm:"column:username" db:"username"`
	Email              string    `gorm:"column:email;not null" db:"email"`
	Phone              string    `gorm:"column:phone" db:"phone"`
	Website            string    `gorm:"column:website" db:"website"`
	AddressStreet      string    `gorm:"column:address_street" db:"address_street"`
	AddressSuite       string    `gorm:"column:address_suite" db:"address_suite"`
	AddressCity        string    `gorm:"column:address_city" db:"address_city"`
	AddressZipcode     string    `gorm:"column:address_zipcode" db:"address_zipcode"`
	GeoLat             string    `gorm:"column:geo_lat" db:"geo_lat"`
	GeoLng             string    `gorm:"column:geo_lng" db:"geo_lng"`
	CompanyName        string    `gorm:"column:company_name" db:"company_name"`
	CompanyCatchPhrase string    `gorm:"column:company_catch_phrase" db:"company_catch_phrase"`
	CompanyBS          string    `gorm:"column:company_bs" db:"company_bs"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" db:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" db:"updated_at"`
}

func (User) TableName() string {
	return "directory_users"
}
