package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
	"github.com/jmoiron/sqlx"
)

const insertUserSQL = `INSERT INTO directory_users (
	id, name, username, email, phone, website,
	address_street, address_suite, address_city, address_zipcode, geo_lat, geo_lng,
	company_name, company_catch_phrase, company_bs, created_at, updated_at
) VALUES (
	:id, :name, :username, :email, :phone, :website,
	:address_street, :address_suite, :address_city, :address_zipcode, :geo_lat, :geo_lng,
	:company_name, :company_catch_phrase, :company_bs, :created_at, :updated_at
) ON CONFLICT (id) DO NOTHING`

// Seed inserts users, keeping their ids. Rows whose id already exists are
// left alone; clear empties the table first. It returns the number of rows
// inserted.
func Seed(ctx context.Context, db *sqlx.DB, users []directoryuser.RawUser, clear bool) (int64, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if clear {
		if _, err := tx.ExecContext(ctx, "DELETE FROM directory_users"); err != nil {
			return 0, fmt.Errorf("clear directory users: %w", err)
		}
	}

	now := time.Now().UTC()
	var inserted int64
	for _, u := range users {
		row := ToDataModel(u)
		row.CreatedAt, row.UpdatedAt = now, now

		res, err := tx.NamedExecContext(ctx, insertUserSQL, row)
		if err != nil {
			return 0, fmt.Errorf("insert directory user %d: %w", u.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}

	// explicit ids leave the postgres sequence behind
	if db.DriverName() == "pgx" {
		if _, err := tx.ExecContext(ctx, `SELECT setval(pg_get_serial_sequence('directory_users', 'id'), COALESCE(MAX(id), 1)) FROM directory_users`); err != nil {
			return 0, fmt.Errorf("reset id sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return inserted, nil
}

func canonical(id int64, name, username, email, street, suite, city, zipcode, lat, lng, phone, website, company, catchPhrase, bs string) directoryuser.RawUser {
	return directoryuser.RawUser{
		ID:       id,
		Name:     name,
		Username: username,
		Email:    email,
		Address: directoryuser.Address{
			Street:  street,
			Suite:   suite,
			City:    city,
			Zipcode: zipcode,
			Geo:     directoryuser.Geo{Lat: lat, Lng: lng},
		},
		Phone:   phone,
		Website: website,
		Company: directoryuser.Company{Name: company, CatchPhrase: catchPhrase, BS: bs},
	}
}

// CanonicalUsers are the ten users JSONPlaceholder serves.
var CanonicalUsers = []directoryuser.RawUser{
	canonical(1, "Leanne Graham", "Bret", "Sincere@april.biz", "Kulas Light", "Apt. 556", "Gwenborough", "92998-3874", "-37.3159", "81.1496", "1-770-736-8031 x56442", "hildegard.org", "Romaguera-Crona", "Multi-layered client-server neural-net", "harness real-time e-markets"),
	canonical(2, "Ervin Howell", "Antonette", "Shanna@melissa.tv", "Victor Plains", "Suite 879", "Wisokyburgh", "90566-7771", "-43.9509", "-34.4618", "010-692-6593 x09125", "anastasia.net", "Deckow-Crist", "Proactive didactic contingency", "synergize scalable supply-chains"),
	canonical(3, "Clementine Bauch", "Samantha", "Nathan@yesenia.net", "Douglas Extension", "Suite 847", "McKenziehaven", "59590-4157", "-68.6102", "-47.0653", "1-463-123-4447", "ramiro.info", "Romaguera-Jacobson", "Face to face bifurcated interface", "e-enable strategic applications"),
	canonical(4, "Patricia Lebsack", "Karianne", "Julianne.OConner@kory.org", "Hoeger Mall", "Apt. 692", "South Elvis", "53919-4257", "29.4572", "-164.2990", "493-170-9623 x156", "kale.biz", "Robel-Corkery", "Multi-tiered zero tolerance productivity", "transition cutting-edge web services"),
	canonical(5, "Chelsey Dietrich", "Kamren", "Lucio_Hettinger@annie.ca", "Skiles Walks", "Suite 351", "Roscoeview", "33263", "-31.8129", "62.5342", "(254)954-1289", "demarco.info", "Keebler LLC", "User-centric fault-tolerant solution", "revolutionize end-to-end systems"),
	canonical(6, "Mrs. Dennis Schulist", "Leopoldo_Corkery", "Karley_Dach@jasper.info", "Norberto Crossing", "Apt. 950", "South Christy", "23505-1337", "-71.4197", "71.7478", "1-477-935-8478 x6430", "ola.org", "Considine-Lockman", "Synchronised bottom-line interface", "e-enable innovative applications"),
	canonical(7, "Kurtis Weissnat", "Elwyn.Skiles", "Telly.Hoeger@billy.biz", "Rex Trail", "Suite 280", "Howemouth", "58804-1099", "24.8918", "21.8984", "210.067.6132", "elvis.io", "Johns Group", "Configurable multimedia task-force", "generate enterprise e-tailers"),
	canonical(8, "Nicholas Runolfsdottir V", "Maxime_Nienow", "Sherwood@rosamond.me", "Ellsworth Summit", "Suite 729", "Aliyaview", "45169", "-14.3990", "-120.7677", "586.493.6943 x140", "jacynthe.com", "Abernathy Group", "Implemented secondary concept", "e-enable extensible e-tailers"),
	canonical(9, "Glenna Reichert", "Delphine", "Chaim_McDermott@dana.io", "Dayna Park", "Suite 449", "Bartholomebury", "76495-3109", "24.6463", "-168.8889", "(775)976-6794 x41206", "conrad.com", "Yost and Sons", "Switchable contextually-based project", "aggregate real-time technologies"),
	canonical(10, "Clementina DuBuque", "Moriah.Stanton", "Rey.Padberg@karina.biz", "Kattie Turnpike", "Suite 198", "Lebsackbury", "31428-2261", "-38.2386", "57.2232", "024-648-3804", "ambrose.net", "Hoeger LLC", "Centralized empowering task-force", "target end-to-end models"),
}
