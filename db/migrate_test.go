package db_test

import (
	"context"
	"database/sql"

	"github.com/frahmantamala/user-dashboard/db"
	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("embedded migrations", func() {
	var sqlDB *sql.DB

	BeforeEach(func() {
		var err error
		sqlDB, err = sql.Open("sqlite3", ":memory:")
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
	})

	AfterEach(func() {
		sqlDB.Close()
	})

	tableExists := func() bool {
		var name string
		err := sqlDB.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='directory_users'`).Scan(&name)
		return err == nil
	}

	It("creates and drops the directory table", func() {
		ctx := context.Background()
		Expect(db.Up(ctx, sqlDB, "sqlite3")).To(Succeed())
		Expect(tableExists()).To(BeTrue())

		Expect(db.Up(ctx, sqlDB, "sqlite3")).To(Succeed())

		Expect(db.Down(ctx, sqlDB, "sqlite3")).To(Succeed())
		Expect(tableExists()).To(BeFalse())
	})

	It("ships both dialects", func() {
		for _, dialect := range []string{"postgres", "sqlite3"} {
			entries, err := db.Migrations.ReadDir(db.MigrationsDir(dialect))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
		}
	})
})
