package directory_test

import (
	"context"
	"fmt"
	"regexp"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/frahmantamala/user-dashboard/internal/directory"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Seed", func() {
	var (
		mock   sqlmock.Sqlmock
		insert = regexp.QuoteMeta("INSERT INTO directory_users")
	)

	open := func(driver string) *sqlx.DB {
		mockDB, m, err := sqlmock.New()
		Expect(err).NotTo(HaveOccurred())
		mock = m
		DeferCleanup(func() {
			m.ExpectClose()
			Expect(mockDB.Close()).To(Succeed())
		})
		return sqlx.NewDb(mockDB, driver)
	}

	BeforeEach(func() {
		mock = nil
	})

	AfterEach(func() {
		if mock != nil {
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		}
	})

	It("clears the table and inserts every user in one transaction", func() {
		db := open("sqlite3")
		users := directory.CanonicalUsers[:2]

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM directory_users")).WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(2, 0))
		mock.ExpectCommit()

		n, err := directory.Seed(context.Background(), db, users, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))
	})

	It("moves the postgres sequence past the seeded ids", func() {
		db := open("pgx")

		mock.ExpectBegin()
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("SELECT setval")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		n, err := directory.Seed(context.Background(), db, directory.CanonicalUsers[:1], false)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))
	})

	It("rolls back when an insert fails", func() {
		db := open("sqlite3")

		mock.ExpectBegin()
		mock.ExpectExec(insert).WillReturnError(fmt.Errorf("disk full"))
		mock.ExpectRollback()

		_, err := directory.Seed(context.Background(), db, directory.CanonicalUsers[:1], false)
		Expect(err).To(MatchError(ContainSubstring("insert directory user 1")))
	})

	It("ships the ten canonical users", func() {
		Expect(directory.CanonicalUsers).To(HaveLen(10))
		for i, u := range directory.CanonicalUsers {
			Expect(u.ID).To(Equal(int64(i + 1)))
			Expect(directory.Validate(u)).To(BeNil())
		}
	})
})
