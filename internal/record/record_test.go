package record_test

import (
	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
	"github.com/frahmantamala/user-dashboard/internal/record"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FromRaw", func() {
	raw := func(name string) directoryuser.RawUser {
		return directoryuser.RawUser{
			ID:      7,
			Name:    name,
			Email:   "kurtis@billy.biz",
			Company: directoryuser.Company{Name: "Johns Group"},
		}
	}

	It("splits the name on the first space", func() {
		r := record.FromRaw(raw("Kurtis Weissnat"))
		Expect(r).To(Equal(record.Record{
			ID:         7,
			FirstName:  "Kurtis",
			LastName:   "Weissnat",
			Email:      "kurtis@billy.biz",
			Department: "Johns Group",
		}))
	})

	It("joins the remaining tokens into the last name", func() {
		r := record.FromRaw(raw("Nicholas Runolfsdottir V"))
		Expect(r.FirstName).To(Equal("Nicholas"))
		Expect(r.LastName).To(Equal("Runolfsdottir V"))
	})

	It("keeps titles as the first name token", func() {
		r := record.FromRaw(raw("Mrs. Dennis Schulist"))
		Expect(r.FirstName).To(Equal("Mrs."))
		Expect(r.LastName).To(Equal("Dennis Schulist"))
	})

	It("uses N/A when the name has a single token", func() {
		r := record.FromRaw(raw("Cher"))
		Expect(r.FirstName).To(Equal("Cher"))
		Expect(r.LastName).To(Equal(record.MissingLastName))
	})

	It("preserves empty tokens from repeated spaces", func() {
		r := record.FromRaw(raw("Ann  Lee"))
		Expect(r.FirstName).To(Equal("Ann"))
		Expect(r.LastName).To(Equal(" Lee"))
	})

	It("maps a list in order", func() {
		records := record.FromRawList([]directoryuser.RawUser{raw("A B"), {ID: 2, Name: "C D"}})
		Expect(records).To(HaveLen(2))
		Expect(records[1].ID).To(Equal(int64(2)))
		Expect(records[1].Department).To(BeEmpty())
	})
})

var _ = Describe("Field", func() {
	It("parses every column name", func() {
		for _, name := range []string{"id", "firstName", "lastName", "email", "department"} {
			f, ok := record.ParseField(name)
			Expect(ok).To(BeTrue(), name)
			Expect(string(f)).To(Equal(name))
		}
	})

	It("rejects unknown names", func() {
		_, ok := record.ParseField("company")
		Expect(ok).To(BeFalse())
	})

	It("treats id as a non-text column", func() {
		Expect(record.FieldID.IsText()).To(BeFalse())
		Expect(record.FieldEmail.IsText()).To(BeTrue())
	})
})

var _ = Describe("Draft", func() {
	It("round trips through a record", func() {
		d := record.Draft{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Department: "HR"}
		r := d.WithID(4)
		Expect(r.ID).To(Equal(int64(4)))
		Expect(r.Draft()).To(Equal(d))
		Expect(d.FullName()).To(Equal("Ann Lee"))
	})
})
