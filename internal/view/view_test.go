package view_test

import (
	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
	"github.com/frahmantamala/user-dashboard/internal/view"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ids(rs []record.Record) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

var _ = Describe("ComputeVisible", func() {
	var records []record.Record

	BeforeEach(func() {
		records = []record.Record{
			{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@x.com", Department: "Engineering"},
			{ID: 2, FirstName: "Ann", LastName: "Lee", Email: "ann@y.com", Department: "Sales"},
			{ID: 12, FirstName: "Zoë", LastName: "Ärger", Email: "zoe@x.com", Department: "engineering"},
			{ID: 3, FirstName: "bob", LastName: "Doe", Email: "bob@z.com", Department: "Support"},
		}
	})

	It("returns everything in id order for the default query", func() {
		Expect(ids(view.ComputeVisible(records, query.Default()))).To(Equal([]int64{1, 2, 3, 12}))
	})

	It("does not modify its input", func() {
		before := append([]record.Record(nil), records...)
		q := query.Default().WithSort(record.FieldFirstName, query.Desc)
		view.ComputeVisible(records, q)
		Expect(records).To(Equal(before))
	})

	It("returns a fresh slice", func() {
		out := view.ComputeVisible(records, query.Default())
		out[0].FirstName = "Changed"
		Expect(records[0].FirstName).To(Equal("John"))
	})

	Describe("filtering", func() {
		It("matches a case-insensitive substring", func() {
			q, _ := query.Default().WithFilter(record.FieldDepartment, "ENGIN")
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{1, 12}))
		})

		It("requires every non-empty filter to match", func() {
			q, _ := query.Default().WithFilters(map[record.Field]string{
				record.FieldDepartment: "engineering",
				record.FieldEmail:      "john",
			})
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{1}))
		})

		It("folds non-ASCII letters", func() {
			q, _ := query.Default().WithFilter(record.FieldLastName, "ärg")
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{12}))
		})

		It("can yield nothing", func() {
			q, _ := query.Default().WithFilter(record.FieldEmail, "nobody")
			Expect(view.ComputeVisible(records, q)).To(BeEmpty())
		})
	})

	Describe("search", func() {
		It("matches any text column case-insensitively", func() {
			q := query.Default().WithSearch("DOE")
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{1, 3}))
		})

		It("matches the decimal id", func() {
			q := query.Default().WithSearch("2")
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{2, 12}))
		})

		It("is applied after the filters", func() {
			q, _ := query.Default().WithFilter(record.FieldLastName, "doe")
			q = q.WithSearch("bob")
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{3}))
		})
	})

	Describe("sorting", func() {
		It("sorts ids numerically", func() {
			q := query.Default().WithSort(record.FieldID, query.Desc)
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{12, 3, 2, 1}))
		})

		It("sorts text case-insensitively", func() {
			q := query.Default().WithSort(record.FieldFirstName, query.Asc)
			Expect(ids(view.ComputeVisible(records, q))).To(Equal([]int64{2, 3, 1, 12}))
		})

		It("keeps store order for equal keys in both directions", func() {
			asc := query.Default().WithSort(record.FieldLastName, query.Asc)
			Expect(ids(view.ComputeVisible(records, asc))).To(Equal([]int64{1, 3, 2, 12}))

			desc := query.Default().WithSort(record.FieldLastName, query.Desc)
			Expect(ids(view.ComputeVisible(records, desc))).To(Equal([]int64{12, 2, 1, 3}))
		})

		It("sorts Lee before Doe descending", func() {
			two := []record.Record{
				{ID: 1, FirstName: "John", LastName: "Doe"},
				{ID: 2, FirstName: "Ann", LastName: "Lee"},
			}
			q := query.Default().WithSort(record.FieldLastName, query.Desc)
			out := view.ComputeVisible(two, q)
			Expect(out[0].FirstName).To(Equal("Ann"))
			Expect(out[1].FirstName).To(Equal("John"))
		})
	})
})
