package query_test

import (
	"github.com/frahmantamala/user-dashboard/internal/query"
	"github.com/frahmantamala/user-dashboard/internal/record"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("State", func() {
	It("defaults to id ascending with no search or filters", func() {
		s := query.Default()
		Expect(s.Search).To(BeEmpty())
		Expect(s.Filters.IsEmpty()).To(BeTrue())
		Expect(s.SortField).To(Equal(record.FieldID))
		Expect(s.SortOrder).To(Equal(query.Asc))
	})

	It("returns a copy from WithSearch", func() {
		s := query.Default()
		next := s.WithSearch("ann")
		Expect(next.Search).To(Equal("ann"))
		Expect(s.Search).To(BeEmpty())
		Expect(next.Equal(s)).To(BeFalse())
	})

	Describe("filters", func() {
		It("merges a single key", func() {
			s, err := query.Default().WithFilter(record.FieldDepartment, "eng")
			Expect(err).NotTo(HaveOccurred())
			s, err = s.WithFilter(record.FieldEmail, "@x")
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Filters).To(Equal(query.Filters{Department: "eng", Email: "@x"}))
		})

		It("rejects the id column", func() {
			s := query.Default()
			next, err := s.WithFilter(record.FieldID, "1")
			Expect(err).To(MatchError(query.ErrNotFilterable))
			Expect(next).To(Equal(s))
		})

		It("applies a patch only when every key is valid", func() {
			s := query.Default()
			_, err := s.WithFilters(map[record.Field]string{record.FieldFirstName: "a", record.FieldID: "1"})
			Expect(err).To(HaveOccurred())

			next, err := s.WithFilters(map[record.Field]string{record.FieldFirstName: "a", record.FieldLastName: "b"})
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Filters.Get(record.FieldFirstName)).To(Equal("a"))
			Expect(next.Filters.Get(record.FieldLastName)).To(Equal("b"))
		})

		It("clears every pattern", func() {
			s, _ := query.Default().WithFilter(record.FieldEmail, "x")
			Expect(s.WithoutFilters().Filters.IsEmpty()).To(BeTrue())
		})
	})

	Describe("ToggleSort", func() {
		It("flips the active ascending column to descending", func() {
			s := query.Default().ToggleSort(record.FieldID)
			Expect(s.SortOrder).To(Equal(query.Desc))
		})

		It("returns a descending column to ascending", func() {
			s := query.Default().WithSort(record.FieldEmail, query.Desc).ToggleSort(record.FieldEmail)
			Expect(s.SortOrder).To(Equal(query.Asc))
		})

		It("sorts a new column ascending", func() {
			s := query.Default().WithSort(record.FieldEmail, query.Desc).ToggleSort(record.FieldLastName)
			Expect(s.SortField).To(Equal(record.FieldLastName))
			Expect(s.SortOrder).To(Equal(query.Asc))
		})
	})

	Describe("parsing", func() {
		It("parses orders", func() {
			o, err := query.ParseOrder("desc")
			Expect(err).NotTo(HaveOccurred())
			Expect(o).To(Equal(query.Desc))
			_, err = query.ParseOrder("DESC")
			Expect(err).To(MatchError(query.ErrUnknownOrder))
		})

		It("accepts id as a sort field but not as a filter field", func() {
			f, err := query.ParseSortField("id")
			Expect(err).NotTo(HaveOccurred())
			Expect(f).To(Equal(record.FieldID))
			_, err = query.ParseFilterField("id")
			Expect(err).To(MatchError(query.ErrNotFilterable))
			_, err = query.ParseFilterField("phone")
			Expect(err).To(MatchError(query.ErrUnknownField))
		})
	})
})
