package pagination_test

import (
	"github.com/frahmantamala/user-dashboard/internal/pagination"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

var _ = Describe("Pagination", func() {
	Describe("TotalPages", func() {
		DescribeTable("rounds up and never drops below one",
			func(total, size, expected int) {
				Expect(pagination.TotalPages(total, size)).To(Equal(expected))
			},
			Entry("empty list", 0, 10, 1),
			Entry("exact fit", 20, 10, 2),
			Entry("partial last page", 21, 10, 3),
			Entry("smaller than a page", 3, 25, 1),
			Entry("zero page size", 5, 0, 1),
		)
	})

	Describe("Paginate", func() {
		It("returns the requested page", func() {
			page := pagination.Paginate(seq(25), pagination.State{PageSize: 10, CurrentPage: 2})
			Expect(page).To(Equal([]int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}))
		})

		It("returns a short last page", func() {
			page := pagination.Paginate(seq(25), pagination.State{PageSize: 10, CurrentPage: 3})
			Expect(page).To(Equal([]int{21, 22, 23, 24, 25}))
		})

		It("returns the trailing items on the last page", func() {
			items := make([]int, 23)
			for i := range items {
				items[i] = i
			}
			page := pagination.Paginate(items, pagination.State{PageSize: 10, CurrentPage: 3})
			Expect(page).To(Equal([]int{20, 21, 22}))
			Expect(pagination.TotalPages(len(items), 10)).To(Equal(3))
		})

		It("returns an empty slice past the end", func() {
			page := pagination.Paginate(seq(5), pagination.State{PageSize: 10, CurrentPage: 2})
			Expect(page).NotTo(BeNil())
			Expect(page).To(BeEmpty())
		})

		It("copies the items", func() {
			items := seq(3)
			page := pagination.Paginate(items, pagination.Default())
			page[0] = 99
			Expect(items[0]).To(Equal(1))
		})
	})

	Describe("Clamp", func() {
		It("pulls the page back to the last page", func() {
			s := pagination.Clamp(pagination.State{PageSize: 10, CurrentPage: 5}, 21)
			Expect(s.CurrentPage).To(Equal(3))
		})

		It("keeps page one for an empty list", func() {
			s := pagination.Clamp(pagination.State{PageSize: 10, CurrentPage: 4}, 0)
			Expect(s.CurrentPage).To(Equal(1))
		})

		It("raises pages below one", func() {
			s := pagination.Clamp(pagination.State{PageSize: 10, CurrentPage: -3}, 40)
			Expect(s.CurrentPage).To(Equal(1))
		})

		It("leaves a valid page alone", func() {
			s := pagination.Clamp(pagination.State{PageSize: 25, CurrentPage: 2}, 40)
			Expect(s).To(Equal(pagination.State{PageSize: 25, CurrentPage: 2}))
		})
	})

	Describe("ParsePageSize", func() {
		It("accepts the offered sizes", func() {
			for _, size := range pagination.PageSizes {
				got, err := pagination.ParsePageSize(size)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(size))
			}
		})

		It("rejects anything else", func() {
			_, err := pagination.ParsePageSize(15)
			Expect(err).To(MatchError(pagination.ErrInvalidPageSize))
		})
	})

	Describe("NewMeta", func() {
		It("disables previous on the first page and next on the last", func() {
			first := pagination.NewMeta(pagination.State{PageSize: 10, CurrentPage: 1}, 15)
			Expect(first.HasPrevious).To(BeFalse())
			Expect(first.HasNext).To(BeTrue())
			Expect(first.TotalPages).To(Equal(2))

			last := pagination.NewMeta(pagination.State{PageSize: 10, CurrentPage: 2}, 15)
			Expect(last.HasPrevious).To(BeTrue())
			Expect(last.HasNext).To(BeFalse())
		})

		It("disables both on a single page", func() {
			m := pagination.NewMeta(pagination.Default(), 0)
			Expect(m.HasPrevious).To(BeFalse())
			Expect(m.HasNext).To(BeFalse())
		})
	})
})
