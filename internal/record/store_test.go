package record_test

import (
	"github.com/frahmantamala/user-dashboard/internal/record"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var store record.Store

	BeforeEach(func() {
		store = record.NewStore([]record.Record{
			{ID: 1, FirstName: "John", LastName: "Doe"},
			{ID: 2, FirstName: "Ann", LastName: "Lee"},
		})
	})

	Describe("Insert", func() {
		It("appends with the given id when it is free", func() {
			next, stored := store.Insert(record.Record{ID: 11, FirstName: "New"})
			Expect(stored.ID).To(Equal(int64(11)))
			Expect(next.Len()).To(Equal(3))
			Expect(next.All()[2].FirstName).To(Equal("New"))
		})

		It("assigns the next id when the given one is taken", func() {
			next, stored := store.Insert(record.Record{ID: 2, FirstName: "Dup"})
			Expect(stored.ID).To(Equal(int64(3)))
			Expect(next.Contains(3)).To(BeTrue())
		})

		It("assigns the next id when none was given", func() {
			_, stored := store.Insert(record.Record{FirstName: "NoID"})
			Expect(stored.ID).To(Equal(int64(3)))
		})

		It("leaves the original store untouched", func() {
			store.Insert(record.Record{ID: 5})
			Expect(store.Len()).To(Equal(2))
		})
	})

	Describe("Replace", func() {
		It("replaces in place", func() {
			next, ok := store.Replace(record.Record{ID: 1, FirstName: "Johnny"})
			Expect(ok).To(BeTrue())
			Expect(next.All()[0].FirstName).To(Equal("Johnny"))
			r, _ := store.Get(1)
			Expect(r.FirstName).To(Equal("John"))
		})

		It("reports a missing id", func() {
			next, ok := store.Replace(record.Record{ID: 9})
			Expect(ok).To(BeFalse())
			Expect(next.Len()).To(Equal(2))
		})
	})

	Describe("Remove", func() {
		It("removes by id", func() {
			next, ok := store.Remove(1)
			Expect(ok).To(BeTrue())
			Expect(next.All()).To(Equal([]record.Record{{ID: 2, FirstName: "Ann", LastName: "Lee"}}))
			Expect(store.Len()).To(Equal(2))
		})

		It("reports a missing id", func() {
			_, ok := store.Remove(42)
			Expect(ok).To(BeFalse())
		})
	})

	It("returns copies from All", func() {
		all := store.All()
		all[0].FirstName = "Mutated"
		r, _ := store.Get(1)
		Expect(r.FirstName).To(Equal("John"))
	})

	It("computes NextID on an empty store", func() {
		Expect(record.Store{}.NextID()).To(Equal(int64(1)))
	})
})
