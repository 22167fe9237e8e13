package validation_test

import (
	"regexp"

	errors "github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func details(err *errors.AppError) []errors.ValidationError {
	Expect(err).NotTo(BeNil())
	d, ok := err.Details.(errors.ValidationErrors)
	Expect(ok).To(BeTrue())
	return d.Errors
}

var _ = Describe("ValidationBuilder", func() {
	digits := regexp.MustCompile(`^\d+$`)

	It("passes when every validator passes", func() {
		v := validation.NewValidator()
		v.Field("code", "123").Required().Matches(digits, "digits only")
		Expect(v.Validate()).To(BeNil())
	})

	It("uses the label in generated messages", func() {
		v := validation.NewValidator()
		v.Field("first_name", "").Labeled("First Name").Required()
		errs := details(v.Validate())
		Expect(errs).To(ConsistOf(errors.ValidationError{
			Field:   "first_name",
			Message: "First Name is required",
			Code:    string(errors.ErrCodeRequired),
		}))
	})

	It("reports only the first failure of a field", func() {
		v := validation.NewValidator()
		v.Field("code", "").Required().Matches(digits, "digits only")
		errs := details(v.Validate())
		Expect(errs).To(HaveLen(1))
		Expect(errs[0].Message).To(Equal("code is required"))
	})

	It("reports every failing field in order", func() {
		v := validation.NewValidator()
		v.Field("a", "").Required()
		v.Field("b", "x").Matches(digits, "b must be digits")
		v.Field("c", "toolong").MaxLength(3)
		errs := details(v.Validate())
		Expect(errs).To(HaveLen(3))
		Expect(errs[0].Field).To(Equal("a"))
		Expect(errs[1].Message).To(Equal("b must be digits"))
		Expect(errs[2].Code).To(Equal(string(errors.ErrCodeTooLong)))
	})

	It("rejects whitespace-only values with NotBlank", func() {
		v := validation.NewValidator()
		v.Field("name", "   ").Required().NotBlank()
		Expect(details(v.Validate())[0].Message).To(Equal("name must not be blank"))
	})

	It("checks membership with OneOf", func() {
		v := validation.NewValidator()
		v.Field("page_size", 15).OneOf([]int{10, 25}, errors.ErrCodeInvalidPageSize)
		errs := details(v.Validate())
		Expect(errs[0].Code).To(Equal(string(errors.ErrCodeInvalidPageSize)))
	})

	It("returns a 400 validation error", func() {
		v := validation.NewValidator()
		v.Field("id", int64(0)).Required()
		err := v.Validate()
		Expect(err.StatusCode).To(Equal(400))
		Expect(err.Code).To(Equal(errors.ErrCodeValidationFailed))
	})

	It("reports the chosen code with ValidateAs", func() {
		v := validation.NewValidator()
		v.Field("page_size", 7).Labeled("Page size").OneOf([]int{10, 25}, errors.ErrCodeInvalidPageSize)
		err := v.ValidateAs("Invalid page size", errors.ErrCodeInvalidPageSize)
		Expect(err.Code).To(Equal(errors.ErrCodeInvalidPageSize))
		Expect(err.Message).To(Equal("Invalid page size"))
		Expect(details(err)[0].Message).To(Equal("Page size must be one of [10 25]"))
	})

	It("passes ValidateAs when every field is valid", func() {
		v := validation.NewValidator()
		v.Field("page_size", 25).OneOf([]int{10, 25}, errors.ErrCodeInvalidPageSize)
		Expect(v.ValidateAs("Invalid page size", errors.ErrCodeInvalidPageSize)).To(BeNil())
	})
})
