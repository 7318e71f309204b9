package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldErrorf("level", "must be at least %d", 1)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: level: must be at least 1; name: is required", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 1, 20).
		RequiredField("character_id").
		InvalidField("kind", "unset")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Assert().Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Rope", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  Rope  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateMaxLength() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMaxLength("name", "Thorin Oakenshield, King Under the Mountain", 20, vb)
	errors.ValidateMaxLength("avatar", "dwarf.png", 20, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["name"][0], "must be no more than 20 characters")
	s.Assert().NotContains(validationErrors, "avatar")
}

func (s *ValidationTestSuite) TestValidateRangeAndNonNegative() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("death_save_successes", 4, 0, 3, vb)
	errors.ValidateRange("death_save_failures", 2, 0, 3, vb)
	errors.ValidateNonNegative("gold", -5, vb)
	errors.ValidateNonNegative("silver", 0, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["death_save_successes"][0], "must be between 0 and 3")
	s.Assert().Contains(validationErrors["gold"][0], "must not be negative")
	s.Assert().NotContains(validationErrors, "death_save_failures")
	s.Assert().NotContains(validationErrors, "silver")
}
