package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	s.Equal("NOT_FOUND: note note-7 not found", errors.NotFoundf("note %s not found", "note-7").Error())

	cause := stderrors.New("database is locked")
	s.Equal("INTERNAL: failed to update hp: database is locked",
		errors.Wrap(cause, "failed to update hp").Error())
}

func (s *ErrorsTestSuite) TestConstructorsSetCode() {
	for code, err := range map[errors.Code]*errors.Error{
		errors.CodeNotFound:           errors.NotFound("equipment Rope not found"),
		errors.CodeInvalidArgument:    errors.InvalidArgumentf("unknown coin type %q", "xp"),
		errors.CodeAlreadyExists:      errors.AlreadyExistsf("spell %q already known", "Shield"),
		errors.CodeFailedPrecondition: errors.FailedPreconditionf("character is already level %d", 20),
		errors.CodeAborted:            errors.Abortedf("character %s changed during update", "char-1"),
		errors.CodeDataLoss:           errors.DataLossf("unknown race tag %q", "RACE_GIANT"),
		errors.CodeInternal:           errors.Internal("store closed"),
		errors.CodeUnavailable:        errors.Unavailable("srd lookup failed"),
	} {
		s.Equal(code, err.Code, err.Message)
		s.Equal(code, errors.GetCode(err))
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.NotFound("note not found").
		WithMeta("character_id", "char-1").
		WithMeta("note_id", "note-7")

	s.Equal(map[string]any{"character_id": "char-1", "note_id": "note-7"}, err.Meta)
}

func (s *ErrorsTestSuite) TestWrapKeepsCodeAndMeta() {
	inner := errors.NotFound("character not found").WithMeta("character_id", "char-1")
	outer := errors.Wrapf(inner, "failed to %s", "update hp")

	s.Equal(errors.CodeNotFound, outer.Code)
	s.Equal("failed to update hp", outer.Message)
	s.Equal("char-1", outer.Meta["character_id"])
	s.Same(inner, outer.Unwrap())
	s.True(errors.IsNotFound(outer))
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	outer := errors.Wrap(fmt.Errorf("disk full"), "failed to save character")
	s.True(errors.IsInternal(outer))
	s.Nil(outer.Meta)
}

func (s *ErrorsTestSuite) TestWrapWithCodeCopiesMeta() {
	inner := errors.InvalidArgument("bad tag").WithMeta("character_id", "char-1")
	outer := errors.WrapWithCodef(inner, errors.CodeDataLoss, "record %s is corrupt", "char-1")

	s.True(errors.IsDataLoss(outer))
	s.Equal("char-1", outer.Meta["character_id"])

	outer.WithMeta("key", "redis")
	s.NotContains(inner.Meta, "key", "the copy does not alias the cause")
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "unused"))
	s.Nil(errors.Wrapf(nil, "unused %d", 1))
	s.Nil(errors.WrapWithCode(nil, errors.CodeAborted, "unused"))
}

func (s *ErrorsTestSuite) TestIsMatchesCode() {
	s.True(errors.Is(errors.Wrap(errors.NotFound("a"), "b"), errors.NotFound("c")))
	s.False(errors.Is(errors.NotFound("a"), errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestAccessorsOnPlainErrors() {
	plain := stderrors.New("connection refused")

	s.Equal(errors.CodeInternal, errors.GetCode(plain))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Nil(errors.GetMeta(plain))
	s.Equal("connection refused", errors.GetMessage(plain))
	s.Equal("", errors.GetMessage(nil))
}

func (s *ErrorsTestSuite) TestAsFindsWrappedError() {
	err := fmt.Errorf("cli: %w", errors.DataLoss("stored character is corrupt"))

	var appErr *errors.Error
	s.Require().True(errors.As(err, &appErr))
	s.Equal(errors.CodeDataLoss, appErr.Code)
	s.Equal("stored character is corrupt", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestExitCode() {
	for code, want := range map[errors.Code]int{
		errors.CodeOK:                 0,
		errors.CodeInvalidArgument:    2,
		errors.CodeOutOfRange:         2,
		errors.CodeFailedPrecondition: 2,
		errors.CodeAlreadyExists:      2,
		errors.CodeNotFound:           3,
		errors.CodeDataLoss:           4,
		errors.CodeInternal:           1,
		errors.CodeAborted:            1,
		errors.CodeUnavailable:        1,
	} {
		s.Equal(want, code.ExitCode(), code.String())
	}
}
