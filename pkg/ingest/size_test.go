package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// staticLimit is a fixed limit source for tests.
type staticLimit int64

func (l staticLimit) MaxUploadSizeBytes() int64 { return int64(l) }

// SizeValidatorTestSuite tests the size validator
type SizeValidatorTestSuite struct {
	suite.Suite
}

// TestWithinLimit tests that a file at or below the limit passes
func (s *SizeValidatorTestSuite) TestWithinLimit() {
	validator := NewSizeValidator(staticLimit(1048576))

	s.NoError(validator.Validate(0))
	s.NoError(validator.Validate(1))
	s.NoError(validator.Validate(1048575))
}

// TestExactLimit tests the boundary: a file of exactly the limit size passes
func (s *SizeValidatorTestSuite) TestExactLimit() {
	validator := NewSizeValidator(staticLimit(1048576))

	s.NoError(validator.Validate(1048576))
}

// TestOverLimit tests that one byte over the limit fails with the limit in MB
func (s *SizeValidatorTestSuite) TestOverLimit() {
	validator := NewSizeValidator(staticLimit(1048576))

	err := validator.Validate(1048577)
	s.Error(err)

	var sizeErr SizeExceededError
	s.True(errors.As(err, &sizeErr))
	s.Equal(int64(1), sizeErr.LimitMB)
}

// TestLimitReadPerCall tests that a limit change is visible on the next call
func (s *SizeValidatorTestSuite) TestLimitReadPerCall() {
	limit := &mutableLimit{limit: 100}
	validator := NewSizeValidator(limit)

	s.Error(validator.Validate(200))

	limit.limit = 300
	s.NoError(validator.Validate(200))
}

type mutableLimit struct {
	limit int64
}

func (l *mutableLimit) MaxUploadSizeBytes() int64 { return l.limit }

func TestSizeValidatorSuite(t *testing.T) {
	suite.Run(t, new(SizeValidatorTestSuite))
}
