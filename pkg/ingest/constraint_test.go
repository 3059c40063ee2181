package ingest

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// ConstraintTestSuite tests accept filter building and extension matching
type ConstraintTestSuite struct {
	suite.Suite
}

// TestAcceptFilter tests the dot-prefixed comma-joined filter format
func (s *ConstraintTestSuite) TestAcceptFilter() {
	s.Equal(".png,.jpg", Constraint{AllowedExtensions: []string{"png", "jpg"}}.AcceptFilter())
	s.Equal(".pdf", Constraint{AllowedExtensions: []string{"pdf"}}.AcceptFilter())
	s.Equal("", Constraint{}.AcceptFilter())
}

// TestAllows tests extension allow-listing
func (s *ConstraintTestSuite) TestAllows() {
	constraint := Constraint{AllowedExtensions: []string{"png", "jpg"}}

	s.True(constraint.Allows("png"))
	s.True(constraint.Allows("PNG"))
	s.False(constraint.Allows("txt"))
	s.False(constraint.Allows(""))
}

// TestAllowsUnrestricted tests that an empty list allows everything
func (s *ConstraintTestSuite) TestAllowsUnrestricted() {
	constraint := Constraint{}

	s.True(constraint.Allows("exe"))
	s.True(constraint.Allows(""))
}

func TestConstraintSuite(t *testing.T) {
	suite.Run(t, new(ConstraintTestSuite))
}
