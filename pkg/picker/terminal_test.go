package picker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// TerminalPickerTestSuite tests the terminal file picker
type TerminalPickerTestSuite struct {
	suite.Suite
	tempDir string
	out     *bytes.Buffer
}

func (s *TerminalPickerTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
	s.out = &bytes.Buffer{}

	for name, content := range map[string]string{
		"beta.jpg":  "jpg",
		"alpha.png": "png",
		"notes.txt": "txt",
	} {
		s.Require().NoError(os.WriteFile(filepath.Join(s.tempDir, name), []byte(content), 0600))
	}
	s.Require().NoError(os.Mkdir(filepath.Join(s.tempDir, "subdir"), 0700))
}

func (s *TerminalPickerTestSuite) pick(input, filter string, allowMultiple bool) ([]string, error) {
	terminal := NewTerminal(s.tempDir, strings.NewReader(input), s.out)
	files, err := terminal.Pick(context.Background(), filter, allowMultiple)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, file.Name)
		s.NoError(file.Close())
	}
	return names, nil
}

// TestPickSingle tests selecting one file by index
func (s *TerminalPickerTestSuite) TestPickSingle() {
	names, err := s.pick("2\n", "", false)
	s.Require().NoError(err)

	// candidates are sorted: alpha.png, beta.jpg, notes.txt
	s.Equal([]string{"beta.jpg"}, names)
	s.Contains(s.out.String(), "[1] alpha.png")
}

// TestPickMultiple tests comma-separated selection
func (s *TerminalPickerTestSuite) TestPickMultiple() {
	names, err := s.pick("1,3\n", "", true)
	s.Require().NoError(err)
	s.Equal([]string{"alpha.png", "notes.txt"}, names)
}

// TestAcceptFilter tests that the suffix filter narrows the candidates
func (s *TerminalPickerTestSuite) TestAcceptFilter() {
	names, err := s.pick("1,2\n", ".png,.jpg", true)
	s.Require().NoError(err)
	s.Equal([]string{"alpha.png", "beta.jpg"}, names)
	s.NotContains(s.out.String(), "notes.txt")
}

// TestCancel tests that an empty line yields no files and no error
func (s *TerminalPickerTestSuite) TestCancel() {
	names, err := s.pick("\n", "", true)
	s.Require().NoError(err)
	s.Empty(names)
}

// TestSingleSelectTruncates tests that extra indices are dropped without
// multi-select
func (s *TerminalPickerTestSuite) TestSingleSelectTruncates() {
	names, err := s.pick("1,2,3\n", "", false)
	s.Require().NoError(err)
	s.Equal([]string{"alpha.png"}, names)
}

// TestInvalidSelection tests rejection of non-numeric and out-of-range input
func (s *TerminalPickerTestSuite) TestInvalidSelection() {
	_, err := s.pick("abc\n", "", false)
	s.Error(err)

	_, err = s.pick("9\n", "", false)
	s.Error(err)
}

// TestNoMatches tests that an unmatched filter cancels cleanly
func (s *TerminalPickerTestSuite) TestNoMatches() {
	names, err := s.pick("", ".zip", false)
	s.Require().NoError(err)
	s.Empty(names)
	s.Contains(s.out.String(), "No matching files")
}

func TestTerminalPickerSuite(t *testing.T) {
	suite.Run(t, new(TerminalPickerTestSuite))
}
