// Package picker provides interactive selection of local files.
package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"filedrop/pkg/ingest"
	"filedrop/pkg/log"
)

// Terminal lists the files of a directory and reads an index selection from
// its input. It implements the ingest.Picker contract: an empty selection
// means the user cancelled.
type Terminal struct {
	dir    string
	in     io.Reader
	out    io.Writer
	logger zerolog.Logger
}

// NewTerminal creates a picker over the given directory, typically wired to
// os.Stdin and os.Stdout.
func NewTerminal(dir string, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		dir:    dir,
		in:     in,
		out:    out,
		logger: log.Component("picker"),
	}
}

// Pick prompts for a selection among the directory files matching the accept
// filter. With allowMultiple a comma-separated index list is accepted,
// otherwise only the first index is used. An empty line cancels.
func (t *Terminal) Pick(ctx context.Context, acceptFilter string, allowMultiple bool) ([]ingest.FileHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := t.listCandidates(acceptFilter)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		fmt.Fprintf(t.out, "No matching files in %s\n", t.dir)
		return nil, nil
	}

	for i, name := range names {
		fmt.Fprintf(t.out, "  [%d] %s\n", i+1, name)
	}
	if allowMultiple {
		fmt.Fprint(t.out, "Select files (comma-separated, empty to cancel): ")
	} else {
		fmt.Fprint(t.out, "Select a file (empty to cancel): ")
	}

	scanner := bufio.NewScanner(t.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read selection: %w", err)
		}
		return nil, nil
	}

	line := strings.TrimSpace(scanner.Text())
	if line == "" {
		t.logger.Debug().Msg("Selection cancelled")
		return nil, nil
	}

	indices, err := parseSelection(line, len(names))
	if err != nil {
		return nil, err
	}
	if !allowMultiple && len(indices) > 1 {
		indices = indices[:1]
	}

	files := make([]ingest.FileHandle, 0, len(indices))
	for _, idx := range indices {
		handle, err := ingest.NewFileHandle(filepath.Join(t.dir, names[idx]))
		if err != nil {
			closePicked(files)
			return nil, err
		}
		files = append(files, handle)
	}

	return files, nil
}

// listCandidates returns the sorted names of regular files matching the filter.
func (t *Terminal) listCandidates(acceptFilter string) ([]string, error) {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", t.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchesFilter(entry.Name(), acceptFilter) {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}

// matchesFilter checks a file name against a comma-separated suffix filter
// such as ".png,.jpg". An empty filter matches everything.
func matchesFilter(name, acceptFilter string) bool {
	if acceptFilter == "" {
		return true
	}
	lower := strings.ToLower(name)
	for _, suffix := range strings.Split(acceptFilter, ",") {
		if strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

func parseSelection(line string, count int) ([]int, error) {
	var indices []int
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", field)
		}
		if n < 1 || n > count {
			return nil, fmt.Errorf("selection %d out of range", n)
		}
		indices = append(indices, n-1)
	}
	return indices, nil
}

func closePicked(files []ingest.FileHandle) {
	for _, file := range files {
		_ = file.Close()
	}
}
