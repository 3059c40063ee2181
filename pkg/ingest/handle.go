package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileHandle is an acquired reference to a local file. The content handle is
// consumed exactly once by an upload attempt.
type FileHandle struct {
	Name    string
	Size    int64
	Content io.ReadCloser
}

// NewFileHandle opens the file at the given path and wraps it in a handle.
func NewFileHandle(path string) (FileHandle, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileHandle{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return FileHandle{}, fmt.Errorf("%s is a directory", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return FileHandle{}, fmt.Errorf("open %s: %w", path, err)
	}

	return FileHandle{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Content: file,
	}, nil
}

// Ext returns the lower-cased extension after the last dot of the file name,
// or an empty string when the name has no dot.
func (h FileHandle) Ext() string {
	idx := strings.LastIndex(h.Name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(h.Name[idx+1:])
}

// Close releases the content handle. Safe to call on a handle without content.
func (h FileHandle) Close() error {
	if h.Content == nil {
		return nil
	}
	return h.Content.Close()
}
