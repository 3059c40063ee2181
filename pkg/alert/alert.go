// Package alert renders validation failures as user-facing text. Purely a
// presentation concern, the error values themselves live in pkg/ingest.
package alert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"filedrop/pkg/ingest"
)

const bytesPerMB = 1024 * 1024

// FormatError returns a human-readable message for an upload failure.
func FormatError(err error) string {
	var sizeErr ingest.SizeExceededError
	if errors.As(err, &sizeErr) {
		return fmt.Sprintf("File is too large, the limit is %s.",
			humanize.IBytes(uint64(sizeErr.LimitMB)*bytesPerMB))
	}

	var typeErr ingest.TypeNotAllowedError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("File type not supported. Allowed types: %s.",
			strings.Join(typeErr.Allowed, ", "))
	}

	var multErr ingest.MultiplicityError
	if errors.As(err, &multErr) {
		return fmt.Sprintf("Select exactly one file, got %d.", multErr.Count)
	}

	return fmt.Sprintf("Upload failed: %v.", err)
}
