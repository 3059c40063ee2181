package ingest

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"filedrop/pkg/log"
)

// ErrNoPicker is returned when acquisition needs the interactive picker but
// none was configured.
var ErrNoPicker = errors.New("no picker configured")

// Picker is the interactive file selection collaborator. An empty result means
// the user cancelled.
type Picker interface {
	Pick(ctx context.Context, acceptFilter string, allowMultiple bool) ([]FileHandle, error)
}

// Acquirer resolves the set of files to process for one invocation.
type Acquirer struct {
	picker Picker
	logger zerolog.Logger
}

// NewAcquirer creates an acquirer. The picker may be nil when callers always
// supply files explicitly.
func NewAcquirer(picker Picker) *Acquirer {
	return &Acquirer{
		picker: picker,
		logger: log.Component("acquirer"),
	}
}

// Acquire returns the files for one invocation. A non-empty caller list is
// used verbatim and the picker is never consulted. Each call re-acquires from
// scratch.
func (a *Acquirer) Acquire(ctx context.Context, callerFiles []FileHandle, constraint Constraint) ([]FileHandle, error) {
	if len(callerFiles) > 0 {
		a.logger.Debug().Int("count", len(callerFiles)).Msg("Using caller-supplied files")
		return callerFiles, nil
	}

	if a.picker == nil {
		return nil, ErrNoPicker
	}

	files, err := a.picker.Pick(ctx, constraint.AcceptFilter(), constraint.AllowMultiple)
	if err != nil {
		return nil, err
	}

	a.logger.Debug().Int("count", len(files)).Msg("Files picked interactively")
	return files, nil
}
