package ingest

import (
	"context"

	"github.com/rs/zerolog"

	"filedrop/pkg/log"
)

// Transport persists one file remotely and returns its identifier.
type Transport interface {
	UploadOne(ctx context.Context, file FileHandle) (string, error)
}

// Uploader validates acquired files and uploads them one at a time. Files are
// processed strictly sequentially; the first error aborts the remaining work.
// Files handed to the transport before a later failure stay uploaded on the
// remote side, no compensation is attempted.
type Uploader struct {
	acquirer  *Acquirer
	transport Transport
	logger    zerolog.Logger
}

// NewUploader creates an uploader from its two collaborators.
func NewUploader(acquirer *Acquirer, transport Transport) *Uploader {
	return &Uploader{
		acquirer:  acquirer,
		transport: transport,
		logger:    log.Component("uploader"),
	}
}

// Upload resolves the file list, validates each file in order and uploads it,
// returning the remote identifiers in input order.
func (u *Uploader) Upload(ctx context.Context, callerFiles []FileHandle, constraint Constraint) ([]string, error) {
	files, err := u.acquirer.Acquire(ctx, callerFiles, constraint)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(files))
	for i, file := range files {
		if !constraint.Allows(file.Ext()) {
			closeAll(files[i:])
			return nil, TypeNotAllowedError{Allowed: constraint.AllowedExtensions}
		}

		// Multi-select invocations are rejected unless exactly one file was
		// resolved. See DESIGN.md on why this rule reads inverted.
		if constraint.AllowMultiple && len(files) != 1 {
			closeAll(files[i:])
			return nil, MultiplicityError{Count: len(files)}
		}

		id, err := u.transport.UploadOne(ctx, file)
		if err != nil {
			closeAll(files[i+1:])
			return nil, err
		}

		u.logger.Debug().Str("file", file.Name).Str("remote_id", id).Msg("File uploaded")
		ids = append(ids, id)
	}

	return ids, nil
}

// closeAll releases the content handles of files that will not be uploaded.
func closeAll(files []FileHandle) {
	for _, file := range files {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Str("file", file.Name).Msg("Failed to close file handle")
		}
	}
}
