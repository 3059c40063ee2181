package journal

import (
	"context"

	"filedrop/pkg/ingest"
	"filedrop/pkg/log"
	"filedrop/pkg/models"
)

// RecordingTransport wraps a transport and journals every successful upload.
// Journal failures are logged, not propagated: the upload itself succeeded.
type RecordingTransport struct {
	Next         ingest.Transport
	Store        *Store
	InvocationID string
}

// UploadOne delegates to the wrapped transport and appends a journal record on
// success.
func (r *RecordingTransport) UploadOne(ctx context.Context, file ingest.FileHandle) (string, error) {
	remoteID, err := r.Next.UploadOne(ctx, file)
	if err != nil {
		return "", err
	}

	if _, err := r.Store.Append(models.UploadRecord{
		InvocationID: r.InvocationID,
		FileName:     file.Name,
		Size:         file.Size,
		RemoteID:     remoteID,
	}); err != nil {
		log.Warn().Err(err).Str("file", file.Name).Msg("Failed to journal upload")
	}

	return remoteID, nil
}
