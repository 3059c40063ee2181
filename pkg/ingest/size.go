package ingest

const bytesPerMB = 1024 * 1024

// LimitSource supplies the live upload size limit.
type LimitSource interface {
	MaxUploadSizeBytes() int64
}

// SizeValidator checks file sizes against the configured ceiling. The limit is
// read from the source on every call, never cached.
type SizeValidator struct {
	limits LimitSource
}

// NewSizeValidator creates a validator backed by the given limit source.
func NewSizeValidator(limits LimitSource) *SizeValidator {
	return &SizeValidator{limits: limits}
}

// Validate succeeds iff sizeBytes is within the current limit.
func (v *SizeValidator) Validate(sizeBytes int64) error {
	limit := v.limits.MaxUploadSizeBytes()
	if sizeBytes <= limit {
		return nil
	}
	return SizeExceededError{LimitMB: limit / bytesPerMB}
}
