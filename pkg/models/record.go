package models

import "time"

// UploadRecord is one journal row for a successfully uploaded file.
type UploadRecord struct {
	ID           int64     `json:"id"`
	InvocationID string    `json:"invocation_id"`
	FileName     string    `json:"file_name"`
	Size         int64     `json:"size"`
	RemoteID     string    `json:"remote_id"`
	CreatedAt    time.Time `json:"created_at"`
}
