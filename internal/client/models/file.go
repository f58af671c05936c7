// Package models holds the data types exchanged between the CloudShare
// backend and the client's stateful services.
package models

import (
	"strings"
	"time"
)

// PendingFile is a user-selected file that has not been uploaded yet. The
// content stays on disk; only name, size and path travel with the batch, so
// no byte buffers are held between selection and submit.
type PendingFile struct {
	Name string
	Size int64
	Path string
}

// RemoteFile is a previously uploaded file record as the backend reports it.
// The client keeps a read-mostly cached copy; the id is opaque and
// server-assigned.
type RemoteFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	IsPublic   bool      `json:"isPublic"`
}

// ShareLink derives the public link for a file: origin + fixed path + id.
// It is computed on demand and never stored.
func ShareLink(origin, fileID string) string {
	return strings.TrimRight(origin, "/") + "/file/" + fileID
}
