package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentKind identifies which of the three uploads a stored document is.
type DocumentKind string

const (
	DocumentKindCV         DocumentKind = "cv"
	DocumentKindIdentity   DocumentKind = "documento_identita"
	DocumentKindHealthCard DocumentKind = "tessera_sanitaria"
)

// Document represents one uploaded source file kept for review.
type Document struct {
	ID          uuid.UUID    `json:"id"`
	ProjectID   uuid.UUID    `json:"project_id"`
	PersonID    *uuid.UUID   `json:"person_id,omitempty"`
	Kind        DocumentKind `json:"kind"`
	Filename    string       `json:"filename"`
	MimeType    string       `json:"mime_type"`
	Size        int64        `json:"size"`
	StoragePath string       `json:"storage_path"`
	CreatedAt   time.Time    `json:"created_at"`
}
