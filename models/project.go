package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a named grouping of person records. The name is the
// external identity: lookups are exact, case-sensitive matches.
type Project struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
