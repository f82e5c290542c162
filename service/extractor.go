package service

import (
	"context"

	"doccheck-backend/models"
)

// Extraction is the outcome of one extraction run. Fields is always
// schema-complete: every field of the schema is present, defaulted when nothing
// was found. Degraded reports that the extraction subsystem itself was
// unavailable or failed (missing credential, transport error, unparseable
// response) and the defaults were returned wholesale; callers that only care
// about the field values can ignore the distinction.
type Extraction struct {
	Fields *models.PersonFields

	// CVAlerts is the curriculum checklist the pattern extractor builds while
	// walking the résumé text (required fields first, then the three boolean
	// checks). The unified compliance list for a run comes from BuildAlerts;
	// the model extractor leaves this nil.
	CVAlerts []string

	Degraded       bool
	DegradedReason string
}

// FieldExtractor turns the three recognized document texts into the canonical
// field schema. Implementations must never fail the processing run: whatever
// goes wrong, they return a schema-complete result.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, cvText, identityText, healthCardText string) *Extraction
}
