package service

import (
	"context"
	"errors"

	"doccheck-backend/models"

	"github.com/google/uuid"
)

// ProjectStore is the slice of project persistence the pipeline needs.
// Find-or-create must be serialized by the store itself (a unique index on the
// name); this service does not guard the check-then-create sequence.
type ProjectStore interface {
	FindOrCreate(ctx context.Context, name string) (*models.Project, error)
}

// PersonStore persists freshly assembled person records.
type PersonStore interface {
	Create(ctx context.Context, person *models.Person) error
}

var ErrProjectNameRequired = errors.New("project name is required")

// ProcessService runs the document pipeline for one person: extract fields
// from the three recognized texts, build the compliance alert list, and
// persist the record under its project. One synchronous run per request; a run
// always completes with some record, possibly all defaults.
type ProcessService struct {
	projectStore ProjectStore
	personStore  PersonStore
	extractor    FieldExtractor
}

// ProcessServiceOption is a functional option for ProcessService
type ProcessServiceOption func(*ProcessService)

// WithProjectStore sets the project store
func WithProjectStore(store ProjectStore) ProcessServiceOption {
	return func(s *ProcessService) {
		s.projectStore = store
	}
}

// WithPersonStore sets the person store
func WithPersonStore(store PersonStore) ProcessServiceOption {
	return func(s *ProcessService) {
		s.personStore = store
	}
}

// WithExtractor sets the default field extractor
func WithExtractor(extractor FieldExtractor) ProcessServiceOption {
	return func(s *ProcessService) {
		s.extractor = extractor
	}
}

// NewProcessService creates a new process service
func NewProcessService(opts ...ProcessServiceOption) *ProcessService {
	s := &ProcessService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessDocumentsRequest carries the recognized text of the three documents
// plus the owning project's name. Empty texts are fine: extraction simply
// finds nothing for that document's fields.
type ProcessDocumentsRequest struct {
	ProjectName    string
	CVText         string
	IdentityText   string
	HealthCardText string

	// Extractor overrides the wired default for this run when non-nil.
	Extractor FieldExtractor
}

// ProcessDocumentsResult is the outcome of one processing run.
type ProcessDocumentsResult struct {
	Project        *models.Project
	Person         *models.Person
	Fields         *models.PersonFields
	Alerts         []string
	Degraded       bool
	DegradedReason string
}

// ProcessDocuments runs extraction, compliance checking and persistence
// end-to-end. Extraction trouble never aborts the run; only missing wiring or
// a persistence failure does.
func (s *ProcessService) ProcessDocuments(ctx context.Context, req ProcessDocumentsRequest) (*ProcessDocumentsResult, error) {
	if s.projectStore == nil {
		return nil, errors.New("project store not set")
	}
	if s.personStore == nil {
		return nil, errors.New("person store not set")
	}

	extractor := req.Extractor
	if extractor == nil {
		extractor = s.extractor
	}
	if extractor == nil {
		return nil, errors.New("field extractor not set")
	}

	if req.ProjectName == "" {
		return nil, ErrProjectNameRequired
	}

	project, err := s.projectStore.FindOrCreate(ctx, req.ProjectName)
	if err != nil {
		return nil, err
	}

	extraction := extractor.ExtractFields(ctx, req.CVText, req.IdentityText, req.HealthCardText)
	alerts := BuildAlerts(extraction.Fields)

	person := assemblePerson(project.ID, extraction.Fields)
	if err := s.personStore.Create(ctx, person); err != nil {
		return nil, err
	}

	return &ProcessDocumentsResult{
		Project:        project,
		Person:         person,
		Fields:         extraction.Fields,
		Alerts:         alerts,
		Degraded:       extraction.Degraded,
		DegradedReason: extraction.DegradedReason,
	}, nil
}

// assemblePerson builds a fresh person record from the extracted fields,
// flattening the qualification sub-object's two leaves onto the record.
func assemblePerson(projectID uuid.UUID, fields *models.PersonFields) *models.Person {
	return &models.Person{
		ProjectID:               projectID,
		Nome:                    fields.Nome,
		Cognome:                 fields.Cognome,
		CodiceFiscale:           fields.CodiceFiscale,
		IndirizzoDomicilio:      fields.IndirizzoDomicilio,
		IndirizzoResidenza:      fields.IndirizzoResidenza,
		DataNascita:             fields.DataNascita,
		ComuneNascita:           fields.ComuneNascita,
		ProvinciaNascita:        fields.ProvinciaNascita,
		Sesso:                   fields.Sesso,
		NumeroDocumento:         fields.NumeroDocumento,
		EnteRilascio:            fields.EnteRilascio,
		DataRilascio:            fields.DataRilascio,
		DataScadenza:            fields.DataScadenza,
		TitoloStudioPiuRecente:  fields.TitoloStudioPiuRecente.Titolo,
		DataConseguimentoTitolo: fields.TitoloStudioPiuRecente.DataConseguimento,
		SituazioneOccupazionale: fields.SituazioneOccupazionale,
		PrivacyOK:               fields.PrivacyClausePresent,
		CVFirmato:               fields.FirmaPresente,
		DataCV:                  fields.DataCV,
	}
}
