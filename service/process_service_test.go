package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"doccheck-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memProjectStore struct {
	projects map[string]*models.Project
	creates  int
}

func (s *memProjectStore) FindOrCreate(ctx context.Context, name string) (*models.Project, error) {
	if p, ok := s.projects[name]; ok {
		return p, nil
	}
	if s.projects == nil {
		s.projects = make(map[string]*models.Project)
	}
	p := &models.Project{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	s.projects[name] = p
	s.creates++
	return p, nil
}

type memPersonStore struct {
	created []*models.Person
	err     error
}

func (s *memPersonStore) Create(ctx context.Context, person *models.Person) error {
	if s.err != nil {
		return s.err
	}
	person.ID = uuid.New()
	person.CreatedAt = time.Now()
	s.created = append(s.created, person)
	return nil
}

type staticExtractor struct {
	extraction *Extraction
}

func (e *staticExtractor) ExtractFields(ctx context.Context, cvText, identityText, healthCardText string) *Extraction {
	return e.extraction
}

func newTestProcessService(projects *memProjectStore, persons *memPersonStore, extractor FieldExtractor) *ProcessService {
	return NewProcessService(
		WithProjectStore(projects),
		WithPersonStore(persons),
		WithExtractor(extractor),
	)
}

func TestProcessDocumentsRequiresProjectName(t *testing.T) {
	svc := newTestProcessService(&memProjectStore{}, &memPersonStore{}, NewPatternExtractor())

	_, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{})
	require.ErrorIs(t, err, ErrProjectNameRequired)
}

func TestProcessDocumentsRequiresWiring(t *testing.T) {
	svc := NewProcessService()

	_, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{ProjectName: "Progetto"})
	require.Error(t, err)
}

func TestProcessDocumentsReusesExistingProject(t *testing.T) {
	projects := &memProjectStore{}
	persons := &memPersonStore{}
	svc := newTestProcessService(projects, persons, NewPatternExtractor())

	first, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{ProjectName: "Progetto Alfa"})
	require.NoError(t, err)
	second, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{ProjectName: "Progetto Alfa"})
	require.NoError(t, err)

	require.Equal(t, first.Project.ID, second.Project.ID)
	require.Equal(t, 1, projects.creates)
	// Each run appends a fresh person under the shared project.
	require.Len(t, persons.created, 2)
	require.NotEqual(t, persons.created[0].ID, persons.created[1].ID)
}

func TestProcessDocumentsAssemblesRecord(t *testing.T) {
	fields := models.DefaultPersonFields()
	fields.Nome = "Mario"
	fields.Cognome = "Rossi"
	fields.CodiceFiscale = "RSSMRA80A01H501Z"
	fields.TitoloStudioPiuRecente = models.Qualification{
		Titolo:            "Laurea in Lettere",
		DataConseguimento: "05/07/2015",
	}
	fields.PrivacyClausePresent = true
	fields.FirmaPresente = true

	projects := &memProjectStore{}
	persons := &memPersonStore{}
	svc := newTestProcessService(projects, persons, &staticExtractor{extraction: &Extraction{Fields: fields}})

	result, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{ProjectName: "Progetto"})
	require.NoError(t, err)

	require.Len(t, persons.created, 1)
	person := persons.created[0]
	require.Equal(t, result.Project.ID, person.ProjectID)
	require.Equal(t, "Mario", person.Nome)
	require.Equal(t, "Rossi", person.Cognome)
	require.Equal(t, "RSSMRA80A01H501Z", person.CodiceFiscale)
	// The qualification sub-object flattens to two columns.
	require.Equal(t, "Laurea in Lettere", person.TitoloStudioPiuRecente)
	require.Equal(t, "05/07/2015", person.DataConseguimentoTitolo)
	require.True(t, person.PrivacyOK)
	require.True(t, person.CVFirmato)

	// The record round-trips back to the schema object it was built from.
	require.Equal(t, fields, person.Fields())

	require.Equal(t, BuildAlerts(fields), result.Alerts)
	require.False(t, result.Degraded)
}

func TestProcessDocumentsDegradedExtractionStillPersists(t *testing.T) {
	extractor := &staticExtractor{extraction: &Extraction{
		Fields:         models.DefaultPersonFields(),
		Degraded:       true,
		DegradedReason: "no API key configured",
	}}

	persons := &memPersonStore{}
	svc := newTestProcessService(&memProjectStore{}, persons, extractor)

	result, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{ProjectName: "Progetto"})
	require.NoError(t, err)

	require.True(t, result.Degraded)
	require.Equal(t, "no API key configured", result.DegradedReason)
	require.Len(t, persons.created, 1)
	// All-defaults record trips every compliance check.
	require.Len(t, result.Alerts, 10)
}

func TestProcessDocumentsPersistenceFailureAborts(t *testing.T) {
	boom := errors.New("insert failed")
	svc := newTestProcessService(&memProjectStore{}, &memPersonStore{err: boom}, NewPatternExtractor())

	_, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{ProjectName: "Progetto"})
	require.ErrorIs(t, err, boom)
}

func TestProcessDocumentsRequestExtractorOverridesDefault(t *testing.T) {
	override := &staticExtractor{extraction: &Extraction{
		Fields:         models.DefaultPersonFields(),
		Degraded:       true,
		DegradedReason: "override ran",
	}}

	svc := newTestProcessService(&memProjectStore{}, &memPersonStore{}, NewPatternExtractor())

	result, err := svc.ProcessDocuments(context.Background(), ProcessDocumentsRequest{
		ProjectName: "Progetto",
		Extractor:   override,
	})
	require.NoError(t, err)
	require.Equal(t, "override ran", result.DegradedReason)
}
