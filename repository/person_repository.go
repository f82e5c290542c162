package repository

import (
	"context"

	"doccheck-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PersonRepository handles database operations for persons
type PersonRepository struct {
	db *pgxpool.Pool
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create inserts a fresh person record. Records are append-only: there is no
// update path for a person once created.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	query := `
		INSERT INTO persons (
			project_id, nome, cognome, codice_fiscale,
			indirizzo_domicilio, indirizzo_residenza,
			data_nascita, comune_nascita, provincia_nascita, sesso,
			numero_documento, ente_rilascio, data_rilascio, data_scadenza,
			titolo_studio_piu_recente, data_conseguimento_titolo,
			situazione_occupazionale, privacy_ok, cv_firmato, data_cv
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		person.ProjectID,
		person.Nome,
		person.Cognome,
		person.CodiceFiscale,
		person.IndirizzoDomicilio,
		person.IndirizzoResidenza,
		person.DataNascita,
		person.ComuneNascita,
		person.ProvinciaNascita,
		person.Sesso,
		person.NumeroDocumento,
		person.EnteRilascio,
		person.DataRilascio,
		person.DataScadenza,
		person.TitoloStudioPiuRecente,
		person.DataConseguimentoTitolo,
		person.SituazioneOccupazionale,
		person.PrivacyOK,
		person.CVFirmato,
		person.DataCV,
	).Scan(&person.ID, &person.CreatedAt)

	return err
}

const personColumns = `
		id, project_id, nome, cognome, codice_fiscale,
		indirizzo_domicilio, indirizzo_residenza,
		data_nascita, comune_nascita, provincia_nascita, sesso,
		numero_documento, ente_rilascio, data_rilascio, data_scadenza,
		titolo_studio_piu_recente, data_conseguimento_titolo,
		situazione_occupazionale, privacy_ok, cv_firmato, data_cv,
		created_at`

func scanPerson(row interface{ Scan(...any) error }) (*models.Person, error) {
	person := &models.Person{}
	err := row.Scan(
		&person.ID,
		&person.ProjectID,
		&person.Nome,
		&person.Cognome,
		&person.CodiceFiscale,
		&person.IndirizzoDomicilio,
		&person.IndirizzoResidenza,
		&person.DataNascita,
		&person.ComuneNascita,
		&person.ProvinciaNascita,
		&person.Sesso,
		&person.NumeroDocumento,
		&person.EnteRilascio,
		&person.DataRilascio,
		&person.DataScadenza,
		&person.TitoloStudioPiuRecente,
		&person.DataConseguimentoTitolo,
		&person.SituazioneOccupazionale,
		&person.PrivacyOK,
		&person.CVFirmato,
		&person.DataCV,
		&person.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return person, nil
}

// GetByID retrieves a person by ID
func (r *PersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	query := `SELECT` + personColumns + `
		FROM persons
		WHERE id = $1`

	return scanPerson(r.db.QueryRow(ctx, query, id))
}

// ListByProjectID retrieves all persons of a project, newest first
func (r *PersonRepository) ListByProjectID(ctx context.Context, projectID uuid.UUID) ([]*models.Person, error) {
	query := `SELECT` + personColumns + `
		FROM persons
		WHERE project_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []*models.Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, person)
	}

	return persons, rows.Err()
}
