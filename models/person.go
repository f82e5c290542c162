package models

import (
	"time"

	"github.com/google/uuid"
)

// Person represents one processing run's extracted record, owned by exactly one
// project. Rows are append-only: a new run always creates a fresh person and
// never merges with a previous record. Dates are kept as free-form strings.
type Person struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`

	Nome               string `json:"nome"`
	Cognome            string `json:"cognome"`
	CodiceFiscale      string `json:"codice_fiscale"`
	IndirizzoDomicilio string `json:"indirizzo_domicilio"`
	IndirizzoResidenza string `json:"indirizzo_residenza"`
	DataNascita        string `json:"data_nascita"`
	ComuneNascita      string `json:"comune_nascita"`
	ProvinciaNascita   string `json:"provincia_nascita"`
	Sesso              string `json:"sesso"`
	NumeroDocumento    string `json:"numero_documento"`
	EnteRilascio       string `json:"ente_rilascio"`
	DataRilascio       string `json:"data_rilascio"`
	DataScadenza       string `json:"data_scadenza"`

	// Qualification sub-object flattened to two columns.
	TitoloStudioPiuRecente   string `json:"titolo_studio_piu_recente"`
	DataConseguimentoTitolo  string `json:"data_conseguimento_titolo"`
	SituazioneOccupazionale  string `json:"situazione_occupazionale"`
	PrivacyOK                bool   `json:"privacy_ok"`
	CVFirmato                bool   `json:"cv_firmato"`
	DataCV                   string `json:"data_cv"`

	CreatedAt time.Time `json:"created_at"`
}

// Fields rebuilds the extraction schema object from the flattened record.
func (p *Person) Fields() *PersonFields {
	return &PersonFields{
		Nome:               p.Nome,
		Cognome:            p.Cognome,
		NumeroDocumento:    p.NumeroDocumento,
		EnteRilascio:       p.EnteRilascio,
		DataNascita:        p.DataNascita,
		ComuneNascita:      p.ComuneNascita,
		ProvinciaNascita:   p.ProvinciaNascita,
		Sesso:              p.Sesso,
		DataRilascio:       p.DataRilascio,
		DataScadenza:       p.DataScadenza,
		IndirizzoResidenza: p.IndirizzoResidenza,
		CodiceFiscale:      p.CodiceFiscale,
		IndirizzoDomicilio: p.IndirizzoDomicilio,
		TitoloStudioPiuRecente: Qualification{
			Titolo:            p.TitoloStudioPiuRecente,
			DataConseguimento: p.DataConseguimentoTitolo,
		},
		SituazioneOccupazionale: p.SituazioneOccupazionale,
		PrivacyClausePresent:    p.PrivacyOK,
		FirmaPresente:           p.CVFirmato,
		DataCV:                  p.DataCV,
	}
}
