package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Qualification is the nested "most recent qualification" sub-object of the
// extraction schema.
type Qualification struct {
	Titolo            string `json:"titolo"`
	DataConseguimento string `json:"data_conseguimento"`
}

// Value implements driver.Valuer for JSONB
func (q Qualification) Value() (driver.Value, error) {
	return json.Marshal(q)
}

// Scan implements sql.Scanner for JSONB
func (q *Qualification) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, q)
}

// PersonFields is the canonical extraction schema: the fixed set of fields both
// extractors must populate for every processing run. The zero value is exactly
// the documented default object (empty strings, false booleans, empty
// qualification sub-object), so decoding a partial JSON payload over a zero
// PersonFields merges supplied values on top of the defaults and every key is
// always present in the marshalled output.
type PersonFields struct {
	// Identity document
	Nome               string `json:"nome"`
	Cognome            string `json:"cognome"`
	NumeroDocumento    string `json:"numero_documento"`
	EnteRilascio       string `json:"ente_rilascio"`
	DataNascita        string `json:"data_nascita"`
	ComuneNascita      string `json:"comune_nascita"`
	ProvinciaNascita   string `json:"provincia_nascita"`
	Sesso              string `json:"sesso"`
	DataRilascio       string `json:"data_rilascio"`
	DataScadenza       string `json:"data_scadenza"`
	IndirizzoResidenza string `json:"indirizzo_residenza"`

	// Health card
	CodiceFiscale string `json:"codice_fiscale"`

	// Curriculum
	IndirizzoDomicilio      string        `json:"indirizzo_domicilio"`
	TitoloStudioPiuRecente  Qualification `json:"titolo_studio_piu_recente"`
	SituazioneOccupazionale string        `json:"situazione_occupazionale"`
	PrivacyClausePresent    bool          `json:"privacy_clause_present"`
	FirmaPresente           bool          `json:"firma_presente"`
	DataCV                  string        `json:"data_cv"`
}

// DefaultPersonFields returns the full-schema default object.
func DefaultPersonFields() *PersonFields {
	return &PersonFields{}
}
