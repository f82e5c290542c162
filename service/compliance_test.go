package service

import (
	"testing"

	"doccheck-backend/models"

	"github.com/stretchr/testify/require"
)

func fullyPresentFields() *models.PersonFields {
	return &models.PersonFields{
		Nome:               "Mario",
		Cognome:            "Rossi",
		NumeroDocumento:    "AB1234567",
		EnteRilascio:       "Comune di Roma",
		DataNascita:        "01/02/1990",
		ComuneNascita:      "ROMA",
		ProvinciaNascita:   "RM",
		Sesso:              "M",
		DataRilascio:       "01/01/2020",
		DataScadenza:       "01/01/2030",
		IndirizzoResidenza: "Via Roma 2, Milano",
		CodiceFiscale:      "RSSMRA80A01H501Z",
		IndirizzoDomicilio: "Via Garibaldi 1, Milano",
		TitoloStudioPiuRecente: models.Qualification{
			Titolo:            "Laurea in Lettere",
			DataConseguimento: "05/07/2015",
		},
		SituazioneOccupazionale: "impiegato",
		PrivacyClausePresent:    true,
		FirmaPresente:           true,
		DataCV:                  "10/01/2024",
	}
}

func TestBuildAlertsAllMissing(t *testing.T) {
	alerts := BuildAlerts(models.DefaultPersonFields())

	require.Equal(t, []string{
		"Manca l'indirizzo di domicilio nel CV",
		"Manca l'indirizzo di residenza nel CV",
		"Manca la clausola di trattamento dei dati personali nel CV",
		"Manca il nome nel CV",
		"Manca il cognome nel CV",
		"Manca il titolo di studio più recente nel CV",
		"Manca la data di conseguimento del titolo nel CV",
		"Manca la situazione occupazionale nel CV",
		"Il CV non risulta firmato",
		"Il CV non risulta datato",
	}, alerts)
}

func TestBuildAlertsAllPresent(t *testing.T) {
	alerts := BuildAlerts(fullyPresentFields())

	require.NotNil(t, alerts)
	require.Empty(t, alerts)
}

// Each condition contributes at most one alert and the relative order of the
// surviving alerts never changes, whichever subset of fields is missing.
func TestBuildAlertsPartiallyMissingKeepsOrder(t *testing.T) {
	fields := fullyPresentFields()
	fields.IndirizzoResidenza = ""
	fields.TitoloStudioPiuRecente.DataConseguimento = ""
	fields.FirmaPresente = false

	require.Equal(t, []string{
		"Manca l'indirizzo di residenza nel CV",
		"Manca la data di conseguimento del titolo nel CV",
		"Il CV non risulta firmato",
	}, BuildAlerts(fields))
}

func TestBuildAlertsOnlyNamePresent(t *testing.T) {
	fields := models.DefaultPersonFields()
	fields.Nome = "Mario"
	fields.Cognome = "Rossi"

	require.Equal(t, []string{
		"Manca l'indirizzo di domicilio nel CV",
		"Manca l'indirizzo di residenza nel CV",
		"Manca la clausola di trattamento dei dati personali nel CV",
		"Manca il titolo di studio più recente nel CV",
		"Manca la data di conseguimento del titolo nel CV",
		"Manca la situazione occupazionale nel CV",
		"Il CV non risulta firmato",
		"Il CV non risulta datato",
	}, BuildAlerts(fields))
}

func TestBuildAlertsDeterministic(t *testing.T) {
	fields := fullyPresentFields()
	fields.SituazioneOccupazionale = ""
	fields.PrivacyClausePresent = false

	first := BuildAlerts(fields)
	second := BuildAlerts(fields)
	require.Equal(t, first, second)
}
