package service

import "doccheck-backend/models"

// BuildAlerts produces the compliance alert list for a person's extracted
// fields. The conditions are evaluated in a fixed order regardless of which
// fields are missing, so identical inputs always yield identical, identically
// ordered lists. Each condition contributes at most one alert; a field counts
// as present only when it is non-empty (strings) or true (booleans).
func BuildAlerts(fields *models.PersonFields) []string {
	alerts := []string{}
	if fields.IndirizzoDomicilio == "" {
		alerts = append(alerts, "Manca l'indirizzo di domicilio nel CV")
	}
	if fields.IndirizzoResidenza == "" {
		alerts = append(alerts, "Manca l'indirizzo di residenza nel CV")
	}
	if !fields.PrivacyClausePresent {
		alerts = append(alerts, "Manca la clausola di trattamento dei dati personali nel CV")
	}
	if fields.Nome == "" {
		alerts = append(alerts, "Manca il nome nel CV")
	}
	if fields.Cognome == "" {
		alerts = append(alerts, "Manca il cognome nel CV")
	}
	if fields.TitoloStudioPiuRecente.Titolo == "" {
		alerts = append(alerts, "Manca il titolo di studio più recente nel CV")
	}
	if fields.TitoloStudioPiuRecente.DataConseguimento == "" {
		alerts = append(alerts, "Manca la data di conseguimento del titolo nel CV")
	}
	if fields.SituazioneOccupazionale == "" {
		alerts = append(alerts, "Manca la situazione occupazionale nel CV")
	}
	if !fields.FirmaPresente {
		alerts = append(alerts, "Il CV non risulta firmato")
	}
	if fields.DataCV == "" {
		alerts = append(alerts, "Il CV non risulta datato")
	}
	return alerts
}
