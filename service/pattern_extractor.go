package service

import (
	"context"
	"regexp"
	"strings"

	"doccheck-backend/models"
)

// PatternExtractor extracts the field schema from the three document texts with
// per-field regular expressions over the raw (non-normalized) text. It is pure
// and deterministic, has no external dependencies, and is safe to call
// concurrently for independent inputs.
//
// The per-field patterns are heuristic by contract: they both over- and
// under-match on unusual layouts, and downstream alert semantics depend on that
// exact behavior, so they are not to be "fixed" for perceived false positives.
type PatternExtractor struct{}

// NewPatternExtractor creates a new pattern extractor
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Identity document patterns. Labels match case-insensitively; captured values
// are taken from the raw text. The document number pattern spends its first
// group on the label alternation, so the value lives in the last group.
var (
	idNomePattern       = regexp.MustCompile(`(?im)nome\s*[:\-]\s*([A-ZÀ-Ù'` + "`" + `\-]+)`)
	idCognomePattern    = regexp.MustCompile(`(?im)cognome\s*[:\-]\s*([A-ZÀ-Ù'` + "`" + `\-]+)`)
	idNumeroDocPattern  = regexp.MustCompile(`(?im)(carta d'identità|passaporto|documento)\s*n\.?\s*([A-Z0-9]+)`)
	idEnteidPattern     = regexp.MustCompile(`(?im)ente\s+di\s+rilascio\s*[:\-]\s*([A-Z\s']+)`)
	idDataNascita       = regexp.MustCompile(`(?im)nato\s*(?:a\s*)?.*?il\s*([0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4})`)
	idComuneNascita     = regexp.MustCompile(`(?m)(?i:nato\s*a)\s*([A-ZÀ-Ù' ]+)`)
	idProvinciaPattern  = regexp.MustCompile(`(?im)provincia\s*[:\-]\s*([A-Z]{2})`)
	idSessoPattern      = regexp.MustCompile(`(?im)sesso\s*[:\-]\s*([MF])`)
	idDataRilascio      = regexp.MustCompile(`(?im)rilasciat[oa]\s*il\s*([0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4})`)
	idScadenzaPattern   = regexp.MustCompile(`(?im)scadenza\s*[:\-]\s*([0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4})`)
	idResidenzaPattern  = regexp.MustCompile(`(?im)residenza\s*[:\-]\s*([A-Z0-9' \t,.\-]+)`)
)

// Health card patterns: the labeled form wins; the bare canonical tax-code
// shape is only a fallback when no label is present.
var (
	cfLabeledPattern = regexp.MustCompile(`(?im)codice\s+fiscale\s*[:\-]?\s*([A-Z0-9]{16})`)
	cfShapePattern   = regexp.MustCompile(`(?im)([A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z])`)
)

// Curriculum patterns: looser name classes (lowercase and accented letters
// allowed), free-text captures up to end of line. The qualification date is
// searched only in the stretch following the qualification label, never
// globally.
var (
	cvNomePattern        = regexp.MustCompile(`(?im)nome\s*[:\-]\s*([A-Za-zÀ-ÿ'` + "`" + `\-]+)`)
	cvCognomePattern     = regexp.MustCompile(`(?im)cognome\s*[:\-]\s*([A-Za-zÀ-ÿ'` + "`" + `\-]+)`)
	cvDomicilioPattern   = regexp.MustCompile(`(?im)domicilio\s*[:\-]\s*([^\n]+)`)
	cvResidenzaPattern   = regexp.MustCompile(`(?im)residenza\s*[:\-]\s*([^\n]+)`)
	cvTitoloPattern      = regexp.MustCompile(`(?im)titolo\s+di\s+studio\s*[:\-]\s*([^\n]+)`)
	cvDataTitoloPattern  = regexp.MustCompile(`(?im)titolo\s+di\s+studio.*?([0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4})`)
	cvOccupazionePattern = regexp.MustCompile(`(?im)(?:occupazione|situazione\s+occupazionale)\s*[:\-]\s*([^\n]+)`)
	cvFirmaPattern       = regexp.MustCompile(`firma|signed`)

	anyDatePattern = regexp.MustCompile(`([0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4})`)
)

// extractFirst returns the first match's capture group, trimmed, or "" when the
// pattern does not match. Patterns with more than one group resolve to the last
// group of the match.
func extractFirst(text string, pattern *regexp.Regexp) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[len(m)-1])
}

// detectCVDate returns the first date-shaped token that dates the curriculum
// itself. The qualification date is attached to the qualification, not to the
// document, so it does not count as the curriculum's date.
func detectCVDate(text, qualificationDate string) string {
	for _, d := range anyDatePattern.FindAllString(text, -1) {
		if d != qualificationDate {
			return d
		}
	}
	return ""
}

// ExtractFields implements FieldExtractor. Each of the three texts is scanned
// independently; a field whose pattern finds nothing keeps its schema default.
func (e *PatternExtractor) ExtractFields(ctx context.Context, cvText, identityText, healthCardText string) *Extraction {
	fields := models.DefaultPersonFields()

	e.extractIdentity(identityText, fields)
	e.extractHealthCard(healthCardText, fields)
	cvAlerts := e.extractCurriculum(cvText, fields)

	return &Extraction{
		Fields:   fields,
		CVAlerts: cvAlerts,
	}
}

func (e *PatternExtractor) extractIdentity(text string, fields *models.PersonFields) {
	fields.Nome = extractFirst(text, idNomePattern)
	fields.Cognome = extractFirst(text, idCognomePattern)
	fields.NumeroDocumento = extractFirst(text, idNumeroDocPattern)
	fields.EnteRilascio = extractFirst(text, idEnteidPattern)
	fields.DataNascita = extractFirst(text, idDataNascita)
	fields.ComuneNascita = extractFirst(text, idComuneNascita)
	fields.ProvinciaNascita = extractFirst(text, idProvinciaPattern)
	fields.Sesso = extractFirst(text, idSessoPattern)
	fields.DataRilascio = extractFirst(text, idDataRilascio)
	fields.DataScadenza = extractFirst(text, idScadenzaPattern)
	fields.IndirizzoResidenza = extractFirst(text, idResidenzaPattern)
}

func (e *PatternExtractor) extractHealthCard(text string, fields *models.PersonFields) {
	codice := extractFirst(text, cfLabeledPattern)
	if codice == "" {
		codice = extractFirst(text, cfShapePattern)
	}
	fields.CodiceFiscale = codice
}

// extractCurriculum fills the CV fields and returns the curriculum checklist:
// one alert per missing required field in the documented order, then one each
// for the three boolean checks.
func (e *PatternExtractor) extractCurriculum(text string, fields *models.PersonFields) []string {
	normalized := Normalize(text)

	cvNome := extractFirst(text, cvNomePattern)
	cvCognome := extractFirst(text, cvCognomePattern)
	fields.IndirizzoDomicilio = extractFirst(text, cvDomicilioPattern)
	cvResidenza := extractFirst(text, cvResidenzaPattern)
	fields.TitoloStudioPiuRecente.Titolo = extractFirst(text, cvTitoloPattern)
	fields.TitoloStudioPiuRecente.DataConseguimento = extractFirst(text, cvDataTitoloPattern)
	fields.SituazioneOccupazionale = extractFirst(text, cvOccupazionePattern)

	// Identity-document values win over the CV for the shared fields; the CV
	// only fills what the identity pass left empty.
	if fields.Nome == "" {
		fields.Nome = cvNome
	}
	if fields.Cognome == "" {
		fields.Cognome = cvCognome
	}
	if fields.IndirizzoResidenza == "" {
		fields.IndirizzoResidenza = cvResidenza
	}

	fields.PrivacyClausePresent = strings.Contains(normalized, "trattamento dei dati personali") ||
		strings.Contains(normalized, "privacy")
	fields.FirmaPresente = cvFirmaPattern.MatchString(normalized)
	fields.DataCV = detectCVDate(normalized, fields.TitoloStudioPiuRecente.DataConseguimento)

	required := []struct {
		label string
		value string
	}{
		{"indirizzo di domicilio", fields.IndirizzoDomicilio},
		{"indirizzo di residenza", cvResidenza},
		{"titolo di studio più recente", fields.TitoloStudioPiuRecente.Titolo},
		{"data del titolo di studio", fields.TitoloStudioPiuRecente.DataConseguimento},
		{"situazione occupazionale", fields.SituazioneOccupazionale},
		{"nome", cvNome},
		{"cognome", cvCognome},
	}

	var alerts []string
	for _, f := range required {
		if f.value == "" {
			alerts = append(alerts, "Campo mancante nel CV: "+f.label+".")
		}
	}
	if !fields.PrivacyClausePresent {
		alerts = append(alerts, "Nel CV manca il riferimento al trattamento dei dati personali.")
	}
	if !fields.FirmaPresente {
		alerts = append(alerts, "Il CV non risulta firmato.")
	}
	if fields.DataCV == "" {
		alerts = append(alerts, "Il CV non contiene una data.")
	}

	return alerts
}
