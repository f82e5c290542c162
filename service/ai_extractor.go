package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"doccheck-backend/models"
)

const (
	defaultGenerationEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultExtractionModel    = "gemini-2.0-flash"
	defaultMaxOutputTokens    = 500
	defaultRequestTimeout     = 60 * time.Second
)

// AIExtractorConfig is the explicit configuration for the model-based
// extractor. Nothing is read from the environment inside the extraction call;
// wiring happens once at construction.
type AIExtractorConfig struct {
	APIKey          string
	Model           string
	Endpoint        string // API base URL, overridable for tests
	Temperature     float64
	MaxOutputTokens int
	Timeout         time.Duration
}

// AIExtractor asks a generative model for the field schema as a single JSON
// object. The model runs in deterministic mode (temperature 0) with a bounded
// output and a JSON-constrained response format.
//
// Failure policy: with no API key configured the extractor short-circuits and
// returns the full default object without touching the network; a failed call,
// a non-JSON response or a structurally broken payload all degrade to the
// default object too. Extraction never fails the processing run.
type AIExtractor struct {
	cfg    AIExtractorConfig
	client *http.Client
}

// NewAIExtractor creates a new model-based extractor
func NewAIExtractor(cfg AIExtractorConfig) *AIExtractor {
	if cfg.Model == "" {
		cfg.Model = defaultExtractionModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultGenerationEndpoint
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultRequestTimeout
	}

	return &AIExtractor{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// buildPrompt assembles the Italian extraction instruction: the full field
// schema with its labels, the fabrication ban, and the three raw texts.
func (e *AIExtractor) buildPrompt(cvText, identityText, healthCardText string) string {
	return fmt.Sprintf(`Sei un assistente che estrae dati da tre testi. Restituisci SOLO un JSON valido senza testo aggiuntivo con i seguenti campi:

Dal DOCUMENTO DI IDENTITÀ:
- nome
- cognome
- numero_documento
- ente_rilascio
- data_nascita (YYYY-MM-DD)
- comune_nascita
- provincia_nascita
- sesso
- data_rilascio (YYYY-MM-DD)
- data_scadenza (YYYY-MM-DD)
- indirizzo_residenza

Dalla TESSERA SANITARIA:
- codice_fiscale

Dal CV:
- nome
- cognome
- indirizzo_domicilio
- indirizzo_residenza
- titolo_studio_piu_recente:
    - titolo
    - data_conseguimento (YYYY-MM-DD)
- situazione_occupazionale
- privacy_clause_present (boolean)
- firma_presente (boolean)
- data_cv (YYYY-MM-DD)

Inserisci stringhe vuote o valori false se non trovi informazioni. Non inventare dati. Esempio di output:
{"nome": "Mario", "cognome": "Rossi", ...}

Testo CV:
%s

Testo documento identità:
%s

Testo tessera sanitaria:
%s
`, cvText, identityText, healthCardText)
}

// ExtractFields implements FieldExtractor.
func (e *AIExtractor) ExtractFields(ctx context.Context, cvText, identityText, healthCardText string) *Extraction {
	if e.cfg.APIKey == "" {
		return &Extraction{
			Fields:         models.DefaultPersonFields(),
			Degraded:       true,
			DegradedReason: "no API key configured",
		}
	}

	prompt := e.buildPrompt(cvText, identityText, healthCardText)

	content, err := e.callGenerationAPI(ctx, prompt)
	if err != nil {
		log.Printf("Warning: AI extraction degraded to defaults: %v", err)
		return &Extraction{
			Fields:         models.DefaultPersonFields(),
			Degraded:       true,
			DegradedReason: err.Error(),
		}
	}

	// Decoding over the zero-value schema merges the model's answer on top of
	// the defaults: omitted keys keep their default, including the nested
	// qualification sub-object.
	fields := models.DefaultPersonFields()
	if err := json.Unmarshal([]byte(stripCodeFences(content)), fields); err != nil {
		log.Printf("Warning: AI extraction returned invalid JSON, using defaults: %v", err)
		return &Extraction{
			Fields:         models.DefaultPersonFields(),
			Degraded:       true,
			DegradedReason: "invalid JSON response: " + err.Error(),
		}
	}

	return &Extraction{Fields: fields}
}

// stripCodeFences removes a markdown code fence wrapper some models emit
// around JSON payloads.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// callGenerationAPI performs the single generation round-trip for one
// extraction run. No retries are built in; callers needing resilience add
// their own.
func (e *AIExtractor) callGenerationAPI(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      e.cfg.Temperature,
			"maxOutputTokens":  e.cfg.MaxOutputTokens,
			"responseMimeType": "application/json",
		},
	}

	return generateContent(ctx, e.client, e.cfg.Endpoint, e.cfg.Model, e.cfg.APIKey, reqBody)
}
