package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"doccheck-backend/models"

	"github.com/stretchr/testify/require"
)

// generationResponse wraps a model answer in the generation API's envelope.
func generationResponse(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	})
	require.NoError(t, err)
	return body
}

func TestAIExtractorWithoutKeySkipsNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	e := NewAIExtractor(AIExtractorConfig{APIKey: "", Endpoint: server.URL})
	ext := e.ExtractFields(context.Background(), "cv", "identity", "card")

	require.True(t, ext.Degraded)
	require.Equal(t, "no API key configured", ext.DegradedReason)
	require.Equal(t, models.DefaultPersonFields(), ext.Fields)
	require.Zero(t, calls)
}

func TestAIExtractorMergesAnswerOverDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req struct {
			GenerationConfig struct {
				Temperature      float64 `json:"temperature"`
				MaxOutputTokens  int     `json:"maxOutputTokens"`
				ResponseMimeType string  `json:"responseMimeType"`
			} `json:"generationConfig"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Zero(t, req.GenerationConfig.Temperature)
		require.Equal(t, 500, req.GenerationConfig.MaxOutputTokens)
		require.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		w.Write(generationResponse(t, `{
			"nome": "Mario",
			"codice_fiscale": "RSSMRA80A01H501Z",
			"titolo_studio_piu_recente": {"titolo": "Laurea in Lettere"},
			"firma_presente": true
		}`))
	}))
	defer server.Close()

	e := NewAIExtractor(AIExtractorConfig{APIKey: "test-key", Endpoint: server.URL})
	ext := e.ExtractFields(context.Background(), "cv", "identity", "card")

	require.False(t, ext.Degraded)
	require.Equal(t, "Mario", ext.Fields.Nome)
	require.Equal(t, "RSSMRA80A01H501Z", ext.Fields.CodiceFiscale)
	require.Equal(t, "Laurea in Lettere", ext.Fields.TitoloStudioPiuRecente.Titolo)
	require.True(t, ext.Fields.FirmaPresente)

	// Keys the model omitted keep their schema default, including the nested
	// qualification leaf.
	require.Empty(t, ext.Fields.Cognome)
	require.Empty(t, ext.Fields.TitoloStudioPiuRecente.DataConseguimento)
	require.False(t, ext.Fields.PrivacyClausePresent)
}

func TestAIExtractorStripsCodeFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(generationResponse(t, "```json\n{\"nome\": \"Anna\"}\n```"))
	}))
	defer server.Close()

	e := NewAIExtractor(AIExtractorConfig{APIKey: "test-key", Endpoint: server.URL})
	ext := e.ExtractFields(context.Background(), "", "", "")

	require.False(t, ext.Degraded)
	require.Equal(t, "Anna", ext.Fields.Nome)
}

func TestAIExtractorInvalidJSONDegradesToDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(generationResponse(t, "non sono un JSON"))
	}))
	defer server.Close()

	e := NewAIExtractor(AIExtractorConfig{APIKey: "test-key", Endpoint: server.URL})
	ext := e.ExtractFields(context.Background(), "cv", "identity", "card")

	require.True(t, ext.Degraded)
	require.Contains(t, ext.DegradedReason, "invalid JSON response")
	require.Equal(t, models.DefaultPersonFields(), ext.Fields)
}

func TestAIExtractorServerErrorDegradesToDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	e := NewAIExtractor(AIExtractorConfig{APIKey: "test-key", Endpoint: server.URL})
	ext := e.ExtractFields(context.Background(), "cv", "identity", "card")

	require.True(t, ext.Degraded)
	require.NotEmpty(t, ext.DegradedReason)
	require.Equal(t, models.DefaultPersonFields(), ext.Fields)
}

func TestAIExtractorBlockedPromptDegradesToDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"promptFeedback": {"blockReason": "SAFETY"}}`))
	}))
	defer server.Close()

	e := NewAIExtractor(AIExtractorConfig{APIKey: "test-key", Endpoint: server.URL})
	ext := e.ExtractFields(context.Background(), "cv", "identity", "card")

	require.True(t, ext.Degraded)
	require.Contains(t, ext.DegradedReason, "SAFETY")
	require.Equal(t, models.DefaultPersonFields(), ext.Fields)
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, stripCodeFences(tt.input))
		})
	}
}
