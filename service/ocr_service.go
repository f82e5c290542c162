package service

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

// TextRecognizer turns one uploaded document into a single string of
// recognized text. Implementations report failures as errors; callers treat a
// failed acquisition as an empty text and keep the pipeline going.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, filename, mimeType string, data []byte) (string, error)
}

const transcriptionPrompt = `Transcribe all text visible in this document exactly as written. ` +
	`Return only the transcribed text, with no commentary, no translation and no formatting markup. ` +
	`If no text is legible, return an empty response.`

// ErrRecognizerNotConfigured is returned when no API key is available for the
// vision call.
var ErrRecognizerNotConfigured = errors.New("text recognizer not configured")

// GeminiRecognizerConfig configures the vision-based recognizer.
type GeminiRecognizerConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// GeminiRecognizer recognizes document text by sending the file bytes inline
// to the Gemini generation API with a transcription-only instruction. Plain
// text uploads pass through untouched, without a model call.
type GeminiRecognizer struct {
	cfg    GeminiRecognizerConfig
	client *http.Client
}

// NewGeminiRecognizer creates a new vision-based text recognizer
func NewGeminiRecognizer(cfg GeminiRecognizerConfig) *GeminiRecognizer {
	if cfg.Model == "" {
		cfg.Model = defaultExtractionModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultGenerationEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * defaultRequestTimeout
	}

	return &GeminiRecognizer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// RecognizeText implements TextRecognizer.
func (r *GeminiRecognizer) RecognizeText(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	if strings.HasPrefix(mimeType, "text/") {
		return string(data), nil
	}

	if r.cfg.APIKey == "" {
		return "", ErrRecognizerNotConfigured
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": transcriptionPrompt},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(data),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0,
		},
	}

	return generateContent(ctx, r.client, r.cfg.Endpoint, r.cfg.Model, r.cfg.APIKey, reqBody)
}
