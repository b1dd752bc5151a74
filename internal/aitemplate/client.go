// Package aitemplate asks a Gemini-compatible model for structured
// productivity templates and exports them.
package aitemplate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/zenith/internal/config"
	"github.com/julianstephens/zenith/internal/keyring"
	"github.com/julianstephens/zenith/internal/logger"
	"github.com/julianstephens/zenith/internal/models"
)

// APIKeyEnv overrides the keyring entry for the API key
const APIKeyEnv = "ZENITH_AI_API_KEY"

const promptTemplate = `Create a structured productivity template based on this request: %q.
Return a JSON object with a title, description, structure (array of column names and 2 rows of sample data), and a list of 3 helpful suggestions for using it.`

var keyringGet = keyring.Get

// Client generates templates through the generateContent endpoint
type Client struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// New builds a client from the [ai] settings. An empty apiKey is allowed;
// Generate then returns nil without calling out.
func New(cfg config.AI, apiKey string) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: cfg.Timeout()},
	}
}

// ResolveAPIKey reads the key from the environment, then the OS keyring.
// Returns "" when neither has one.
func ResolveAPIKey() string {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		return key
	}
	key, err := keyringGet(keyring.AIKey)
	if err != nil {
		logger.Debug("No AI API key in keyring", "error", err)
		return ""
	}
	return key
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func stringArray() map[string]any {
	return map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}}
}

func templateSchema() map[string]any {
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"title":       map[string]any{"type": "STRING"},
			"description": map[string]any{"type": "STRING"},
			"structure": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"columns": stringArray(),
					"data":    map[string]any{"type": "ARRAY", "items": stringArray()},
				},
			},
			"suggestions": stringArray(),
		},
	}
}

// Generate returns the template for prompt, or nil on any failure. Failures
// are logged, never returned.
func (c *Client) Generate(ctx context.Context, prompt string) *models.Template {
	if c.apiKey == "" {
		logger.Error("AI API key not found", "env", APIKeyEnv)
		return nil
	}

	tmpl, err := c.generate(ctx, prompt)
	if err != nil {
		logger.Error("Error generating template", "error", err)
		return nil
	}
	return tmpl
}

func (c *Client) generate(ctx context.Context, prompt string) (*models.Template, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, prompt)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   templateSchema(),
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	logger.Debug("generateContent", "status", res.StatusCode, "elapsed", time.Since(start))

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("generateContent failed with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var text strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("response contained no text")
	}

	var tmpl models.Template
	if err := json.Unmarshal([]byte(text.String()), &tmpl); err != nil {
		return nil, fmt.Errorf("response is not a template: %w", err)
	}
	if strings.TrimSpace(tmpl.Title) == "" {
		return nil, fmt.Errorf("template has no title")
	}
	return &tmpl, nil
}
