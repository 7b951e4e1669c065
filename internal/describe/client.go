// Package describe calls a vision-capable chat completion service to put a
// sampled color into context: what object or region the pixel belongs to.
// The service is OpenAI-compatible; base URL, model, and credential are all
// configurable so local gateways work too.
package describe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"image-inspector/internal/sample"
)

// ErrNoAPIKey indicates no credential is configured for the service.
var ErrNoAPIKey = errors.New("no API key configured; set IMAGE_INSPECTOR_API_KEY")

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"

	requestTimeout = 30 * time.Second
	maxTokens      = 200
)

// Client issues description requests. One request is sent per call; there
// is no retry.
type Client struct {
	BaseURL string
	Model   string
	APIKey  string

	// HTTPClient defaults to a client with a 30 second timeout.
	HTTPClient *http.Client
}

// KeyFromEnv returns the service credential from the environment.
// IMAGE_INSPECTOR_API_KEY wins over OPENAI_API_KEY so the inspector can use
// a dedicated key next to other OpenAI tooling.
func KeyFromEnv() string {
	if k := os.Getenv("IMAGE_INSPECTOR_API_KEY"); k != "" {
		return k
	}
	return os.Getenv("OPENAI_API_KEY")
}

// ResolveKey picks the credential to use: the environment wins over the
// stored preference, so keys do not have to live on disk.
func ResolveKey(stored string) string {
	if k := KeyFromEnv(); k != "" {
		return k
	}
	return stored
}

// NewClient builds a Client, filling empty baseURL and model with the
// OpenAI defaults.
func NewClient(baseURL, model, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Model:      model,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

// Result carries the service's description together with the identity of
// the sample the request was issued for, so callers can drop responses that
// arrive after a newer pick.
type Result struct {
	SampleID uuid.UUID
	Text     string
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Describe sends the image patch around s to the service and returns its
// free-text description verbatim.
func (c *Client) Describe(img image.Image, s sample.Sample) (Result, error) {
	if c.APIKey == "" {
		return Result{}, ErrNoAPIKey
	}

	patch, err := BuildPatch(img, s.Point())
	if err != nil {
		return Result{}, err
	}

	st := sample.Region(img, s.Point(), 1)
	prompt := fmt.Sprintf(
		"This crop surrounds the pixel at (%d, %d). Its color is %s (RGB %s, close to %q); the 3x3 neighborhood averages RGB %.0f, %.0f, %.0f. In one or two sentences, describe what that color belongs to in the image.",
		s.X, s.Y, s.Hex, s.RGBString(), s.Name, st.MeanR, st.MeanG, st.MeanB)

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &imageURL{URL: patch}},
			},
		}},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: requestTimeout}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("calling description service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("description service returned HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Result{}, errors.New("description service returned no choices")
	}

	return Result{SampleID: s.ID, Text: strings.TrimSpace(parsed.Choices[0].Message.Content)}, nil
}
