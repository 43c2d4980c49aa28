// Package llm provides the Groq-backed language model client used for
// plan generation and speech transcription.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrMissingAPIKey is returned when no API key could be resolved from
// configuration or the profile store.
var ErrMissingAPIKey = errors.New("llm: no API key configured")

// Completer produces a raw model reply for a system/user prompt pair.
// The reply is expected to be JSON but callers must not assume it is.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, language string) (string, error)
}

// KeyFunc resolves the API key at call time so a key saved through the
// profile store takes effect without restarting the service.
type KeyFunc func(ctx context.Context) string

// GroqClient talks to the Groq OpenAI-compatible API.
type GroqClient struct {
	client       *resty.Client
	planModel    string
	whisperModel string
	keyFn        KeyFunc
}

// NewGroqClient builds a client against baseURL (e.g.
// https://api.groq.com/openai/v1).
func NewGroqClient(baseURL, planModel, whisperModel string, timeout time.Duration, keyFn KeyFunc) *GroqClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &GroqClient{
		client:       c,
		planModel:    planModel,
		whisperModel: whisperModel,
		keyFn:        keyFn,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat-completion turn. Temperature is pinned low and
// the response is requested as a JSON object so the planner gets
// machine-readable output.
func (g *GroqClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	key := g.keyFn(ctx)
	if key == "" {
		return "", ErrMissingAPIKey
	}

	reqBody := chatRequest{
		Model: g.planModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.1,
	}
	reqBody.ResponseFormat.Type = "json_object"

	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(key).
		SetHeader("Content-Type", "application/json").
		SetBody(&reqBody).
		Post("/chat/completions")
	if err != nil {
		return "", errors.Wrap(err, "groq chat request")
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("groq chat status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", errors.Wrap(err, "decode chat response")
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("groq chat: empty choices")
	}
	return cr.Choices[0].Message.Content, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads audio to the Whisper endpoint and returns the text.
func (g *GroqClient) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, error) {
	key := g.keyFn(ctx)
	if key == "" {
		return "", ErrMissingAPIKey
	}
	if len(audio) == 0 {
		return "", errors.New("empty audio")
	}
	if filename == "" {
		filename = "recording.webm"
	}

	req := g.client.R().
		SetContext(ctx).
		SetAuthToken(key).
		SetFileReader("file", filename, bytes.NewReader(audio)).
		SetFormData(map[string]string{
			"model":           g.whisperModel,
			"response_format": "verbose_json",
		})
	if language != "" {
		req.SetFormData(map[string]string{"language": language})
	}

	resp, err := req.Post("/audio/transcriptions")
	if err != nil {
		return "", errors.Wrap(err, "groq transcription request")
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("groq transcription status %d: %s", resp.StatusCode(), resp.String())
	}

	var tr transcriptionResponse
	if err := json.Unmarshal(resp.Body(), &tr); err != nil {
		return "", errors.Wrap(err, "decode transcription response")
	}
	return tr.Text, nil
}
