package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/models"
)

const (
	openAIEndpoint     = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel = "gpt-4o-mini"
)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAI talks to the chat completions API over plain HTTP.
type OpenAI struct {
	model  string
	client *http.Client
}

func NewOpenAI(cfg config.AI) *OpenAI {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAI{
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) ExtractJobs(ctx context.Context, body string) ([]models.CandidateJob, error) {
	text, err := o.complete(ctx, extractPrompt(body))
	if err != nil {
		return nil, err
	}
	return decodeCandidates(text)
}

func (o *OpenAI) Analyze(ctx context.Context, job models.Job, resumes []Resume) (*models.Analysis, error) {
	text, err := o.complete(ctx, analyzePrompt(job, resumes))
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(text)
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", &ProviderError{Provider: o.Name(), Err: fmt.Errorf("OPENAI_API_KEY not set")}
	}

	payload, err := json.Marshal(chatRequest{
		Model:    o.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", &ProviderError{Provider: o.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Provider: o.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		transient := errors.Is(err, context.DeadlineExceeded) || isTimeout(err)
		return "", &ProviderError{Provider: o.Name(), Transient: transient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		transient := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", &ProviderError{
			Provider:  o.Name(),
			Transient: transient,
			Err:       fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &ProviderError{Provider: o.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(cr.Choices) == 0 {
		return "", &ProviderError{Provider: o.Name(), Transient: true, Err: fmt.Errorf("no choices in response")}
	}
	return cr.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
