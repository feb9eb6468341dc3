package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/jobradar/jobradar/internal/config"
	"github.com/jobradar/jobradar/internal/models"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini talks to the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(cfg config.AI) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) ExtractJobs(ctx context.Context, body string) ([]models.CandidateJob, error) {
	text, err := g.generate(ctx, extractPrompt(body))
	if err != nil {
		return nil, err
	}
	return decodeCandidates(text)
}

func (g *Gemini) Analyze(ctx context.Context, job models.Job, resumes []Resume) (*models.Analysis, error) {
	text, err := g.generate(ctx, analyzePrompt(job, resumes))
	if err != nil {
		return nil, err
	}
	return decodeAnalysis(text)
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	temperature := float32(0.2)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", &ProviderError{Provider: g.Name(), Transient: geminiTransient(err), Err: err}
	}
	if resp == nil || resp.Text() == "" {
		return "", &ProviderError{Provider: g.Name(), Transient: true, Err: fmt.Errorf("empty response")}
	}
	return resp.Text(), nil
}

func geminiTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate", "quota", "timeout", "deadline", "unavailable", "500", "503"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
