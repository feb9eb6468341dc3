package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jobradar/jobradar/internal/models"
)

// extractJSON pulls the first JSON object or array out of a model reply,
// tolerating markdown fences and surrounding prose.
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	for _, pair := range [][2]byte{{'{', '}'}, {'[', ']'}} {
		start := strings.IndexByte(text, pair[0])
		end := strings.LastIndexByte(text, pair[1])
		if start >= 0 && end > start {
			return text[start : end+1], nil
		}
	}
	return "", fmt.Errorf("no JSON found in response")
}

func decodeAnalysis(text string) (*models.Analysis, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var a models.Analysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	a.QualificationScore = clampScore(a.QualificationScore)
	return &a, nil
}

func decodeCandidates(text string) ([]models.CandidateJob, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var jobs []models.CandidateJob
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return jobs, nil
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}
