package ai

import (
	"errors"
	"testing"
)

func TestDecodeAnalysis(t *testing.T) {
	reply := "Here is my assessment:\n```json\n" + `{
  "qualification_score": 82,
  "strengths": ["Go", "distributed systems"],
  "gaps": ["Kubernetes"],
  "resume_to_use": "backend",
  "recommendation": "Apply with the backend resume."
}` + "\n```"

	a, err := decodeAnalysis(reply)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if a.QualificationScore != 82 {
		t.Fatalf("unexpected score: %d", a.QualificationScore)
	}
	if len(a.Strengths) != 2 || a.Strengths[0] != "Go" {
		t.Fatalf("unexpected strengths: %v", a.Strengths)
	}
	if a.ResumeToUse != "backend" {
		t.Fatalf("unexpected resume: %q", a.ResumeToUse)
	}
}

func TestDecodeAnalysisClampsScore(t *testing.T) {
	a, err := decodeAnalysis(`{"qualification_score": 180}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if a.QualificationScore != 100 {
		t.Fatalf("expected clamp to 100, got %d", a.QualificationScore)
	}

	a, err = decodeAnalysis(`{"qualification_score": -5}`)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if a.QualificationScore != 1 {
		t.Fatalf("expected clamp to 1, got %d", a.QualificationScore)
	}
}

func TestDecodeAnalysisNoJSON(t *testing.T) {
	if _, err := decodeAnalysis("I could not evaluate this posting."); err == nil {
		t.Fatalf("expected error for reply without JSON")
	}
}

func TestDecodeCandidates(t *testing.T) {
	reply := `Sure! [{"title": "Go Engineer", "company": "Acme", "url": "https://a.example/1"},
{"title": "SRE", "company": "Globex", "url": "https://a.example/2"}]`

	jobs, err := decodeCandidates(reply)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(jobs))
	}
	if jobs[1].Company != "Globex" {
		t.Fatalf("unexpected company: %q", jobs[1].Company)
	}
}

func TestIsTransient(t *testing.T) {
	transient := &ProviderError{Provider: "openai", Transient: true, Err: errors.New("HTTP 429")}
	if !IsTransient(transient) {
		t.Fatalf("expected transient")
	}
	permanent := &ProviderError{Provider: "openai", Err: errors.New("HTTP 401")}
	if IsTransient(permanent) {
		t.Fatalf("expected permanent")
	}
	if IsTransient(errors.New("plain")) {
		t.Fatalf("plain errors are not transient")
	}
}
