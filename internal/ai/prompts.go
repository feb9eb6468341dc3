package ai

import (
	"fmt"
	"strings"

	"github.com/jobradar/jobradar/internal/models"
)

const analyzeInstructions = `You are a job application assistant. Compare the
job posting against the candidate resumes and respond with ONLY a JSON object,
no markdown fences, with exactly these fields:

{
  "qualification_score": <integer 1-100, how well the best resume fits>,
  "strengths": [<up to 5 short strings, where the candidate matches well>],
  "gaps": [<up to 5 short strings, requirements the candidate lacks>],
  "resume_to_use": "<name of the best matching resume>",
  "recommendation": "<one or two sentences: apply, skip, or tailor first>"
}`

func analyzePrompt(job models.Job, resumes []Resume) string {
	var b strings.Builder
	b.WriteString(analyzeInstructions)
	b.WriteString("\n\nJob posting:\n")
	fmt.Fprintf(&b, "Title: %s\nCompany: %s\nLocation: %s\n", job.Title, job.Company, job.Location)
	if job.Description != "" {
		fmt.Fprintf(&b, "Description:\n%s\n", job.Description)
	}

	b.WriteString("\nCandidate resumes:\n")
	for _, r := range resumes {
		fmt.Fprintf(&b, "--- resume %q ---\n%s\n", r.Name, r.Content)
	}
	if len(resumes) == 0 {
		b.WriteString("(no resumes provided, score on the posting alone)\n")
	}
	return b.String()
}

const extractInstructions = `Extract every job posting from the following
email or text. Respond with ONLY a JSON array, no markdown fences. Each
element has the fields:

{"title": "...", "company": "...", "location": "...", "url": "...", "description": "..."}

Skip navigation links, unsubscribe links and anything that is not a job
posting. Use empty strings for unknown fields.`

func extractPrompt(body string) string {
	const maxBody = 20000
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return extractInstructions + "\n\nText:\n" + body
}
