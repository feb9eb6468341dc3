package mail

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const mailboxFixture = `[
  {"sender": "jobs-noreply@linkedin.com", "subject": "new jobs", "body": "<p>a</p>", "received_at": "2025-08-10T08:00:00Z"},
  {"sender": "alert@indeed.com", "subject": "10 new jobs", "body": "<p>b</p>", "received_at": "2025-08-18T08:00:00Z"}
]`

func writeMailbox(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mailbox.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestFileMailboxFetch(t *testing.T) {
	mb := &FileMailbox{Path: writeMailbox(t, mailboxFixture)}

	msgs, err := mb.Fetch(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
}

func TestFileMailboxFetchSince(t *testing.T) {
	mb := &FileMailbox{Path: writeMailbox(t, mailboxFixture)}

	since := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	msgs, err := mb.Fetch(context.Background(), since)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Sender != "alert@indeed.com" {
		t.Fatalf("cutoff not applied: %+v", msgs)
	}
}

func TestFileMailboxMissingFile(t *testing.T) {
	mb := &FileMailbox{Path: filepath.Join(t.TempDir(), "absent.json")}
	if _, err := mb.Fetch(context.Background(), time.Time{}); err == nil {
		t.Fatalf("expected error for missing mailbox")
	}
}

func TestFileMailboxBadJSON(t *testing.T) {
	mb := &FileMailbox{Path: writeMailbox(t, "{not an array}")}
	if _, err := mb.Fetch(context.Background(), time.Time{}); err == nil {
		t.Fatalf("expected error for malformed mailbox")
	}
}
