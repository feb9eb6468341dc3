// Package mail supplies raw alert messages to the scan pipeline.
package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jobradar/jobradar/internal/models"
)

// Mailbox yields messages received since a cutoff. Implementations
// return the full window unfiltered: follow-up mail (interview
// invitations, offers, rejections) arrives from senders no alert
// source matches, and the scan needs those alongside the alerts.
type Mailbox interface {
	Fetch(ctx context.Context, since time.Time) ([]models.RawMessage, error)
}

// FileMailbox reads an exported mailbox: a JSON array of messages, the
// format produced by most mail export tools and by the test fixtures.
type FileMailbox struct {
	Path string
}

func (m *FileMailbox) Fetch(ctx context.Context, since time.Time) ([]models.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, fmt.Errorf("read mailbox: %w", err)
	}

	var all []models.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode mailbox: %w", err)
	}

	var out []models.RawMessage
	for _, msg := range all {
		if !since.IsZero() && msg.ReceivedAt.Before(since) {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}
