package models

import "time"

// RawMessage is one message handed over by the mail collaborator.
type RawMessage struct {
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}
