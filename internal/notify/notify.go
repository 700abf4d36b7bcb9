// Package notify triggers provider-side notification workflows and manages the
// provider's copy of resident contact details.
package notify

import (
	"context"
)

// Attachment is sent base64 encoded inside the workflow data.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// Trigger starts one workflow run for every recipient.
type Trigger struct {
	Workflow    string
	Recipients  []string
	Data        map[string]any
	Attachments []Attachment
}

// User is the provider's record of a resident's contact channels.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone_number,omitempty"`
}

// Notifier is implemented by the Knock client and the Kafka producer.
type Notifier interface {
	Trigger(ctx context.Context, t Trigger) error
	Identify(ctx context.Context, u User) error
	DeleteUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*User, error)
}
