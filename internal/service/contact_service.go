package service

import (
	"context"

	"github.com/inclusionhub/backend/pkg/schema"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in and stores it as a new Message. A rule violation
	// is returned as *schema.ValidationError and nothing is stored.
	Submit(ctx context.Context, in schema.MessageInput) (*schema.Message, error)
}
