// Package schema is the content contract shared by the API server and its
// clients: entity shapes, the fields a client may send when creating a
// Message, and the validators both sides run against request and response
// bodies.
package schema

import "time"

// MessageInput is the subset of Message a client is allowed to supply.
type MessageInput struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message" validate:"required,min=10,max=500"`
}

// Message is a persisted contact-form submission.
type Message struct {
	ID        int64     `json:"id" validate:"gt=0"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
}

// Program describes one of the organisation's activities.
// Category is an open tag such as "training", "advocacy" or "community".
type Program struct {
	ID          int64   `json:"id" validate:"gt=0"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    *string `json:"imageUrl"`
	Gallery     Gallery `json:"gallery,omitempty"`
}

// Story is a beneficiary testimonial.
type Story struct {
	ID              int64   `json:"id" validate:"gt=0"`
	Title           string  `json:"title" validate:"required"`
	Content         string  `json:"content" validate:"required"`
	BeneficiaryName string  `json:"beneficiaryName" validate:"required"`
	ImageURL        *string `json:"imageUrl"`
}

// ErrorResponse is the 400 body of contact.submit.
// Field is the dotted path of the failing field, empty for the whole body.
type ErrorResponse struct {
	Message string `json:"message" validate:"required"`
	Field   string `json:"field"`
}

// Ptr returns a pointer to s. Handy for the optional text fields.
func Ptr(s string) *string { return &s }
