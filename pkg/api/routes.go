// Package api describes the HTTP surface of the content API as data. The
// server registers its handlers from these routes and the client builds its
// requests from them, so both sides validate against the same rules.
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/inclusionhub/backend/pkg/schema"
)

// Decoder parses and validates a raw JSON body.
type Decoder func(raw []byte) (any, error)

// Route is one operation of the API.
type Route struct {
	Name   string
	Method string
	Path   string
	// Input validates the request body. Nil when the route takes no body.
	Input Decoder
	// Responses holds one validator per documented status code.
	Responses map[int]Decoder
}

// URL joins base and the route path.
func (r Route) URL(base string) string {
	return strings.TrimRight(base, "/") + r.Path
}

// Decode validates a response body with the decoder registered for status.
func (r Route) Decode(status int, raw []byte) (any, error) {
	dec, ok := r.Responses[status]
	if !ok {
		return nil, &StatusError{Route: r.Name, StatusCode: status, Body: raw}
	}
	return dec(raw)
}

// StatusError is returned for a status code the route does not document.
type StatusError struct {
	Route      string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s: unexpected status %d", e.Route, e.StatusCode)
}

func decoder[T any](parse func([]byte) (T, error)) Decoder {
	return func(raw []byte) (any, error) {
		v, err := parse(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

var (
	// ContactSubmit creates a Message from a contact form.
	ContactSubmit = Route{
		Name:   "contact.submit",
		Method: http.MethodPost,
		Path:   "/api/contact",
		Input:  decoder(schema.ParseMessageInput),
		Responses: map[int]Decoder{
			http.StatusCreated:               decoder(schema.ParseMessage),
			http.StatusBadRequest:            decoder(schema.ParseErrorResponse),
			http.StatusRequestEntityTooLarge: decoder(schema.ParseErrorResponse),
		},
	}

	// ProgramsList returns every Program in seed order.
	ProgramsList = Route{
		Name:   "programs.list",
		Method: http.MethodGet,
		Path:   "/api/programs",
		Responses: map[int]Decoder{
			http.StatusOK: decoder(schema.ParsePrograms),
		},
	}

	// StoriesList returns every Story in seed order.
	StoriesList = Route{
		Name:   "stories.list",
		Method: http.MethodGet,
		Path:   "/api/stories",
		Responses: map[int]Decoder{
			http.StatusOK: decoder(schema.ParseStories),
		},
	}
)

// Routes lists every operation of the API.
func Routes() []Route {
	return []Route{ContactSubmit, ProgramsList, StoriesList}
}
