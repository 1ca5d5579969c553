package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/inclusionhub/backend/internal/metrics"
	"github.com/inclusionhub/backend/internal/service"
	"github.com/inclusionhub/backend/pkg/api"
	"github.com/inclusionhub/backend/pkg/schema"
)

// maxBodyBytes caps the contact request body.
const maxBodyBytes = 64 << 10

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
	observe        func(outcome string)
}

// ContactOption configures a ContactHandler.
type ContactOption func(*ContactHandler)

// WithSubmissionObserver is called once per submission with one of the
// metrics.Outcome* values.
func WithSubmissionObserver(fn func(outcome string)) ContactOption {
	return func(h *ContactHandler) { h.observe = fn }
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService, opts ...ContactOption) *ContactHandler {
	h := &ContactHandler{contactService: contactService, observe: func(string) {}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Submit handles POST /api/contact.
// The body is checked with the same parser the client uses; the first
// failing field is reported as 400 {message, field}.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.observe(metrics.OutcomeInvalid)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	v, err := api.ContactSubmit.Input(body)
	if err != nil {
		h.rejectOrFail(w, r, err)
		return
	}
	in := v.(schema.MessageInput)

	msg, err := h.contactService.Submit(r.Context(), in)
	if err != nil {
		h.rejectOrFail(w, r, err)
		return
	}

	// 自分が返すレスポンスも契約どおりか確認する
	if err := schema.ValidateMessage(*msg); err != nil {
		h.observe(metrics.OutcomeError)
		internalError(w, r, "created message failed response validation", err)
		return
	}

	h.observe(metrics.OutcomeCreated)
	writeJSON(w, http.StatusCreated, msg)
}

func (h *ContactHandler) rejectOrFail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		h.observe(metrics.OutcomeInvalid)
		writeJSON(w, http.StatusBadRequest, verr.Response())
		return
	}
	h.observe(metrics.OutcomeError)
	internalError(w, r, "contact submit failed", err)
}
