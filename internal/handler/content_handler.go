package handler

import (
	"net/http"

	"github.com/inclusionhub/backend/internal/service"
)

// ContentHandler serves programs and stories.
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler creates a ContentHandler with the given service.
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// Programs handles GET /api/programs.
func (h *ContentHandler) Programs(w http.ResponseWriter, r *http.Request) {
	programs, err := h.contentService.Programs(r.Context())
	if err != nil {
		internalError(w, r, "list programs failed", err)
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

// Stories handles GET /api/stories.
func (h *ContentHandler) Stories(w http.ResponseWriter, r *http.Request) {
	stories, err := h.contentService.Stories(r.Context())
	if err != nil {
		internalError(w, r, "list stories failed", err)
		return
	}
	writeJSON(w, http.StatusOK, stories)
}
