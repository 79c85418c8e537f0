package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"estate-service/internal/clients"
)

// ContactsHandler proxies the optional contact directory used to prefill
// party forms. A missing or unhealthy directory returns 204 so the caller
// degrades to manual entry.
type ContactsHandler struct {
	contacts *clients.ContactsClient
}

// NewContactsHandler creates a new contacts handler.
func NewContactsHandler(contacts *clients.ContactsClient) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

// Pick looks up directory contacts matching q.
func (h *ContactsHandler) Pick(c *gin.Context) {
	results, err := h.contacts.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, clients.ErrContactsUnavailable) {
			c.Status(http.StatusNoContent)
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Contact lookup failed", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Contacts retrieved", results)
}
