package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecraft/internal/service"
)

// SubmitContact validates a contact form submission and delivers it by mail.
func (a *API) SubmitContact(c *gin.Context) {
	var payload service.ContactInput
	if !bindJSON(c, &payload, "invalid contact payload") {
		return
	}

	record, err := a.contact.Submit(payload)
	if err != nil {
		switch {
		case isValidationError(err):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMailNotConfigured):
			respondError(c, http.StatusInternalServerError, "mail delivery is not configured")
		default:
			respondError(c, http.StatusInternalServerError, "failed to send message")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "message sent",
		"reference": record.Reference,
	})
}
