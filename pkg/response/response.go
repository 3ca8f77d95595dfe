package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/tanlab/labdaily-api/pkg/errors"
)

// The wire contract is intentionally flat: success bodies are the payload
// itself and failures are {"error": message}. The web client predates this
// server and depends on these exact shapes.

// JSON sends a success payload as-is.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, payload)
}

// Message sends {"message": msg} with the given status.
func Message(c *gin.Context, status int, msg string) {
	JSON(c, status, gin.H{"message": msg})
}

// Created sends a 201 {"message": msg}.
func Created(c *gin.Context, msg string) {
	Message(c, http.StatusCreated, msg)
}

// Error maps any error onto {"error": message} with its HTTP status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
