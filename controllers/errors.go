package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snackpoint/pos/utils"
)

var (
	// ErrOutOfRange marks an index into a seat/order list that is no
	// longer valid, e.g. after a removal elsewhere.
	ErrOutOfRange = errors.New("index out of range")
)

// confirmed reports whether the caller acknowledged the destructive or
// financial action. Handlers must not mutate anything until this is true.
func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}

// respondConfirmRequired answers with the human-readable confirmation
// message for the pending action. State is untouched; the caller repeats
// the request with confirm=true to proceed.
func respondConfirmRequired(c *gin.Context, message string) {
	utils.RespondJSON(c, http.StatusConflict, message, gin.H{
		"confirm_required": true,
	})
}
