package utils

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// SendJSONError sends a standardized JSON error response and logs the internal
// error. For 5xx errors the public message stays generic; the real error is
// only logged.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error) {
	if internalError != nil {
		log.Printf("ERROR: Handler error: status_code=%d, public_message='%s', internal_error='%v', path='%s'",
			statusCode, publicMsg, internalError, c.Request.URL.Path)
	} else {
		log.Printf("INFO: Handler response: status_code=%d, public_message='%s', path='%s'",
			statusCode, publicMsg, c.Request.URL.Path)
	}

	if statusCode >= http.StatusInternalServerError {
		if publicMsg == "" || (internalError != nil && publicMsg == internalError.Error()) {
			publicMsg = "An unexpected error occurred. Please try again later."
		}
	}

	c.AbortWithStatusJSON(statusCode, gin.H{"error": publicMsg})
}

// GenerateID returns a millisecond-timestamp entity id, unique within a
// collection under the single-writer assumption.
func GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// FormatTime renders a timestamp the way display strings are stored.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
