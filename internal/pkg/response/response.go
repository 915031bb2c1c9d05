package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moviehub/internal/tmdb"
)

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Success bool        `json:"success" example:"false"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code" example:"NETWORK_ERROR"`
	Message string `json:"message" example:"check your connection"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FetchFailure writes the envelope for an error coming back from the
// remote catalog. It reports false when err is not a fetch error so the
// caller can fall through to its own handling.
func FetchFailure(c *gin.Context, err error) bool {
	var fe *tmdb.FetchError
	if !errors.As(err, &fe) {
		return false
	}
	status, code, message := FetchStatus(fe.Kind)
	if fe.Kind == tmdb.KindProtocol && fe.StatusCode == http.StatusNotFound {
		status, code, message = http.StatusNotFound, "NOT_FOUND", "not found upstream"
	}
	Error(c, status, code, message)
	return true
}

// FetchStatus maps an error kind to the HTTP status, code and message
// shown to clients.
func FetchStatus(kind tmdb.ErrorKind) (int, string, string) {
	switch kind {
	case tmdb.KindNetwork:
		return http.StatusServiceUnavailable, "NETWORK_ERROR", "check your connection"
	case tmdb.KindProtocol:
		return http.StatusBadGateway, "UPSTREAM_ERROR", "something went wrong"
	default:
		return http.StatusInternalServerError, "UNKNOWN_ERROR", "unknown error"
	}
}
