// Package httpstatus maps HTTP status codes to short human readable labels.
package httpstatus

import (
	"fmt"
	"net/http"
)

// Describe returns "<code> <reason>", e.g. "404 Not Found".
// Codes outside the known table fall back to "<code> Unknown Status".
func Describe(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return fmt.Sprintf("%d Unknown Status", code)
	}
	return fmt.Sprintf("%d %s", code, text)
}

// IsSuccess returns true if status code is 2xx
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// IsRedirect returns true if status code is 3xx
func IsRedirect(status int) bool {
	return status >= 300 && status < 400
}

// IsClientError returns true if status code is 4xx
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}

// IsServerError returns true if status code is 5xx
func IsServerError(status int) bool {
	return status >= 500 && status < 600
}
