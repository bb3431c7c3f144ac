package helpers

import (
	"encoding/json"
	"maps"
	"net/http"

	"github.com/Atlas-Rhythm/forwardhook/internal/models"
)

type httpResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Render turns a handler result into the status, headers and body sent to the
// caller. A failed result is wrapped in a JSON {"message","error"} envelope, a
// successful one is sent as-is.
func Render(response models.Response, err error) (int, map[string]string, string) {
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	headers := make(map[string]string, len(response.Headers)+1)
	maps.Copy(headers, response.Headers)

	if err == nil {
		return statusCode, headers, response.Body
	}

	hR := httpResponse{
		Message: response.Body,
		Error:   err.Error(),
	}
	if hR.Message == "" {
		hR.Message = http.StatusText(statusCode)
	}
	respBody, _ := json.Marshal(hR)
	headers["Content-Type"] = "application/json"
	return statusCode, headers, string(respBody)
}

// RespondHTTP writes a handler result to rw.
func RespondHTTP(response models.Response, err error, rw http.ResponseWriter) {
	statusCode, headers, body := Render(response, err)
	for k, v := range headers {
		rw.Header().Set(k, v)
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(body))
}
