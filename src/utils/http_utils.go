// src/utils/http_utils.go
package utils

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/models"
)

// SendJSON writes v as a JSON body with the given status.
func SendJSON(w http.ResponseWriter, v interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L.Error("Error encoding JSON response", "error", err)
	}
}

// SendSubmissionResponse writes the uniform {success, message} envelope.
// Failures are logged with the request logger from ctx.
func SendSubmissionResponse(ctx context.Context, w http.ResponseWriter, success bool, message string, statusCode int) {
	if !success {
		logger.FromContext(ctx).Warn("Sending failure response to client", "message", message, "statusCode", statusCode)
	}
	SendJSON(w, models.SubmissionResponse{Success: success, Message: message}, statusCode)
}

// SendJSONError is a helper function to send JSON formatted error responses.
func SendJSONError(ctx context.Context, w http.ResponseWriter, message string, statusCode int) {
	logger.FromContext(ctx).Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	SendJSON(w, map[string]string{"error": message}, statusCode)
}
