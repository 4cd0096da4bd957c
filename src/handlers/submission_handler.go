// src/handlers/submission_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/models"
	"github.com/username/clientledger/src/security/validation"
	"github.com/username/clientledger/src/services"
	"github.com/username/clientledger/src/utils"
)

// Messages returned to the intake form.
const (
	msgMissingFields   = "Missing required fields"
	msgInvalidBody     = "Invalid request body"
	msgNotConnected    = "Could not connect to the ledger"
	msgAppendFailed    = "Failed to add data to the ledger"
	msgInternalFailure = "An internal error occurred while adding the client. Please try again later."
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
	maxBodyBytes      int64
}

func NewSubmissionHandler(service services.SubmissionService, maxBodyBytes int64) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: service,
		maxBodyBytes:      maxBodyBytes,
	}
}

func (h *SubmissionHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := validation.ValidateClientContentType(r.Header.Get("Content-Type")); err != nil {
		log.Warn("Invalid client-declared content type", "error", err)
		utils.SendSubmissionResponse(r.Context(), w, false, msgInvalidBody, http.StatusUnsupportedMediaType)
		return
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	var req models.SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Failed to decode submission body", "error", err)
		utils.SendSubmissionResponse(r.Context(), w, false, msgInvalidBody, http.StatusBadRequest)
		return
	}

	result, err := h.submissionService.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrValidationFailed):
			log.Warn("Submission rejected", "error", err)
			utils.SendSubmissionResponse(r.Context(), w, false, msgMissingFields, http.StatusBadRequest)
		case errors.Is(err, ledger.ErrNotConnected):
			log.Error("Ledger connection failed", "error", err)
			utils.SendSubmissionResponse(r.Context(), w, false, msgNotConnected, http.StatusServiceUnavailable)
		case errors.Is(err, ledger.ErrAppendFailed):
			log.Error("Ledger append failed", "error", err)
			utils.SendSubmissionResponse(r.Context(), w, false, msgAppendFailed, http.StatusBadGateway)
		default:
			log.Error("Internal error processing submission", "error", err)
			utils.SendSubmissionResponse(r.Context(), w, false, msgInternalFailure, http.StatusInternalServerError)
		}
		return
	}

	utils.SendSubmissionResponse(r.Context(), w, true, fmt.Sprintf("Successfully added %s", result.ClientName), http.StatusOK)
}
