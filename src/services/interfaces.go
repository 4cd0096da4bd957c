package services

import (
	"context"

	"github.com/username/clientledger/src/models"
)

// SubmissionService turns one intake form submission into Inside and Outside ledger rows.
type SubmissionService interface {
	// Submit validates req, builds both rows and appends Inside then Outside.
	// Errors wrap validation.ErrValidationFailed, ledger.ErrNotConnected or
	// ledger.ErrAppendFailed.
	Submit(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionResult, error)
}
