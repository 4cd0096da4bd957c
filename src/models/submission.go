// src/models/submission.go
package models

// SubmissionRequest is the JSON payload posted by the intake form.
type SubmissionRequest struct {
	UserName    string  `json:"userName" validate:"required"`
	ClientName  string  `json:"clientName" validate:"required"`
	ClientEmail string  `json:"clientEmail" validate:"required"`
	InsideText  string  `json:"insideText"`
	OutsideText *string `json:"outsideText,omitempty"` // nil when the form omitted it
}

// SubmissionResponse is the uniform reply for every submission outcome.
type SubmissionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmissionResult describes the rows written for a successful submission.
type SubmissionResult struct {
	ClientName string
	Inside     InsideRecord
	Outside    OutsideRecord
}
