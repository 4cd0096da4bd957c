// src/services/submission_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/username/clientledger/src/ledger"
	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/models"
	"github.com/username/clientledger/src/parsers"
	"github.com/username/clientledger/src/processors"
	"github.com/username/clientledger/src/security/validation"
)

type submissionServiceImpl struct {
	fieldParser     parsers.FieldParser
	recordProcessor processors.RecordProcessor
	connector       ledger.Connector
	schemas         []models.SheetSchema
}

func NewSubmissionService(
	fieldParser parsers.FieldParser,
	recordProcessor processors.RecordProcessor,
	connector ledger.Connector,
) SubmissionService {
	return &submissionServiceImpl{
		fieldParser:     fieldParser,
		recordProcessor: recordProcessor,
		connector:       connector,
		schemas:         models.DefaultSheetSchemas(),
	}
}

func (s *submissionServiceImpl) Submit(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionResult, error) {
	startTime := time.Now()
	log := logger.FromContext(ctx)

	validation.SanitizeSubmission(&req)
	if err := validation.ValidateSubmission(&req); err != nil {
		return nil, err
	}
	log.Info("Submission START", "userName", req.UserName)
	log.Debug("Submission client", "clientName", req.ClientName, "clientEmail", req.ClientEmail)

	inside := s.fieldParser.Extract(req.InsideText)

	// Presence is decided on the raw text: a non-blank block that yields no fields still
	// produces an Outside row of empty cells rather than placeholders.
	hasOutside := req.OutsideText != nil && strings.TrimSpace(*req.OutsideText) != ""
	var outside models.FieldMap
	if hasOutside {
		outside = s.fieldParser.Extract(*req.OutsideText)
		outside[models.FieldName] = req.ClientName
		outside[models.FieldEmail] = req.ClientEmail
	}
	log.Debug("Fields extracted", "insideFields", len(inside), "outsideFields", len(outside), "hasOutside", hasOutside)

	insideRow, outsideRow := s.recordProcessor.Normalize(inside, outside, hasOutside, processors.Identity{
		Name:    req.ClientName,
		Email:   req.ClientEmail,
		AddedBy: req.UserName,
	})

	l, err := s.connector.Connect(ctx)
	if err != nil {
		return nil, wrapIfNot(err, ledger.ErrNotConnected)
	}

	if err := l.EnsureSheetsExist(ctx, s.schemas); err != nil {
		// A tab that really is missing makes the append below fail and get reported.
		log.Warn("Could not ensure ledger sheets exist", "error", err)
	}

	if err := l.AppendRecord(ctx, models.SheetInside, insideRow.Cells()); err != nil {
		log.Error("Error adding Inside row", "error", err)
		return nil, wrapIfNot(err, ledger.ErrAppendFailed)
	}
	if err := l.AppendRecord(ctx, models.SheetOutside, outsideRow.Cells()); err != nil {
		// No rollback: the Inside row stays without its Outside counterpart.
		log.Error("Error adding Outside row after Inside row was written", "error", err)
		return nil, wrapIfNot(err, ledger.ErrAppendFailed)
	}

	log.Info("Submission END", "userName", req.UserName, "duration", time.Since(startTime))
	return &models.SubmissionResult{
		ClientName: req.ClientName,
		Inside:     insideRow,
		Outside:    outsideRow,
	}, nil
}

// wrapIfNot makes sure err matches sentinel, for connectors that return bare errors.
func wrapIfNot(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
