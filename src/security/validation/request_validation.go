package validation

import (
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/username/clientledger/src/logger"
	"github.com/username/clientledger/src/models"
)

// ErrValidationFailed is wrapped by every request validation error.
var ErrValidationFailed = errors.New("validation failed")

// AllowedClientContentTypes lists the request media types accepted by the JSON endpoints.
var AllowedClientContentTypes = map[string]bool{
	"application/json": true,
	"text/plain":       false, // browsers send this for no-cors form posts; reject explicitly
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names so messages match the payload the client sent.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateClientContentType checks the Content-Type header provided by the client.
// An empty header is accepted; parameters such as charset are ignored.
func ValidateClientContentType(contentType string) error {
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: malformed Content-Type '%s'", ErrValidationFailed, contentType)
	}
	if allowed, exists := AllowedClientContentTypes[strings.ToLower(mediaType)]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("%w: Content-Type '%s' is not allowed", ErrValidationFailed, contentType)
	}
	return nil
}

// ValidateSubmission checks that the identity fields are present. The returned error
// wraps ErrValidationFailed and names the missing fields.
func ValidateSubmission(req *models.SubmissionRequest) error {
	// Check a stripped copy so a value made only of control characters counts as missing,
	// while req itself keeps the values exactly as submitted.
	checked := *req
	checked.UserName = StripControl(req.UserName)
	checked.ClientName = StripControl(req.ClientName)
	checked.ClientEmail = StripControl(req.ClientEmail)

	err := structValidator().Struct(&checked)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("%w: missing %s", ErrValidationFailed, strings.Join(missing, ", "))
}

// SanitizeSubmission strips control characters from the text blocks in place. Identity
// fields are written to the ledger as submitted and are left alone.
func SanitizeSubmission(req *models.SubmissionRequest) {
	req.InsideText = StripControl(req.InsideText)
	if req.OutsideText != nil {
		cleaned := StripControl(*req.OutsideText)
		req.OutsideText = &cleaned
	}
}
