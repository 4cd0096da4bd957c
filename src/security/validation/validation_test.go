package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/clientledger/src/models"
)

func TestStripControl(t *testing.T) {
	assert.Equal(t, "Gains\n120", StripControl("\ufeffGains\n120"))
	assert.Equal(t, "a\tb\r\nc d", StripControl("a\tb\r\nc\u0007 d\u0000"))
	assert.Equal(t, "1\u00a0000 €", StripControl("1\u00a0000 €"))
	assert.Equal(t, "Mah\u200cnaz", StripControl("Mah\u200cnaz"), "zero-width non-joiner is kept")
	assert.Equal(t, "\U0001F469\u200d\U0001F4BB", StripControl("\U0001F469\u200d\U0001F4BB"), "zero-width joiner is kept")
	assert.Equal(t, "x\ufeff", StripControl("x\ufeff"), "only a leading byte order mark is removed")
}

func TestValidateSubmission(t *testing.T) {
	ok := &models.SubmissionRequest{UserName: "Alice", ClientName: "Bob", ClientEmail: "bob@x.com"}
	require.NoError(t, ValidateSubmission(ok))

	err := ValidateSubmission(&models.SubmissionRequest{ClientName: "Bob"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "userName")
	assert.Contains(t, err.Error(), "clientEmail")
	assert.NotContains(t, err.Error(), "clientName")
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType(""))
	assert.NoError(t, ValidateClientContentType("application/json"))
	assert.NoError(t, ValidateClientContentType("Application/JSON; charset=utf-8"))
	assert.ErrorIs(t, ValidateClientContentType("text/plain"), ErrValidationFailed)
	assert.ErrorIs(t, ValidateClientContentType("multipart/form-data; boundary=x"), ErrValidationFailed)
	assert.ErrorIs(t, ValidateClientContentType(";;"), ErrValidationFailed)
}

func TestValidateSubmissionTreatsControlOnlyValuesAsMissing(t *testing.T) {
	req := &models.SubmissionRequest{UserName: "\ufeff", ClientName: "\u0007", ClientEmail: "bob@x.com"}

	err := ValidateSubmission(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "userName")
	assert.Contains(t, err.Error(), "clientName")
	assert.Equal(t, "\ufeff", req.UserName, "request is not rewritten")
}

func TestSanitizeSubmission(t *testing.T) {
	outside := "\ufeffInvestments: 5\u0000"
	req := &models.SubmissionRequest{
		UserName:    "\ufeffAlice",
		ClientName:  "Mah\u200cnaz",
		ClientEmail: "mahnaz@x.com",
		InsideText:  "\ufeffTotal: 1\u0007",
		OutsideText: &outside,
	}

	SanitizeSubmission(req)

	assert.Equal(t, "\ufeffAlice", req.UserName, "identity fields are left alone")
	assert.Equal(t, "Mah\u200cnaz", req.ClientName)
	assert.Equal(t, "Total: 1", req.InsideText)
	require.NotNil(t, req.OutsideText)
	assert.Equal(t, "Investments: 5", *req.OutsideText)
	assert.Equal(t, "\ufeffInvestments: 5\u0000", outside, "caller's string is not modified")
}
