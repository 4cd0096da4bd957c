package parsers

import (
	"github.com/username/clientledger/src/models"
)

// FieldParser turns a free-text block into a field mapping.
// Implementations never fail: unrecognised lines are dropped.
type FieldParser interface {
	Extract(text string) models.FieldMap
}
