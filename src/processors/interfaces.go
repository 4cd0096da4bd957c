package processors

import (
	"github.com/username/clientledger/src/models"
)

// Identity is the caller-supplied client identity and the submitting user.
type Identity struct {
	Name    string
	Email   string
	AddedBy string
}

// RecordProcessor derives the Inside and Outside ledger rows from extracted fields.
// When hasOutside is false the outside mapping is ignored and the Outside row is filled
// with placeholders.
type RecordProcessor interface {
	Normalize(inside, outside models.FieldMap, hasOutside bool, id Identity) (models.InsideRecord, models.OutsideRecord)
}
