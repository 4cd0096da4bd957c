// src/processors/record_processor.go
package processors

import (
	"github.com/username/clientledger/src/models"
)

// recordProcessor implements the RecordProcessor interface.
type recordProcessor struct{}

// NewRecordProcessor creates a new instance of RecordProcessor.
func NewRecordProcessor() RecordProcessor {
	return &recordProcessor{}
}

// Normalize builds both ledger rows. The caller's identity always replaces any Name or
// Email found in the inside text. Neither input map is modified.
func (p *recordProcessor) Normalize(inside, outside models.FieldMap, hasOutside bool, id Identity) (models.InsideRecord, models.OutsideRecord) {
	in := inside.Clone()
	in[models.FieldName] = id.Name
	in[models.FieldEmail] = id.Email

	insideRow := models.InsideRecord{
		in.Get(models.FieldName),
		in.Get(models.FieldEmail),
		in.Get(models.FieldCashInput),
		in.Get(models.FieldInvestment),
		in.Get(models.FieldGains),
		in.Get(models.FieldTotal),
		in.Get(models.FieldAbsolute),
		in.Get(models.FieldXIRR),
		id.AddedBy,
	}

	if !hasOutside {
		return insideRow, placeholderOutside(in, id.AddedBy)
	}

	outsideRow := models.OutsideRecord{
		lookupOr(outside, models.FieldName, in.Get(models.FieldName)),
		lookupOr(outside, models.FieldEmail, in.Get(models.FieldEmail)),
		// The plural label is preferred; the singular one is accepted from free text.
		// The inside investment figure is never used here.
		lookupOr(outside, models.FieldInvestments, outside.Get(models.FieldInvestment)),
		outside.Get(models.FieldGains),
		outside.Get(models.FieldTotal),
		outside.Get(models.FieldAbsolute),
		outside.Get(models.FieldXIRR),
		id.AddedBy,
	}
	return insideRow, outsideRow
}

func placeholderOutside(in models.FieldMap, addedBy string) models.OutsideRecord {
	return models.OutsideRecord{
		in.Get(models.FieldName),
		in.Get(models.FieldEmail),
		models.Placeholder,
		models.Placeholder,
		models.Placeholder,
		models.Placeholder,
		models.Placeholder,
		addedBy,
	}
}

// lookupOr returns m[key] when the key is present, even if empty, and fallback otherwise.
func lookupOr(m models.FieldMap, key, fallback string) string {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return fallback
}
