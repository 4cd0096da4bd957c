// src/models/record.go
package models

// Canonical field names recognised in submitted text blocks.
const (
	FieldName        = "Name"
	FieldEmail       = "Email"
	FieldCashInput   = "Cash Input"
	FieldInvestment  = "Investment"
	FieldInvestments = "Investments"
	FieldGains       = "Gains"
	FieldTotal       = "Total"
	FieldAbsolute    = "Absolute"
	FieldXIRR        = "XIRR"
	FieldAddedBy     = "Added_By"
)

// Ledger tab names.
const (
	SheetInside  = "Inside"
	SheetOutside = "Outside"
)

// Placeholder marks an Outside cell as not applicable when no outside data was submitted.
const Placeholder = "-"

// KnownFields is the vocabulary accepted as bare labels by the field parser.
var KnownFields = []string{
	FieldCashInput, FieldInvestment, FieldInvestments, FieldGains, FieldTotal,
	FieldAbsolute, FieldXIRR, FieldName, FieldEmail,
}

// FieldMap maps a field name to the raw string value found in a text block.
type FieldMap map[string]string

// Get returns the value stored under key, or "" when absent.
func (m FieldMap) Get(key string) string {
	return m[key]
}

// Lookup reports whether key is present, even with an empty value.
func (m FieldMap) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Clone returns a shallow copy that is safe to mutate. A nil map clones to an empty one.
func (m FieldMap) Clone() FieldMap {
	out := make(FieldMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// InsideRecord is one row of the Inside tab, in InsideHeaders order.
type InsideRecord [9]string

// OutsideRecord is one row of the Outside tab, in OutsideHeaders order.
type OutsideRecord [8]string

// Cells returns the record as a slice ready for appending.
func (r InsideRecord) Cells() []string {
	return append([]string(nil), r[:]...)
}

// Cells returns the record as a slice ready for appending.
func (r OutsideRecord) Cells() []string {
	return append([]string(nil), r[:]...)
}

// InsideHeaders is the header row of the Inside tab.
var InsideHeaders = []string{
	FieldName, FieldEmail, FieldCashInput, FieldInvestment, FieldGains,
	FieldTotal, FieldAbsolute, FieldXIRR, FieldAddedBy,
}

// OutsideHeaders is the header row of the Outside tab.
var OutsideHeaders = []string{
	FieldName, FieldEmail, FieldInvestments, FieldGains,
	FieldTotal, FieldAbsolute, FieldXIRR, FieldAddedBy,
}

// SheetSchema names a ledger tab and the header row it is created with.
type SheetSchema struct {
	Name    string
	Headers []string
}

// DefaultSheetSchemas returns the Inside and Outside tab schemas, Inside first.
func DefaultSheetSchemas() []SheetSchema {
	return []SheetSchema{
		{Name: SheetInside, Headers: append([]string(nil), InsideHeaders...)},
		{Name: SheetOutside, Headers: append([]string(nil), OutsideHeaders...)},
	}
}
