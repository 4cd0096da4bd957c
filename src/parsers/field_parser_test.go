package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/clientledger/src/models"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.FieldMap
	}{
		{name: "empty input", text: "", want: models.FieldMap{}},
		{name: "only blank lines", text: "\n  \n\t\n", want: models.FieldMap{}},
		{name: "inline pair", text: "Cash Input: 500", want: models.FieldMap{"Cash Input": "500"}},
		{name: "label then value", text: "Gains\n120", want: models.FieldMap{"Gains": "120"}},
		{name: "label is case insensitive", text: "gains\n120", want: models.FieldMap{"Gains": "120"}},
		{name: "upper case label", text: "CASH INPUT\n1,000", want: models.FieldMap{"Cash Input": "1,000"}},
		{name: "duplicate keys keep last", text: "Total: 1\nTotal: 2", want: models.FieldMap{"Total": "2"}},
		{name: "unknown inline key kept", text: "Foo: bar", want: models.FieldMap{"Foo": "bar"}},
		{name: "unknown bare label ignored", text: "Foo\nbar", want: models.FieldMap{}},
		{name: "split on first colon only", text: "Note: 10:30 am", want: models.FieldMap{"Note": "10:30 am"}},
		{name: "inline key keeps its casing", text: "xirr: 12%", want: models.FieldMap{"xirr": "12%"}},
		{name: "trailing label without value", text: "Cash Input: 5\nXIRR", want: models.FieldMap{"Cash Input": "5"}},
		{name: "blank lines between label and value", text: "Total\n\n\n  900  \n", want: models.FieldMap{"Total": "900"}},
		{name: "colon line wins over label match", text: "Gains:\n120", want: models.FieldMap{"Gains": ""}},
		{name: "label takes next line verbatim", text: "Total\nGains: 5", want: models.FieldMap{"Total": "Gains: 5"}},
		{name: "windows line endings", text: "Cash Input: 1\r\nGains\r\n2\r\n", want: models.FieldMap{"Cash Input": "1", "Gains": "2"}},
		{
			name: "mixed conventions",
			text: "Name: Someone\nEmail\nsomeone@example.com\n\nInvestments\n2500\nrandom note\nXIRR: 11.2%",
			want: models.FieldMap{
				"Name":        "Someone",
				"Email":       "someone@example.com",
				"Investments": "2500",
				"XIRR":        "11.2%",
			},
		},
	}

	p := NewFieldParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Extract(tt.text))
		})
	}
}

func TestExtractKeysComeFromVocabularyOrColonPrefix(t *testing.T) {
	text := "alpha\nTotal\n10\nbeta: 2\nnothing here\ninvestment\n7\nGAINS"
	got := NewFieldParser().Extract(text)

	require.Len(t, got, 3)
	for key := range got {
		known := false
		for _, k := range models.KnownFields {
			if k == key {
				known = true
			}
		}
		assert.True(t, known || key == "beta", "unexpected key %q", key)
	}
	assert.Equal(t, "10", got["Total"])
	assert.Equal(t, "7", got["Investment"])
}

func TestClassify(t *testing.T) {
	p := &textFieldParser{vocabulary: models.KnownFields}

	rule, key := p.classify("Investments")
	assert.Equal(t, ruleLabel, rule)
	assert.Equal(t, "Investments", key)

	rule, _ = p.classify("Investments: 3")
	assert.Equal(t, ruleInlinePair, rule)

	rule, _ = p.classify("Investment s")
	assert.Equal(t, ruleNone, rule)
}
