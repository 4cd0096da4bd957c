// src/parsers/field_parser.go
package parsers

import (
	"strings"

	"github.com/username/clientledger/src/models"
)

// lineRule tags how a single trimmed line is interpreted.
type lineRule int

const (
	ruleNone       lineRule = iota // line carries nothing
	ruleInlinePair                 // "Key: Value" on one line
	ruleLabel                      // bare known label, value on the next line
)

type textFieldParser struct {
	vocabulary []string
}

// NewFieldParser returns a parser recognising the standard field vocabulary.
func NewFieldParser() FieldParser {
	return &textFieldParser{vocabulary: models.KnownFields}
}

// Extract parses text line by line. "Key: Value" lines are always recorded, whatever the
// key; a bare label is only recognised for the known vocabulary and takes the following
// line as its value. Later occurrences of a key overwrite earlier ones.
func (p *textFieldParser) Extract(text string) models.FieldMap {
	fields := make(models.FieldMap)
	lines := splitLines(text)

	for i := 0; i < len(lines); {
		rule, key := p.classify(lines[i])
		switch rule {
		case ruleInlinePair:
			k, v, _ := strings.Cut(lines[i], ":")
			fields[strings.TrimSpace(k)] = strings.TrimSpace(v)
			i++
		case ruleLabel:
			if i+1 < len(lines) {
				fields[key] = lines[i+1]
				i += 2
			} else {
				i++
			}
		default:
			i++
		}
	}
	return fields
}

// classify picks the rule for a line. The colon form always wins over a label match.
// For ruleLabel the canonical vocabulary key is returned alongside.
func (p *textFieldParser) classify(line string) (lineRule, string) {
	if strings.Contains(line, ":") {
		return ruleInlinePair, ""
	}
	if key, ok := p.canonicalKey(line); ok {
		return ruleLabel, key
	}
	return ruleNone, ""
}

func (p *textFieldParser) canonicalKey(label string) (string, bool) {
	for _, k := range p.vocabulary {
		if strings.EqualFold(k, label) {
			return k, true
		}
	}
	return "", false
}

// splitLines returns the trimmed, non-blank lines of text.
func splitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
