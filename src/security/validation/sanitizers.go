// src/security/validation/sanitizers.go
package validation

import (
	"strings"
)

// StripControl removes a leading byte order mark and C0 control characters other than tab,
// carriage return and line feed. Format characters such as zero-width joiners are kept; they
// are part of how many names are spelled.
func StripControl(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\r' && r != '\n' {
			return -1 // Drop the rune
		}
		return r
	}, s)
}
