package vehicle

import (
	"regexp"
	"strings"
)

// UK registration mark formats, matched against the normalized mark.
var platePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{3}$`), // current, AB12CDE
	regexp.MustCompile(`^[A-Z][0-9]{1,3}[A-Z]{3}$`),  // prefix, A123BCD
	regexp.MustCompile(`^[A-Z]{3}[0-9]{1,3}[A-Z]$`),  // suffix, ABC123D
	regexp.MustCompile(`^[0-9]{1,4}[A-Z]{1,3}$`),     // dateless, 1234AB
	regexp.MustCompile(`^[A-Z]{1,3}[0-9]{1,4}$`),     // dateless, ABC1234
	regexp.MustCompile(`^[A-Z]{1,2}Z[0-9]{1,4}$`),    // Northern Ireland, ABZ1234
}

// NormalizeRegistration upper-cases a mark and removes all whitespace.
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), ""))
}

// ValidRegistration reports whether reg, once normalized, is a UK mark.
func ValidRegistration(reg string) bool {
	n := NormalizeRegistration(reg)
	if n == "" || len(n) > 8 {
		return false
	}
	for _, p := range platePatterns {
		if p.MatchString(n) {
			return true
		}
	}
	return false
}
