package contact

import (
	"regexp"
	"strings"
)

var namePartyRe = regexp.MustCompile(`^([^(]+) \((.+)\)`)

// SplitNameParty splits "Surname, First (Party)" into name and party. A
// string without a trailing party annotation is returned whole as the name
// with a nil party.
func SplitNameParty(s string) (name string, party *string) {
	s = Normalize(s)
	m := namePartyRe.FindStringSubmatch(s)
	if m == nil {
		return s, nil
	}
	p := m[2]
	return strings.TrimSpace(m[1]), &p
}
