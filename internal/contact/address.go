// Package contact splits free-text office blocks from legislative rosters
// into mailing addresses and phone numbers.
package contact

import (
	"fmt"
	"regexp"
	"strings"
)

// addressPhoneRe matches "<address>[;|<br />] (NNN) NNN-NNNN". The address is
// lazy so that trailing whitespace and the separator stay out of it. The
// phone must end at a non-digit or the end of the text; a longer digit run
// is not a phone.
var addressPhoneRe = regexp.MustCompile(`^([^(;]+?)\s*(?:;|<br\s*/?>)?\s*(\(\d{3}\)\s*\d{3}-?\d{4})(?:\D|$)`)

// AddressParseError reports an office-text block that does not have the
// address-then-phone shape.
type AddressParseError struct {
	Text string
}

func (e *AddressParseError) Error() string {
	return fmt.Sprintf("contact: cannot split %q into address and phone", e.Text)
}

// Normalize replaces non-breaking spaces with regular spaces and trims.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}

// ParseAddressPhone splits an office-text block into its mailing address and
// phone number. The phone keeps its written format, parenthesized area code
// included. A block without a recognizable phone returns *AddressParseError.
func ParseAddressPhone(text string) (mail, phone string, err error) {
	mail, phone, perr := parseAddressPhone(text)
	if perr != nil {
		return "", "", perr
	}
	return mail, phone, nil
}

func parseAddressPhone(text string) (string, string, *AddressParseError) {
	normalized := Normalize(text)
	m := addressPhoneRe.FindStringSubmatch(normalized)
	if m == nil {
		return "", "", &AddressParseError{Text: normalized}
	}
	mail := strings.TrimSpace(m[1])
	if mail == "" {
		return "", "", &AddressParseError{Text: normalized}
	}
	return mail, m[2], nil
}
