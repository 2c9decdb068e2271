package roster

import "fmt"

// StructuralParseError reports a roster whose markup lacks a required
// container or field. Row is the 0-based member row, or -1 when the roster
// itself could not be located.
type StructuralParseError struct {
	Chamber  string
	Row      int
	Field    string
	Selector string
}

func (e *StructuralParseError) Error() string {
	where := "roster"
	if e.Row >= 0 {
		where = fmt.Sprintf("row %d", e.Row)
	}
	msg := fmt.Sprintf("roster: %s: %s: missing %s", e.Chamber, where, e.Field)
	if e.Selector != "" {
		msg += fmt.Sprintf(" (selector %q)", e.Selector)
	}
	return msg
}

// missing builds the error a Layout returns for an absent field. The
// extractor fills in the chamber and row.
func missing(field, selector string) error {
	return &StructuralParseError{Row: -1, Field: field, Selector: selector}
}
