package roster

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/roster-cli/internal/config"
)

// Layout reads one chamber's roster markup. Rows locates the member rows;
// the remaining accessors read one field from a single row and return a
// *StructuralParseError when the field's container is absent.
type Layout interface {
	Rows(doc *goquery.Document) (*goquery.Selection, error)
	Name(row *goquery.Selection) (string, error)
	// Party returns nil when the row carries no party annotation and the
	// layout treats party as optional.
	Party(row *goquery.Selection) (*string, error)
	District(row *goquery.Selection) (string, error)
	Homepage(row *goquery.Selection) (string, error)
	CapitolOffice(row *goquery.Selection) (string, error)
	// DistrictOffices returns the raw office-text blocks in page order. A
	// member without district offices yields an empty slice.
	DistrictOffices(row *goquery.Selection) ([]string, error)
}

// NamePartyReader is implemented by layouts that read name and party from
// the same field. The extractor then reads both with one call.
type NamePartyReader interface {
	NameParty(row *goquery.Selection) (string, *string, error)
}

// LayoutFactory builds a Layout from a chamber's selectors.
type LayoutFactory func(sel config.Selectors) (Layout, error)

// Registry maps layout names to their factories.
type Registry struct {
	factories map[string]LayoutFactory
	order     []string // insertion order for deterministic iteration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]LayoutFactory),
	}
}

// DefaultRegistry returns a registry with the senate and assembly layouts.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(config.Senate, NewSenateLayout)
	r.Register(config.Assembly, NewAssemblyLayout)
	return r
}

// Register adds a layout factory under name, replacing any existing one.
func (r *Registry) Register(name string, f LayoutFactory) {
	if _, ok := r.factories[name]; !ok {
		r.order = append(r.order, name)
	}
	r.factories[name] = f
}

// Layout builds the named layout from sel.
func (r *Registry) Layout(name string, sel config.Selectors) (Layout, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, eris.Errorf("roster: unknown layout %q (valid: %v)", name, r.order)
	}
	return f(sel)
}

// Names returns all registered layout names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// requireSelectors returns an error naming the first empty selector.
func requireSelectors(layout string, pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return eris.Errorf("roster: %s layout requires selectors.%s", layout, pairs[i])
		}
	}
	return nil
}

// locateRows finds the roster container and the rows within it.
func locateRows(doc *goquery.Document, rosterSel, rowSel string) (*goquery.Selection, error) {
	roster := doc.Find(rosterSel).First()
	if roster.Length() == 0 {
		return nil, missing("roster", rosterSel)
	}
	rows := roster.Find(rowSel)
	if rows.Length() == 0 {
		return nil, missing("rows", rowSel)
	}
	return rows, nil
}

// firstGroup keeps only the rows that share a parent with the first row, so
// a later table or a nested one inside a member cell adds no rows.
func firstGroup(rows *goquery.Selection) *goquery.Selection {
	parent := rows.First().Parent()
	return rows.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Parent().IsSelection(parent)
	})
}
