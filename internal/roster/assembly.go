package roster

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/roster-cli/internal/config"
	"github.com/sells-group/roster-cli/internal/contact"
)

// AssemblyLayout reads a table roster with one <tr> per member. Party and
// district have dedicated cells; the office cell holds the capitol office
// after its first <h3> and the district offices in its first <p>.
type AssemblyLayout struct {
	sel config.Selectors
}

// NewAssemblyLayout builds an AssemblyLayout from sel. The office cell
// selector is sel.CapitolOffice; sel.DistrictOffice overrides it for
// district offices when set.
func NewAssemblyLayout(sel config.Selectors) (Layout, error) {
	if err := requireSelectors(config.Assembly,
		"roster", sel.Roster,
		"row", sel.Row,
		"name", sel.Name,
		"party", sel.Party,
		"district", sel.District,
		"capitol_office", sel.CapitolOffice,
	); err != nil {
		return nil, err
	}
	return &AssemblyLayout{sel: sel}, nil
}

// Rows returns the member rows of the first table body in the roster.
func (l *AssemblyLayout) Rows(doc *goquery.Document) (*goquery.Selection, error) {
	rows, err := locateRows(doc, l.sel.Roster, l.sel.Row)
	if err != nil {
		return nil, err
	}
	return firstGroup(rows), nil
}

func (l *AssemblyLayout) nameLink(row *goquery.Selection) *goquery.Selection {
	return row.Find(l.sel.Name).First().Find("a").First()
}

// Name returns the text of the name cell's link.
func (l *AssemblyLayout) Name(row *goquery.Selection) (string, error) {
	name := contact.Normalize(l.nameLink(row).Text())
	if name == "" {
		return "", missing("name", l.sel.Name+" a")
	}
	return name, nil
}

// Homepage returns the href of the name cell's link.
func (l *AssemblyLayout) Homepage(row *goquery.Selection) (string, error) {
	href, ok := l.nameLink(row).Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", missing("homepage", l.sel.Name+" a[href]")
	}
	return strings.TrimSpace(href), nil
}

// Party returns the trimmed text of the party cell. The cell is required.
func (l *AssemblyLayout) Party(row *goquery.Selection) (*string, error) {
	party := contact.Normalize(row.Find(l.sel.Party).First().Text())
	if party == "" {
		return nil, missing("party", l.sel.Party)
	}
	return &party, nil
}

// District returns the trimmed text of the district cell.
func (l *AssemblyLayout) District(row *goquery.Selection) (string, error) {
	district := contact.Normalize(row.Find(l.sel.District).First().Text())
	if district == "" {
		return "", missing("district", l.sel.District)
	}
	return district, nil
}

// CapitolOffice returns the trimmed node that follows the office cell's
// first heading.
func (l *AssemblyLayout) CapitolOffice(row *goquery.Selection) (string, error) {
	office := row.Find(l.sel.CapitolOffice).First()
	if office.Length() == 0 {
		return "", missing("office", l.sel.CapitolOffice)
	}
	text := strings.TrimSpace(nextSiblingText(office.Find("h3").First()))
	if text == "" {
		return "", missing("capitol_office", l.sel.CapitolOffice+" h3 + *")
	}
	return text, nil
}

// DistrictOffices returns every other text string of the office cell's
// first paragraph, starting with the first. The strings in between are the
// per-office separators. Blank picks are dropped.
func (l *AssemblyLayout) DistrictOffices(row *goquery.Selection) ([]string, error) {
	selector := l.sel.DistrictOffice
	if selector == "" {
		selector = l.sel.CapitolOffice
	}
	office := row.Find(selector).First()
	if office.Length() == 0 {
		return nil, missing("office", selector)
	}

	strs := textNodes(office.Find("p").First())
	var out []string
	for i := 0; i < len(strs); i += 2 {
		if strings.TrimSpace(strs[i]) == "" {
			continue
		}
		out = append(out, strs[i])
	}
	return out, nil
}
