package roster

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/roster-cli/internal/config"
	"github.com/sells-group/roster-cli/internal/contact"
)

// SenateLayout reads a Drupal views roster where each member is a
// ".views-row" block and each field wraps its value in a content element.
// Name and party share one "Surname, First (Party)" string.
type SenateLayout struct {
	sel config.Selectors
}

// NewSenateLayout builds a SenateLayout from sel.
func NewSenateLayout(sel config.Selectors) (Layout, error) {
	if err := requireSelectors(config.Senate,
		"roster", sel.Roster,
		"row", sel.Row,
		"content", sel.Content,
		"name", sel.Name,
		"district", sel.District,
		"homepage", sel.Homepage,
		"capitol_office", sel.CapitolOffice,
		"district_office", sel.DistrictOffice,
	); err != nil {
		return nil, err
	}
	return &SenateLayout{sel: sel}, nil
}

// Rows returns the member rows of the roster container.
func (l *SenateLayout) Rows(doc *goquery.Document) (*goquery.Selection, error) {
	return locateRows(doc, l.sel.Roster, l.sel.Row)
}

// NameParty splits the name field into the member name and the
// parenthesized party, which is nil when absent.
func (l *SenateLayout) NameParty(row *goquery.Selection) (string, *string, error) {
	content := row.Find(l.sel.Name).First().Find(l.sel.Content).First()
	if content.Length() == 0 {
		return "", nil, missing("name", l.sel.Name+" "+l.sel.Content)
	}
	raw := strings.TrimSpace(content.Text())
	if raw == "" {
		return "", nil, missing("name", l.sel.Name+" "+l.sel.Content)
	}
	name, party := contact.SplitNameParty(raw)
	return name, party, nil
}

// Name returns the member name with any party annotation removed.
func (l *SenateLayout) Name(row *goquery.Selection) (string, error) {
	name, _, err := l.NameParty(row)
	return name, err
}

// Party returns the parenthesized party of the name string, or nil.
func (l *SenateLayout) Party(row *goquery.Selection) (*string, error) {
	_, party, err := l.NameParty(row)
	return party, err
}

// District returns the second string of the district field; the first is
// its label.
func (l *SenateLayout) District(row *goquery.Selection) (string, error) {
	content := row.Find(l.sel.District).First().Find(l.sel.Content).First()
	strs := strippedStrings(content)
	if len(strs) < 2 {
		return "", missing("district", l.sel.District+" "+l.sel.Content)
	}
	return strs[1], nil
}

// Homepage returns the href of the first link in the homepage field.
func (l *SenateLayout) Homepage(row *goquery.Selection) (string, error) {
	href, ok := row.Find(l.sel.Homepage).First().Find("a[href]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", missing("homepage", l.sel.Homepage+" a[href]")
	}
	return strings.TrimSpace(href), nil
}

// CapitolOffice returns the first node of the capitol field's paragraph.
func (l *SenateLayout) CapitolOffice(row *goquery.Selection) (string, error) {
	p := row.Find(l.sel.CapitolOffice).First().Find("p").First()
	text := firstChildText(p)
	if strings.TrimSpace(text) == "" {
		return "", missing("capitol_office", l.sel.CapitolOffice+" p")
	}
	return text, nil
}

// DistrictOffices returns each stripped string of the district office
// paragraph as one office. The field itself is required; a field without a
// paragraph means the member lists no district office.
func (l *SenateLayout) DistrictOffices(row *goquery.Selection) ([]string, error) {
	field := row.Find(l.sel.DistrictOffice).First()
	if field.Length() == 0 {
		return nil, missing("district_office", l.sel.DistrictOffice)
	}
	return strippedStrings(field.Find("p").First()), nil
}
