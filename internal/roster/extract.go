package roster

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/roster-cli/internal/config"
	"github.com/sells-group/roster-cli/internal/contact"
	"github.com/sells-group/roster-cli/internal/fetcher"
	"github.com/sells-group/roster-cli/internal/model"
)

// Result is one chamber's extracted roster.
type Result struct {
	Chamber config.ChamberConfig
	Members []model.Member
	Issues  []model.Issue
}

// DistrictOfficeCount returns the number of district offices across all
// members.
func (r *Result) DistrictOfficeCount() int {
	n := 0
	for _, m := range r.Members {
		n += len(m.DistrictOffices)
	}
	return n
}

// Extractor runs the fetch, row iteration, and record assembly for one
// chamber through its Layout.
type Extractor struct {
	chamber config.ChamberConfig
	layout  Layout
	fetcher fetcher.Fetcher
	strict  bool
}

// NewExtractor creates an Extractor. With strict set, the first unparsable
// office-text block aborts the chamber instead of producing an Issue.
func NewExtractor(chamber config.ChamberConfig, layout Layout, f fetcher.Fetcher, strict bool) *Extractor {
	return &Extractor{chamber: chamber, layout: layout, fetcher: f, strict: strict}
}

// NewExtractors builds an extractor for every chamber using the layouts in reg.
func NewExtractors(reg *Registry, chambers []config.ChamberConfig, f fetcher.Fetcher, strict bool) ([]*Extractor, error) {
	out := make([]*Extractor, 0, len(chambers))
	for _, ch := range chambers {
		layout, err := reg.Layout(ch.Layout, ch.Selectors)
		if err != nil {
			return nil, eris.Wrapf(err, "roster: chamber %s", ch.Name)
		}
		out = append(out, NewExtractor(ch, layout, f, strict))
	}
	return out, nil
}

// Chamber returns the chamber this extractor reads.
func (e *Extractor) Chamber() config.ChamberConfig { return e.chamber }

// Extract fetches the chamber's roster page and parses it.
func (e *Extractor) Extract(ctx context.Context) (*Result, error) {
	log := zap.L().With(zap.String("chamber", e.chamber.Name))
	log.Info("fetching roster", zap.String("url", e.chamber.URL))

	page, err := e.fetcher.Fetch(ctx, e.chamber.URL)
	if err != nil {
		log.Error("roster fetch failed",
			zap.Bool("timeout", fetcher.IsTimeout(err)),
			zap.Bool("transient", fetcher.IsTransient(err)),
			zap.Error(err),
		)
		return nil, eris.Wrapf(err, "roster: %s", e.chamber.Name)
	}

	return e.Parse(bytes.NewReader(page.Body))
}

// Parse extracts members from an HTML document.
func (e *Extractor) Parse(r io.Reader) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrapf(err, "roster: %s: parse html", e.chamber.Name)
	}
	return e.ParseDocument(doc)
}

// ParseDocument extracts one member per roster row in document order. A
// missing required field aborts the whole chamber.
func (e *Extractor) ParseDocument(doc *goquery.Document) (*Result, error) {
	log := zap.L().With(zap.String("chamber", e.chamber.Name))

	rows, err := e.layout.Rows(doc)
	if err != nil {
		return nil, e.structural(-1, err)
	}

	result := &Result{
		Chamber: e.chamber,
		Members: make([]model.Member, 0, rows.Length()),
	}
	for i := range rows.Nodes {
		member, issues, err := e.member(i, rows.Eq(i))
		if err != nil {
			return nil, err
		}
		for _, issue := range issues {
			log.Warn("unparsable office text",
				zap.Int("row", issue.Row),
				zap.String("member", issue.Member),
				zap.String("field", issue.Field),
				zap.String("text", issue.Text),
			)
		}
		result.Members = append(result.Members, member)
		result.Issues = append(result.Issues, issues...)
	}

	log.Info("roster parsed",
		zap.Int("members", len(result.Members)),
		zap.Int("district_offices", result.DistrictOfficeCount()),
		zap.Int("issues", len(result.Issues)),
	)
	return result, nil
}

func (e *Extractor) member(i int, row *goquery.Selection) (model.Member, []model.Issue, error) {
	var m model.Member
	var err error

	if m.Name, m.Party, err = e.nameParty(row); err != nil {
		return m, nil, e.structural(i, err)
	}
	if m.District, err = e.layout.District(row); err != nil {
		return m, nil, e.structural(i, err)
	}
	if m.Homepage, err = e.layout.Homepage(row); err != nil {
		return m, nil, e.structural(i, err)
	}
	if m.CapitolOfficeRaw, err = e.layout.CapitolOffice(row); err != nil {
		return m, nil, e.structural(i, err)
	}
	rawOffices, err := e.layout.DistrictOffices(row)
	if err != nil {
		return m, nil, e.structural(i, err)
	}

	var issues []model.Issue
	capitol, perr := contact.ParseOffice(m.CapitolOfficeRaw)
	if perr != nil {
		if e.strict {
			return m, nil, e.addressFailure(i, m.Name, model.IssueFieldCapitolOffice, perr)
		}
		issues = append(issues, e.issue(i, m.Name, model.IssueFieldCapitolOffice, perr))
	}
	m.CapitolMail, m.CapitolPhone = capitol.Mail, capitol.Phone

	offices, failures := contact.BuildDistrictOffices(rawOffices)
	for _, f := range failures {
		field := model.DistrictOfficeIssueField(f.Index)
		if e.strict {
			return m, nil, e.addressFailure(i, m.Name, field, f.Err)
		}
		issues = append(issues, e.issue(i, m.Name, field, f.Err))
	}
	m.DistrictOffices = offices

	return m, issues, nil
}

func (e *Extractor) nameParty(row *goquery.Selection) (string, *string, error) {
	if r, ok := e.layout.(NamePartyReader); ok {
		return r.NameParty(row)
	}
	name, err := e.layout.Name(row)
	if err != nil {
		return "", nil, err
	}
	party, err := e.layout.Party(row)
	if err != nil {
		return "", nil, err
	}
	return name, party, nil
}

// structural stamps the chamber and row onto a layout's missing-field error.
func (e *Extractor) structural(row int, err error) error {
	var spe *StructuralParseError
	if errors.As(err, &spe) {
		out := *spe
		out.Chamber = e.chamber.Name
		out.Row = row
		return &out
	}
	return eris.Wrapf(err, "roster: %s: row %d", e.chamber.Name, row)
}

func (e *Extractor) issue(row int, member, field string, err *contact.AddressParseError) model.Issue {
	return model.Issue{
		Chamber: e.chamber.Name,
		Row:     row,
		Member:  member,
		Field:   field,
		Text:    err.Text,
		Reason:  err.Error(),
	}
}

func (e *Extractor) addressFailure(row int, member, field string, err *contact.AddressParseError) error {
	return eris.Wrapf(err, "roster: %s: row %d (%s): %s", e.chamber.Name, row, member, field)
}
