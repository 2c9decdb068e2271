package config

import "strconv"

// ChamberConfig describes one roster source: where to fetch it, which
// layout strategy reads it, the CSS selectors that layout uses, and where
// the resulting JSON goes.
type ChamberConfig struct {
	Name      string    `yaml:"name" mapstructure:"name"`
	Layout    string    `yaml:"layout" mapstructure:"layout"`
	URL       string    `yaml:"url" mapstructure:"url"`
	Output    string    `yaml:"output" mapstructure:"output"`
	Selectors Selectors `yaml:"selectors" mapstructure:"selectors"`
}

// Selectors are the CSS selectors a layout uses to find the roster, its
// member rows, and each field container within a row. Which selectors are
// required depends on the layout.
type Selectors struct {
	Roster         string `yaml:"roster" mapstructure:"roster"`
	Row            string `yaml:"row" mapstructure:"row"`
	Content        string `yaml:"content,omitempty" mapstructure:"content"`
	Name           string `yaml:"name" mapstructure:"name"`
	Party          string `yaml:"party,omitempty" mapstructure:"party"`
	District       string `yaml:"district" mapstructure:"district"`
	Homepage       string `yaml:"homepage,omitempty" mapstructure:"homepage"`
	CapitolOffice  string `yaml:"capitol_office" mapstructure:"capitol_office"`
	DistrictOffice string `yaml:"district_office,omitempty" mapstructure:"district_office"`
}

// Built-in chamber and layout names.
const (
	Senate   = "senate"
	Assembly = "assembly"
)

// DefaultChambers returns the California Senate and Assembly roster
// definitions.
func DefaultChambers() []ChamberConfig {
	return []ChamberConfig{
		{
			Name:   Senate,
			Layout: Senate,
			URL:    "https://senate.ca.gov/senators",
			Output: "senators.json",
			Selectors: Selectors{
				Roster:         ".view-senator-roster",
				Row:            ".views-row",
				Content:        ".field-content",
				Name:           ".views-field-field-senator-last-name",
				District:       ".views-field-field-senator-district",
				Homepage:       ".views-field-field-senator-weburl",
				CapitolOffice:  ".views-field-field-senator-capitol-office",
				DistrictOffice: ".views-field-field-senator-district-office",
			},
		},
		{
			Name:   Assembly,
			Layout: Assembly,
			URL:    "https://assembly.ca.gov/assemblymembers",
			Output: "assembly_representatives.json",
			Selectors: Selectors{
				Roster:        ".view-view-Members",
				Row:           "table > tbody > tr",
				Name:          ".views-field-field-member-lname-sort",
				Party:         ".views-field-field-member-party",
				District:      ".views-field-field-member-district",
				CapitolOffice: ".views-field-field-member-office-information",
			},
		},
	}
}

// ApplyChamberDefaults returns the default chambers when none are
// configured. Configured chambers that share a name with a default inherit
// any field they leave empty from it, selector by selector.
func ApplyChamberDefaults(chambers []ChamberConfig) []ChamberConfig {
	defaults := DefaultChambers()
	if len(chambers) == 0 {
		return defaults
	}

	byName := make(map[string]ChamberConfig, len(defaults))
	for _, d := range defaults {
		byName[d.Name] = d
	}

	out := make([]ChamberConfig, len(chambers))
	for i, ch := range chambers {
		if d, ok := byName[ch.Name]; ok {
			ch = mergeChamber(ch, d)
		}
		out[i] = ch
	}
	return out
}

func mergeChamber(ch, d ChamberConfig) ChamberConfig {
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	ch.Layout = orDefault(ch.Layout, d.Layout)
	ch.URL = orDefault(ch.URL, d.URL)
	ch.Output = orDefault(ch.Output, d.Output)
	if ch.Layout != d.Layout {
		return ch
	}
	s, ds := &ch.Selectors, d.Selectors
	s.Roster = orDefault(s.Roster, ds.Roster)
	s.Row = orDefault(s.Row, ds.Row)
	s.Content = orDefault(s.Content, ds.Content)
	s.Name = orDefault(s.Name, ds.Name)
	s.Party = orDefault(s.Party, ds.Party)
	s.District = orDefault(s.District, ds.District)
	s.Homepage = orDefault(s.Homepage, ds.Homepage)
	s.CapitolOffice = orDefault(s.CapitolOffice, ds.CapitolOffice)
	s.DistrictOffice = orDefault(s.DistrictOffice, ds.DistrictOffice)
	return ch
}

func (ch ChamberConfig) problems() []string {
	var out []string
	if ch.Name == "" {
		out = append(out, "name is required")
	}
	if ch.Layout == "" {
		out = append(out, "layout is required")
	}
	if ch.URL == "" {
		out = append(out, "url is required")
	}
	if ch.Output == "" {
		out = append(out, "output is required")
	}
	if ch.Selectors.Roster == "" || ch.Selectors.Row == "" {
		out = append(out, "selectors.roster and selectors.row are required")
	}
	return out
}

func chamberLabel(i int, ch ChamberConfig) string {
	if ch.Name != "" {
		return "chambers." + ch.Name
	}
	return "chambers[" + strconv.Itoa(i) + "]"
}
