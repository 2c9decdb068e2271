package roster

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/roster-cli/internal/config"
)

const senateFixture = `<!DOCTYPE html>
<html><body>
<div class="view view-senator-roster">
 <div class="view-content">
  <div class="views-row views-row-1">
   <div class="views-field views-field-field-senator-last-name"><span class="field-content">Atkins, Toni G. (D)</span></div>
   <div class="views-field views-field-field-senator-district"><div class="field-content"><span>District</span> <span>39</span></div></div>
   <div class="views-field views-field-field-senator-weburl"><div class="field-content"><a href="http://sd39.senate.ca.gov/">Homepage</a></div></div>
   <div class="views-field views-field-field-senator-capitol-office"><div class="field-content"><p>State Capitol, Room 205; (916) 651-4039</p></div></div>
   <div class="views-field views-field-field-senator-district-office"><div class="field-content"><p>1350 Front Street, Suite 4061; (619) 645-3133<br />
    750 B Street, Suite 1150 (619) 6453133</p></div></div>
  </div>
  <div class="views-row views-row-2">
   <div class="views-field views-field-field-senator-last-name"><span class="field-content">Vacant, Seat</span></div>
   <div class="views-field views-field-field-senator-district"><div class="field-content"><span>District</span><span>5</span></div></div>
   <div class="views-field views-field-field-senator-weburl"><div class="field-content"><a href="http://sd05.senate.ca.gov/">Homepage</a></div></div>
   <div class="views-field views-field-field-senator-capitol-office"><div class="field-content"><p>State Capitol, Room 3070; (916) 651-4005</p></div></div>
   <div class="views-field views-field-field-senator-district-office"><div class="field-content"></div></div>
  </div>
  <div class="views-row views-row-3">
   <div class="views-field views-field-field-senator-last-name"><span class="field-content">Beall, Jim (D)</span></div>
   <div class="views-field views-field-field-senator-district"><div class="field-content"><span>District</span><span>15</span></div></div>
   <div class="views-field views-field-field-senator-weburl"><div class="field-content"><a href="http://sd15.senate.ca.gov/">Homepage</a></div></div>
   <div class="views-field views-field-field-senator-capitol-office"><div class="field-content"><p>State&nbsp;Capitol,&nbsp;Room 5066; (916)&nbsp;651-4015<br />Fax (916) 651-4915</p></div></div>
   <div class="views-field views-field-field-senator-district-office"><div class="field-content"><p>Office closed for renovation</p></div></div>
  </div>
 </div>
</div>
</body></html>`

const assemblyFixture = `<!DOCTYPE html>
<html><body>
<div class="view view-view-Members">
 <table>
  <thead><tr><th>Name</th><th>District</th><th>Party</th><th>Offices</th></tr></thead>
  <tbody>
   <tr class="odd">
    <td class="views-field views-field-field-member-lname-sort"><a href="https://ad01.asmrc.org/">Dahle, Brian</a></td>
    <td class="views-field views-field-field-member-district"> 01 </td>
    <td class="views-field views-field-field-member-party"> Republican </td>
    <td class="views-field views-field-field-member-office-information">
     <h3>Capitol Office</h3>
     P.O. Box 942849, Sacramento, CA 94249-0001; (916) 319-2001
     <h3>District Offices</h3>
     <p>280 Hemsted Drive, Suite 110, Redding, CA 96002; (530) 223-6300<span>, </span>2060 Talbert Drive, Suite 110, Chico, CA 95928; (530) 895-4217</p>
    </td>
   </tr>
   <tr class="even">
    <td class="views-field views-field-field-member-lname-sort"><a href="https://a02.asmdc.org/">Wood, Jim</a></td>
    <td class="views-field views-field-field-member-district">02</td>
    <td class="views-field views-field-field-member-party">Democrat</td>
    <td class="views-field views-field-field-member-office-information">
     <h3>Capitol Office</h3>
     P.O. Box 942849, Sacramento, CA 94249-0002 (916) 3192002
    </td>
   </tr>
  </tbody>
 </table>
</div>
</body></html>`

func mustDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func chamberConfig(t *testing.T, name string) config.ChamberConfig {
	t.Helper()
	cfg := &config.Config{Chambers: config.DefaultChambers()}
	ch, ok := cfg.Chamber(name)
	require.True(t, ok)
	return ch
}

func mustLayout(t *testing.T, name string) Layout {
	t.Helper()
	ch := chamberConfig(t, name)
	layout, err := DefaultRegistry().Layout(ch.Layout, ch.Selectors)
	require.NoError(t, err)
	return layout
}

func rowOf(t *testing.T, layout Layout, src string, i int) *goquery.Selection {
	t.Helper()
	rows, err := layout.Rows(mustDoc(t, src))
	require.NoError(t, err)
	require.Greater(t, rows.Length(), i)
	return rows.Eq(i)
}
