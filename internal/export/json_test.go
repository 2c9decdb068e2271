package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/roster-cli/internal/model"
)

func TestWriteMembers_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "senators.json")
	members := []model.Member{{
		Name:             "Smith & Jones, Pat",
		Party:            model.Ptr("D"),
		District:         "1",
		Homepage:         "http://sd01.senate.ca.gov/?a=1&b=2",
		CapitolOfficeRaw: "State Capitol, Room 1; (916) 651-4001",
		CapitolMail:      model.Ptr("State Capitol, Room 1"),
		CapitolPhone:     model.Ptr("(916) 651-4001"),
		DistrictOffices: []model.Office{
			{Raw: "Closed"},
		},
	}}

	require.NoError(t, WriteMembers(path, members))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
    {
        "name": "Smith & Jones, Pat",
        "party": "D",
        "district": "1",
        "homepage": "http://sd01.senate.ca.gov/?a=1&b=2",
        "capitol_office_raw": "State Capitol, Room 1; (916) 651-4001",
        "capitol_mail": "State Capitol, Room 1",
        "capitol_phone": "(916) 651-4001",
        "district_office_0_raw": "Closed",
        "district_mail_0": null,
        "district_phone_0": null
    }
]
`
	assert.Equal(t, want, string(data))
}

func TestWriteMembers_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, WriteMembers(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteJSON_ReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, WriteJSON(path, []string{"a"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[\n    \"a\"\n]\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteJSON_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "out.json")
	require.NoError(t, WriteJSON(path, map[string]int{"n": 1}))
	assert.FileExists(t, path)
}

func TestWriteJSON_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteJSON(filepath.Join(blocker, "out.json"), []string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export: mkdir")
}

func TestIssuesPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"senators.json", "senators.issues.json"},
		{"out/assembly_representatives.json", "out/assembly_representatives.issues.json"},
		{"roster", "roster.issues.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IssuesPath(tt.in), tt.in)
	}
}

func TestWriteIssues(t *testing.T) {
	output := filepath.Join(t.TempDir(), "senators.json")
	issues := []model.Issue{{
		Chamber: "senate",
		Row:     2,
		Member:  "Beall, Jim",
		Field:   "district_office_0",
		Text:    "Office closed for renovation",
		Reason:  "cannot split",
	}}

	path, err := WriteIssues(output, issues)
	require.NoError(t, err)
	assert.Equal(t, IssuesPath(output), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []model.Issue
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, issues, got)
}

func TestWriteIssues_RemovesStaleReport(t *testing.T) {
	output := filepath.Join(t.TempDir(), "senators.json")
	stale := IssuesPath(output)
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0o644))

	path, err := WriteIssues(output, nil)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NoFileExists(t, stale)

	// Nothing to remove is not an error.
	_, err = WriteIssues(output, nil)
	require.NoError(t, err)
}

func TestBatch_StageFailureLeavesTargetsUntouched(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "senators.json")
	require.NoError(t, os.WriteFile(first, []byte("old"), 0o644))
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	var b Batch
	require.NoError(t, b.StageMembers(first, nil))
	err := b.StageMembers(filepath.Join(blocker, "assembly.json"), nil)
	require.Error(t, err)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "staged temp file removed")
}

func TestBatch_CommitPublishesAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	c := filepath.Join(dir, "c.json")
	stale := IssuesPath(c)
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0o644))

	var b Batch
	require.NoError(t, b.Stage(a, []int{1}))
	path, err := b.StageIssues(a, []model.Issue{{Chamber: "senate"}})
	require.NoError(t, err)
	assert.Equal(t, IssuesPath(a), path)
	require.NoError(t, b.Stage(c, []int{2}))
	_, err = b.StageIssues(c, nil)
	require.NoError(t, err)

	assert.NoFileExists(t, a, "nothing published before commit")
	assert.FileExists(t, stale)

	require.NoError(t, b.Commit())
	assert.FileExists(t, a)
	assert.FileExists(t, IssuesPath(a))
	assert.FileExists(t, c)
	assert.NoFileExists(t, stale)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestBatch_Abort(t *testing.T) {
	dir := t.TempDir()
	var b Batch
	require.NoError(t, b.Stage(filepath.Join(dir, "a.json"), []int{1}))
	b.Abort()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, b.Commit())
}
