// Package export writes scraped rosters and their issue reports to disk.
package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/roster-cli/internal/model"
)

// IssuesSuffix replaces the output file's extension to name its issue report.
const IssuesSuffix = ".issues.json"

// Encode renders v as a JSON document indented with four spaces, HTML
// characters unescaped, with a trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, eris.Wrap(err, "export: encode json")
	}
	return buf.Bytes(), nil
}

// WriteMembers writes members to path as a JSON array. A nil or empty slice
// is written as [].
func WriteMembers(path string, members []model.Member) error {
	var b Batch
	if err := b.StageMembers(path, members); err != nil {
		return err
	}
	return b.Commit()
}

// WriteJSON encodes v and atomically replaces path with it.
func WriteJSON(path string, v any) error {
	var b Batch
	if err := b.Stage(path, v); err != nil {
		return err
	}
	return b.Commit()
}

// IssuesPath returns the issue report path for an output file:
// "senators.json" becomes "senators.issues.json".
func IssuesPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + IssuesSuffix
}

// WriteIssues writes the issue report next to output. With no issues, any
// report left by a previous run is removed and the returned path is empty.
func WriteIssues(output string, issues []model.Issue) (string, error) {
	var b Batch
	path, err := b.StageIssues(output, issues)
	if err != nil {
		return "", err
	}
	return path, b.Commit()
}

type staged struct {
	tmp, path string
}

// Batch publishes several files together. Stage encodes each file into a
// temp file beside its target; Commit renames them all into place. A failed
// Stage aborts the batch, so no target is touched unless every file was
// staged. The zero value is ready to use.
type Batch struct {
	files   []staged
	removes []string
}

// Stage encodes v into a temp file for path. On error every file staged so
// far is discarded.
func (b *Batch) Stage(path string, v any) error {
	data, err := Encode(v)
	if err != nil {
		b.Abort()
		return err
	}
	tmp, err := writeTemp(path, data)
	if err != nil {
		b.Abort()
		return err
	}
	b.files = append(b.files, staged{tmp: tmp, path: path})
	return nil
}

// StageMembers stages members as a JSON array; nil is staged as [].
func (b *Batch) StageMembers(path string, members []model.Member) error {
	if members == nil {
		members = []model.Member{}
	}
	return b.Stage(path, members)
}

// StageIssues stages the issue report for output and returns its path. With
// no issues, a stale report is scheduled for removal and the path is empty.
func (b *Batch) StageIssues(output string, issues []model.Issue) (string, error) {
	path := IssuesPath(output)
	if len(issues) == 0 {
		b.removes = append(b.removes, path)
		return "", nil
	}
	if err := b.Stage(path, issues); err != nil {
		return "", err
	}
	return path, nil
}

// Commit renames every staged file into place, then removes stale reports.
func (b *Batch) Commit() error {
	for i, f := range b.files {
		if err := os.Rename(f.tmp, f.path); err != nil {
			for _, rest := range b.files[i:] {
				os.Remove(rest.tmp)
			}
			b.files = nil
			return eris.Wrapf(err, "export: rename to %s", f.path)
		}
	}
	b.files = nil

	for _, path := range b.removes {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return eris.Wrapf(err, "export: remove stale %s", path)
		}
	}
	b.removes = nil
	return nil
}

// Abort discards every staged temp file.
func (b *Batch) Abort() {
	for _, f := range b.files {
		os.Remove(f.tmp)
	}
	b.files = nil
	b.removes = nil
}

func writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", eris.Wrapf(err, "export: mkdir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", eris.Wrapf(err, "export: create temp for %s", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", eris.Wrapf(err, "export: write %s", tmpName)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", eris.Wrapf(err, "export: chmod %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", eris.Wrapf(err, "export: close %s", tmpName)
	}
	return tmpName, nil
}
