// Package verify compares a freshly rendered model against output already on
// disk and reports the differences as unified diffs.
package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/extdoc-hq/extdoc/internal/emitter"
)

// ChangeKind classifies a difference between rendered and existing output
type ChangeKind string

const (
	Added    ChangeKind = "added"    // rendered, missing on disk
	Removed  ChangeKind = "removed"  // on disk, no longer rendered
	Modified ChangeKind = "modified" // content differs
)

// Change is the difference for one output file
type Change struct {
	File string
	Kind ChangeKind
	Diff string
}

// Report lists every changed file, ordered by name
type Report struct {
	Changes []Change
}

// Clean reports whether the existing output matches
func (r *Report) Clean() bool {
	return len(r.Changes) == 0
}

// String renders all diffs one after another
func (r *Report) String() string {
	var sb strings.Builder
	for _, c := range r.Changes {
		sb.WriteString(c.Diff)
	}
	return sb.String()
}

// Compare diffs rendered files against the contents of dir. Only files in dir
// with the given extension are considered, so unrelated files are ignored.
func Compare(files []emitter.File, dir, ext string) (*Report, error) {
	existing, err := listOutput(dir, ext)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	rendered := make(map[string]bool, len(files))

	for _, f := range files {
		rendered[f.Name] = true

		old, ok := existing[f.Name]
		if !ok {
			report.add(f.Name, Added, "", string(f.Data))
			continue
		}

		data, err := os.ReadFile(old)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", old, err)
		}
		if string(data) != string(f.Data) {
			report.add(f.Name, Modified, string(data), string(f.Data))
		}
	}

	for name, path := range existing {
		if rendered[name] {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		report.add(name, Removed, string(data), "")
	}

	sort.Slice(report.Changes, func(i, j int) bool {
		return report.Changes[i].File < report.Changes[j].File
	})
	return report, nil
}

func (r *Report) add(name string, kind ChangeKind, before, after string) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	r.Changes = append(r.Changes, Change{File: name, Kind: kind, Diff: text})
}

// listOutput maps file names to paths for the output files in dir. A missing
// dir is treated as empty.
func listOutput(dir, ext string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	out := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		out[e.Name()] = filepath.Join(dir, e.Name())
	}
	return out, nil
}
