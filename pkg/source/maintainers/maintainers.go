// Package maintainers parses the CNCF project maintainers list (project-maintainers.csv).
//
// The columns are positional, as in the upstream file:
// the status is column 0, the project name column 1, and a row with at least
// six columns may carry a URL in its last column.
package maintainers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/netutil/github"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const (
	URL  = "https://raw.githubusercontent.com/cncf/foundation/main/project-maintainers.csv"
	Link = "https://github.com/cncf/foundation/blob/main/project-maintainers.csv"
)

var Document = source.Document{
	Name:     "maintainers",
	URL:      URL,
	Filename: "project-maintainers.csv",
}

var Adapter = source.Adapter{
	Document:   Document,
	Title:      "Maintainers CSV",
	ShortTitle: "Maintainers",
	Link:       Link,
	StatusMap:  StatusMap,
}

const (
	colStatus  = 0
	colProject = 1
	// minColsForURL is the minimum width of a row whose last column is a URL.
	minColsForURL = 6
)

type Entry struct {
	Status  string `json:"status"`
	Project string `json:"project"`
	URL     string `json:"url,omitempty"`
}

// Entries returns the rows that name a project, skipping the header row.
func Entries(ctx context.Context, r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	var res []Entry
	// row 0 is the header, even when it fails to parse
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pErr *csv.ParseError
			if errors.As(err, &pErr) {
				slog.DebugContext(ctx, "skipping a malformed row", "what", Document.Filename, "line", pErr.Line, "error", err)
				continue
			}
			return nil, fmt.Errorf("failed to parse %s: %w", Document.Filename, err)
		}
		if row == 0 {
			continue
		}
		e := Entry{
			Status:  column(rec, colStatus),
			Project: column(rec, colProject),
		}
		if len(rec) >= minColsForURL {
			if u := column(rec, len(rec)-1); strings.HasPrefix(u, "http") {
				e.URL = u
			}
		}
		if e.Project == "" {
			continue
		}
		res = append(res, e)
	}
	return res, nil
}

func column(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

// Aliases returns the keys of a project name.
// Besides the keys of the whole name, "Istio: Steering Committee" yields the keys of "Istio",
// "Kubernetes steering" yields the keys of "Kubernetes", and "k8sgpt-ai" yields "k8sgpt".
func Aliases(project string) []string {
	var set alias.Set
	add := func(name string) {
		for _, k := range alias.Generate(name) {
			set.Add(k)
		}
	}
	add(project)
	if lhs, _, ok := strings.Cut(project, ":"); ok {
		add(strings.TrimSpace(lhs))
	}
	if fields := strings.Fields(project); len(fields) > 0 {
		add(fields[0])
	}
	for _, k := range set.Keys() {
		if trimmed, ok := strings.CutSuffix(k, "-ai"); ok {
			set.Add(trimmed)
		}
	}
	return set.Keys()
}

// StatusMap maps the aliases of every project with a lifecycle status to that status,
// together with its GitHub organization and repository.
func StatusMap(ctx context.Context, b []byte) (alias.Map, error) {
	entries, err := Entries(ctx, strings.NewReader(string(b)))
	if err != nil {
		return nil, err
	}
	m := make(alias.Map)
	for _, e := range entries {
		st := status.Normalize(e.Status)
		if !st.IsCanonical() {
			// steering committees, TAGs, and rows continuing a previous project
			continue
		}
		m.AddAll(Aliases(e.Project), st)
		if e.URL == "" {
			continue
		}
		gh, err := github.ParsePath(e.URL)
		if err != nil {
			slog.DebugContext(ctx, "ignoring a non-GitHub URL", "project", e.Project, "url", e.URL)
			continue
		}
		m.AddAll(gh.Keys(), st)
	}
	return m, nil
}
