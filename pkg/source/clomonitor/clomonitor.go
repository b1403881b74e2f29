// Package clomonitor parses the CNCF project list of CLOMonitor (cncf.yaml).
package clomonitor

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const (
	URL  = "https://raw.githubusercontent.com/cncf/clomonitor/main/data/cncf.yaml"
	Link = "https://github.com/cncf/clomonitor/blob/main/data/cncf.yaml"
)

var Document = source.Document{
	Name:     "clomonitor",
	URL:      URL,
	Filename: "clomonitor.yaml",
}

var Adapter = source.Adapter{
	Document:   Document,
	Title:      "CLOMonitor",
	ShortTitle: "CLOMonitor",
	Link:       Link,
	StatusMap:  StatusMap,
}

type Project struct {
	// Name is the slug.
	Name         string       `yaml:"name,omitempty"`
	DisplayName  string       `yaml:"display_name,omitempty"`
	Description  string       `yaml:"description,omitempty"`
	Category     string       `yaml:"category,omitempty"`
	DevstatsURL  string       `yaml:"devstats_url,omitempty"`
	AcceptedAt   string       `yaml:"accepted_at,omitempty"`
	Maturity     string       `yaml:"maturity,omitempty"`
	Repositories []Repository `yaml:"repositories,omitempty"`
}

type Repository struct {
	Name      string   `yaml:"name,omitempty"`
	URL       string   `yaml:"url,omitempty"`
	CheckSets []string `yaml:"check_sets,omitempty"`
}

// Projects returns the well-formed projects in document order.
// A document that is not a list yields no projects.
func Projects(ctx context.Context, b []byte) ([]Project, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", Document.Filename, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, nil
	}
	var res []Project
	entries := make([]yaml.Node, len(doc.Content[0].Content))
	for i, n := range doc.Content[0].Content {
		entries[i] = *n
	}
	source.DecodeEach(ctx, "clomonitor project", entries, func(p Project) {
		res = append(res, p)
	})
	return res, nil
}

// SlugKeys returns the keys of a slug: hyphen/space variants, suffix-stripped
// forms and their compacted forms.
func SlugKeys(slug string) []string {
	k := alias.Normalize(slug)
	if k == "" {
		return nil
	}
	var set alias.Set
	set.Add(k)
	for _, v := range alias.HyphenSpaceVariants(k) {
		set.Add(strings.TrimSpace(v))
	}
	for _, v := range alias.StripSuffixes(k) {
		set.Add(v)
	}
	for _, v := range set.Keys() {
		set.Add(alias.Compact(v))
	}
	return set.Keys()
}

// StatusMap maps the aliases of the display name and the slug of every project to its maturity.
func StatusMap(ctx context.Context, b []byte) (alias.Map, error) {
	projects, err := Projects(ctx, b)
	if err != nil {
		return nil, err
	}
	m := make(alias.Map)
	for _, p := range projects {
		st := status.Normalize(p.Maturity)
		if st == status.Missing {
			continue
		}
		if displayName := strings.TrimSpace(p.DisplayName); displayName != "" {
			m.AddAll(alias.Generate(displayName), st)
		}
		m.AddAll(SlugKeys(p.Name), st)
	}
	return m, nil
}
