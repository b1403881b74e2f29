// Package landscape parses the CNCF Landscape (landscape.yml).
package landscape

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
	URL  = "https://raw.githubusercontent.com/cncf/landscape/master/landscape.yml"
	Link = "https://github.com/cncf/landscape/blob/master/landscape.yml"
)

var Document = source.Document{
	Name:     "landscape",
	URL:      URL,
	Filename: "landscape.yml",
}

var Adapter = source.Adapter{
	Document:   Document,
	Title:      "Landscape",
	ShortTitle: "Landscape",
	Link:       Link,
	StatusMap:  StatusMap,
}

// Entries are decoded lazily so that a malformed entry does not fail the whole document.
type Landscape struct {
	Landscape []yaml.Node `yaml:"landscape"`
}

type Category struct {
	Name          string      `yaml:"name"`
	Subcategories []yaml.Node `yaml:"subcategories"`
}

type Subcategory struct {
	Name  string      `yaml:"name"`
	Items []yaml.Node `yaml:"items"`
}

type Item struct {
	Name     string `yaml:"name"`
	HomePage string `yaml:"homepage_url,omitempty"`
	RepoURL  string `yaml:"repo_url,omitempty"`
	// Project is the maturity of a CNCF project, empty for other items.
	Project string `yaml:"project,omitempty"`
	Extra   Extra  `yaml:"extra,omitempty"`
}

type Extra struct {
	LFXSlug string `yaml:"lfx_slug,omitempty"`
}

// Items returns the items of the landscape in document order.
func Items(ctx context.Context, b []byte) ([]Item, error) {
	var l Landscape
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", Document.Filename, err)
	}
	var res []Item
	source.DecodeEach(ctx, "landscape category", l.Landscape, func(cat Category) {
		source.DecodeEach(ctx, "landscape subcategory", cat.Subcategories, func(sub Subcategory) {
			source.DecodeEach(ctx, "landscape item", sub.Items, func(item Item) {
				res = append(res, item)
			})
		})
	})
	return res, nil
}

// StatusMap maps the aliases of every CNCF project of the landscape to its maturity.
func StatusMap(ctx context.Context, b []byte) (alias.Map, error) {
	items, err := Items(ctx, b)
	if err != nil {
		return nil, err
	}
	m := make(alias.Map)
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		st := status.Normalize(item.Project)
		if st == status.Missing {
			// not a CNCF project
			continue
		}
		m.AddAll(alias.Generate(name, item.Extra.LFXSlug), st)
	}
	return m, nil
}
