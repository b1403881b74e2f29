// Package pcc manages the registry of CNCF projects exported from the LFX
// Project Control Center (PCC). The registry is the authoritative list of
// expected statuses.
package pcc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

// Filename is the name of the registry in the datasources directory.
const Filename = "pcc_projects.yaml"

const Link = "./pcc_projects.yaml"

type Registry struct {
	Source           string     `yaml:"source"`
	FoundationID     string     `yaml:"foundation_id"`
	Categories       Categories `yaml:"categories"`
	FormingProjects  Records    `yaml:"forming_projects"`
	ArchivedProjects Records    `yaml:"archived_projects"`
}

type Record struct {
	Name          string `yaml:"name"`
	Slug          string `yaml:"slug,omitempty"`
	Category      string `yaml:"category,omitempty"`
	Status        string `yaml:"status,omitempty"`
	ProjectLogo   string `yaml:"project_logo,omitempty"`
	RepositoryURL string `yaml:"repository_url,omitempty"`
}

// Records skips entries that are not mappings when decoded.
type Records []Record

func (r *Records) UnmarshalYAML(n *yaml.Node) error {
	*r = decodeRecords(n)
	return nil
}

type Category struct {
	Name    string
	Records Records
}

// Categories is a YAML mapping from category name to records that keeps the document order.
type Categories []Category

func (c Categories) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range c {
		var v yaml.Node
		records := []Record(cat.Records)
		if records == nil {
			records = []Record{}
		}
		if err := v.Encode(records); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: cat.Name}, &v)
	}
	return n, nil
}

func (c *Categories) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: categories must be a mapping", n.Line)
	}
	*c = nil
	for i := 0; i+1 < len(n.Content); i += 2 {
		cat := Category{Name: n.Content[i].Value}
		cat.Records = decodeRecords(n.Content[i+1])
		*c = append(*c, cat)
	}
	return nil
}

// Get returns the records of the named category, or nil.
func (c Categories) Get(name string) Records {
	for _, cat := range c {
		if cat.Name == name {
			return cat.Records
		}
	}
	return nil
}

func decodeRecords(n *yaml.Node) Records {
	if n.Kind != yaml.SequenceNode {
		return nil
	}
	nodes := make([]yaml.Node, len(n.Content))
	for i, e := range n.Content {
		nodes[i] = *e
	}
	var res Records
	source.DecodeEach(context.Background(), "pcc record", nodes, func(r Record) {
		res = append(res, r)
	})
	return res
}

// Expected is a project and the status recorded in the registry.
type Expected struct {
	Name   string        `json:"name"`
	Status status.Status `json:"status"`
}

// ExpectedStatuses lists the graduated, incubating and sandbox projects in
// document order, then the archived projects, then the forming projects.
// Records without a name are skipped.
func ExpectedStatuses(r *Registry) []Expected {
	var res []Expected
	add := func(records Records, st status.Status) {
		for _, rec := range records {
			if name := strings.TrimSpace(rec.Name); name != "" {
				res = append(res, Expected{Name: name, Status: st})
			}
		}
	}
	for _, cat := range r.Categories {
		switch st := status.Normalize(cat.Name); st {
		case status.Graduated, status.Incubating, status.Sandbox:
			add(cat.Records, st)
		}
	}
	add(r.ArchivedProjects, status.Archived)
	add(r.FormingProjects, status.Forming)
	return res
}

// ErrNotGenerated is returned by [Load] when the registry file does not exist.
var ErrNotGenerated = errors.New(`the PCC registry has not been generated yet; run "lifecycle-audit fetch-pcc" first`)

// Load reads the registry from dir.
func Load(dir string) (*Registry, error) {
	p := filepath.Join(dir, Filename)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", p, ErrNotGenerated)
		}
		return nil, err
	}
	var r Registry
	if err = yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", p, err)
	}
	return &r, nil
}

// Write writes the registry to dir.
func Write(dir string, r *Registry) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, Filename), b, 0o644)
}
