// Package devstats parses the project index of DevStats (https://devstats.cncf.io/).
//
// The index is a table. Rows are read with the HTML tokenizer, so rows
// outside of a <table> element count as well. A row holding a cell that reads exactly
// "Graduated", "Incubating", "Sandbox" or "Archived" opens a section, and the
// links of the following rows name the projects of that section.
package devstats

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const URL = "https://devstats.cncf.io/"

var Document = source.Document{
	Name:     "devstats",
	URL:      URL,
	Filename: "devstats.html",
}

var Adapter = source.Adapter{
	Document:   Document,
	Title:      "DevStats",
	ShortTitle: "DevStats",
	Link:       URL,
	StatusMap:  StatusMap,
}

var sectionHeaders = map[string]status.Status{
	"Graduated":  status.Graduated,
	"Incubating": status.Incubating,
	"Sandbox":    status.Sandbox,
	"Archived":   status.Archived,
}

type Project struct {
	Name   string        `json:"name"`
	Status status.Status `json:"status"`
}

// Projects returns the linked projects of every section in document order.
func Projects(b []byte) ([]Project, error) {
	rows, err := tableRows(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", Document.Filename, err)
	}
	var (
		res     []Project
		current = status.Missing
	)
	for _, r := range rows {
		if st := r.sectionHeader(); st != status.Missing {
			current = st
			continue
		}
		if current == status.Missing {
			continue
		}
		for _, link := range r.links {
			if name := strings.TrimSpace(link); name != "" {
				res = append(res, Project{Name: name, Status: current})
			}
		}
	}
	return res, nil
}

// StatusMap maps the aliases of every linked project to the status of its section.
func StatusMap(_ context.Context, b []byte) (alias.Map, error) {
	projects, err := Projects(b)
	if err != nil {
		return nil, err
	}
	m := make(alias.Map)
	for _, p := range projects {
		m.AddAll(alias.Generate(p.Name), p.Status)
	}
	return m, nil
}

type row struct {
	cells []string
	links []string
}

func (r *row) sectionHeader() status.Status {
	for _, cell := range r.cells {
		if st, ok := sectionHeaders[strings.TrimSpace(cell)]; ok {
			return st
		}
	}
	return status.Missing
}

// tableRows collects the cell and link texts of every <tr>.
// The tokenizer keeps rows that are not nested in a <table>.
func tableRows(b []byte) ([]row, error) {
	z := html.NewTokenizer(bytes.NewReader(b))
	var (
		res        []row
		cur        *row
		cell, link *strings.Builder
	)
	endCell := func() {
		if cell != nil {
			cur.cells = append(cur.cells, cell.String())
			cell = nil
		}
	}
	endLink := func() {
		if link != nil {
			cur.links = append(cur.links, link.String())
			link = nil
		}
	}
	endRow := func() {
		if cur != nil {
			endCell()
			endLink()
			res = append(res, *cur)
			cur = nil
		}
	}
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			endRow()
			return res, nil
		case html.StartTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Tr:
				endRow()
				cur = &row{}
			case atom.Td, atom.Th:
				if cur == nil {
					cur = &row{}
				}
				endCell()
				cell = new(strings.Builder)
			case atom.A:
				if cur != nil {
					endLink()
					link = new(strings.Builder)
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Tr, atom.Table:
				endRow()
			case atom.Td, atom.Th:
				if cur != nil {
					endCell()
				}
			case atom.A:
				if cur != nil {
					endLink()
				}
			}
		case html.TextToken:
			text := z.Text()
			if cell != nil {
				cell.Write(text)
			}
			if link != nil {
				link.Write(text)
			}
		}
	}
}
