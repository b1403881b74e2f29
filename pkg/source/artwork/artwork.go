// Package artwork parses the README of the CNCF artwork repository.
//
// The README nests project bullets under four top-level bullets:
//
//	* Graduated Projects
//	  * [Kubernetes](https://github.com/cncf/artwork/tree/main/projects/kubernetes)
//	* Incubating Projects
//	  ...
//
// Any other top-level bullet closes the current section.
package artwork

import (
	"context"
	"strings"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const (
	URL  = "https://raw.githubusercontent.com/cncf/artwork/main/README.md"
	Link = "https://github.com/cncf/artwork/blob/main/README.md"
)

var Document = source.Document{
	Name:     "artwork",
	URL:      URL,
	Filename: "artwork.md",
}

var Adapter = source.Adapter{
	Document:   Document,
	Title:      "Artwork",
	ShortTitle: "Artwork",
	Link:       Link,
	StatusMap:  StatusMap,
}

var sections = map[string]status.Status{
	"graduated projects":  status.Graduated,
	"incubating projects": status.Incubating,
	"sandbox projects":    status.Sandbox,
	"archived projects":   status.Archived,
}

const bullet = "* "

type Project struct {
	Name   string        `json:"name"`
	Status status.Status `json:"status"`
}

// Projects returns the projects listed under the four sections, in document order.
func Projects(readme string) []Project {
	var (
		res     []Project
		current = status.Missing
	)
	for _, line := range strings.Split(readme, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, bullet) {
			if st, ok := sections[strings.ToLower(bulletText(line))]; ok {
				current = st
				continue
			}
			current = status.Missing
		}
		if current == status.Missing {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), bullet) && !strings.HasPrefix(line, bullet) {
			if name := bulletText(line); name != "" {
				res = append(res, Project{Name: name, Status: current})
			}
		}
	}
	return res
}

// bulletText returns the text after the first '*' of line, with a leading
// Markdown link reduced to its label and a trailing soft break removed.
func bulletText(line string) string {
	_, text, ok := strings.Cut(line, "*")
	if !ok {
		return ""
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "[") {
		if end := strings.Index(text, "]"); end >= 0 {
			text = strings.TrimSpace(text[1:end])
		}
	}
	text, _, _ = strings.Cut(text, "  ")
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.Trim(text, "*-_ "))
}

// StatusMap maps the aliases of every listed project to the status of its section.
func StatusMap(_ context.Context, b []byte) (alias.Map, error) {
	m := make(alias.Map)
	for _, p := range Projects(string(b)) {
		m.AddAll(alias.Generate(p.Name), p.Status)
	}
	return m, nil
}
