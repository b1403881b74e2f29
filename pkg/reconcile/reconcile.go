// Package reconcile compares the expected status of each project with the
// statuses reported by the sources.
package reconcile

import (
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/pcc"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

// NotFound is the status of a project that the primary source does not list.
// Secondary sources report [status.Missing] instead.
const NotFound status.Status = "-"

// Source is a parsed source.
type Source struct {
	Name string
	Map  alias.Map
}

// Engine reconciles against one primary source and any number of secondary sources.
type Engine struct {
	Primary   Source
	Secondary []Source
}

// Row is the reconciliation of one project.
type Row struct {
	Name     string        `json:"name"`
	Expected status.Status `json:"expected"`
	// Primary is never [status.Missing]; see [NotFound].
	Primary status.Status `json:"primary"`
	// Secondary has one entry per [Engine.Secondary] source.
	Secondary []status.Status `json:"secondary"`
}

// IsAnomaly reports whether a source does not list the project or
// lists it with a status other than the expected one.
func (r *Row) IsAnomaly() bool {
	if r.Primary == NotFound || r.Primary != r.Expected {
		return true
	}
	for _, st := range r.Secondary {
		if st == status.Missing || st != r.Expected {
			return true
		}
	}
	return false
}

// Statuses returns the primary status followed by the secondary ones.
func (r *Row) Statuses() []status.Status {
	return append([]status.Status{r.Primary}, r.Secondary...)
}

type Result struct {
	Rows      []Row
	Anomalies []Row
}

// Reconcile builds one row per expected project, in order.
func (e *Engine) Reconcile(expected []pcc.Expected) *Result {
	var res Result
	for _, exp := range expected {
		row := e.Row(exp)
		res.Rows = append(res.Rows, row)
		if row.IsAnomaly() {
			res.Anomalies = append(res.Anomalies, row)
		}
	}
	return &res
}

// Row looks up the aliases of exp.Name in every source.
// Each source reports the status of the first alias it knows.
func (e *Engine) Row(exp pcc.Expected) Row {
	keys := alias.Generate(exp.Name)
	row := Row{
		Name:      exp.Name,
		Expected:  status.Normalize(string(exp.Status)),
		Primary:   NotFound,
		Secondary: make([]status.Status, len(e.Secondary)),
	}
	if st, _, ok := e.Primary.Map.Lookup(keys); ok {
		row.Primary = status.Normalize(string(st))
	}
	for i, src := range e.Secondary {
		st, _, _ := src.Map.Lookup(keys)
		row.Secondary[i] = status.Normalize(string(st))
	}
	return row
}

// Hit is the match of a name in one source.
type Hit struct {
	Source string        `json:"source"`
	Key    string        `json:"key,omitempty"`
	Status status.Status `json:"status"`
}

// Explain returns the first matching alias of name in every source, in engine order.
func (e *Engine) Explain(name string) []Hit {
	keys := alias.Generate(name)
	var res []Hit
	for _, src := range append([]Source{e.Primary}, e.Secondary...) {
		st, key, _ := src.Map.Lookup(keys)
		res = append(res, Hit{Source: src.Name, Key: key, Status: st})
	}
	return res
}
