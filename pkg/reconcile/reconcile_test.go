package reconcile

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/landscape"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/pcc"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

func secondary(maps ...alias.Map) []Source {
	names := []string{"clomonitor", "maintainers", "devstats", "artwork"}
	res := make([]Source, len(maps))
	for i, m := range maps {
		res[i] = Source{Name: names[i], Map: m}
	}
	return res
}

func uniform(key string, st status.Status) alias.Map {
	return alias.Map{key: st}
}

func TestKubernetesFromLandscape(t *testing.T) {
	lm, err := landscape.StatusMap(context.TODO(), []byte(`
landscape:
  - category:
    name: Orchestration
    subcategories:
      - subcategory:
        name: Scheduling
        items:
          - item:
            name: Kubernetes
            project: Graduated
`))
	assert.NilError(t, err)
	e := &Engine{
		Primary: Source{Name: "landscape", Map: lm},
		Secondary: secondary(
			uniform("kubernetes", status.Graduated),
			uniform("kubernetes", status.Graduated),
			uniform("kubernetes", status.Graduated),
			uniform("kubernetes", status.Graduated),
		),
	}
	row := e.Row(pcc.Expected{Name: "Kubernetes", Status: status.Graduated})
	assert.Equal(t, status.Graduated, row.Primary)
	assert.Assert(t, !row.IsAnomaly())
}

func TestParentheticalAbbreviation(t *testing.T) {
	e := &Engine{
		Primary: Source{Name: "landscape", Map: uniform("fb", status.Sandbox)},
	}
	row := e.Row(pcc.Expected{Name: "Foo Bar (FB)", Status: status.Sandbox})
	assert.Equal(t, status.Sandbox, row.Primary)
}

func TestAbsentEverywhere(t *testing.T) {
	e := &Engine{
		Primary:   Source{Name: "landscape", Map: alias.Map{}},
		Secondary: secondary(alias.Map{}, alias.Map{}, alias.Map{}, alias.Map{}),
	}
	res := e.Reconcile([]pcc.Expected{{Name: "Ghost", Status: status.Incubating}})
	assert.Equal(t, 1, len(res.Rows))
	row := res.Rows[0]
	assert.Equal(t, NotFound, row.Primary)
	assert.DeepEqual(t, []status.Status{status.Missing, status.Missing, status.Missing, status.Missing}, row.Secondary)
	assert.Equal(t, 1, len(res.Anomalies))
}

func TestIsAnomaly(t *testing.T) {
	g := status.Graduated
	cases := []struct {
		name     string
		row      Row
		expected bool
	}{
		{"all agree", Row{Expected: g, Primary: g, Secondary: []status.Status{g, g}}, false},
		{"no secondary sources", Row{Expected: g, Primary: g}, false},
		{"primary not found", Row{Expected: g, Primary: NotFound, Secondary: []status.Status{g}}, true},
		{"primary differs", Row{Expected: g, Primary: status.Incubating, Secondary: []status.Status{g}}, true},
		{"secondary missing", Row{Expected: g, Primary: g, Secondary: []status.Status{g, status.Missing}}, true},
		{"secondary differs", Row{Expected: g, Primary: g, Secondary: []status.Status{status.Archived, g}}, true},
		{"secondary unrecognized", Row{Expected: g, Primary: g, Secondary: []status.Status{"emeritus"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.row.IsAnomaly())
		})
	}
}

func TestFirstMatchingAliasWins(t *testing.T) {
	// "open policy agent (opa)" is generated before "opa"
	e := &Engine{
		Primary: Source{Name: "landscape", Map: alias.Map{
			"opa":                     status.Sandbox,
			"open policy agent (opa)": status.Graduated,
		}},
	}
	hits := e.Explain("Open Policy Agent (OPA)")
	assert.DeepEqual(t, []Hit{{Source: "landscape", Key: "open policy agent (opa)", Status: status.Graduated}}, hits)
}

func TestReconcileOrder(t *testing.T) {
	e := &Engine{Primary: Source{Name: "landscape", Map: alias.Map{"b": status.Sandbox}}}
	res := e.Reconcile([]pcc.Expected{
		{Name: "B", Status: status.Sandbox},
		{Name: "A", Status: status.Graduated},
	})
	assert.Equal(t, "B", res.Rows[0].Name)
	assert.Equal(t, "A", res.Rows[1].Name)
	assert.Equal(t, 1, len(res.Anomalies))
	assert.Equal(t, "A", res.Anomalies[0].Name)
	assert.DeepEqual(t, []status.Status{status.Sandbox}, res.Rows[0].Statuses())
}
