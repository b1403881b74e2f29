package devstats

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const testHTML = `<!DOCTYPE html>
<html><body>
<table>
  <tr><td><a href="/all">All CNCF</a></td></tr>
  <tr><th>Graduated</th></tr>
  <tr><td><a href="https://k8s.devstats.cncf.io/">Kubernetes</a></td><td><a href="#">A</a></td></tr>
  <tr><td><a href="#">B</a></td></tr>
  <tr><td><a href="#"> C </a><a href="#"></a></td></tr>
  <tr><td class="header"> Incubating </td></tr>
  <tr><td><a href="#">D</a></td></tr>
  <tr><td>Graduated projects</td><td><a href="#">E</a></td></tr>
  <tr><td><b>Archived</b></td></tr>
  <tr><td><a href="#">Brigade</a></td></tr>
</table>
</body></html>`

func TestProjects(t *testing.T) {
	projects, err := Projects([]byte(testHTML))
	assert.NilError(t, err)
	expected := []Project{
		{Name: "Kubernetes", Status: status.Graduated},
		{Name: "A", Status: status.Graduated},
		{Name: "B", Status: status.Graduated},
		{Name: "C", Status: status.Graduated},
		{Name: "D", Status: status.Incubating},
		{Name: "E", Status: status.Incubating},
		{Name: "Brigade", Status: status.Archived},
	}
	assert.DeepEqual(t, expected, projects)
}

func TestStatusMap(t *testing.T) {
	m, err := StatusMap(context.TODO(), []byte(testHTML))
	assert.NilError(t, err)
	assert.Equal(t, status.Graduated, m["a"])
	assert.Equal(t, status.Graduated, m["b"])
	assert.Equal(t, status.Graduated, m["c"])
	assert.Equal(t, status.Incubating, m["d"])
	assert.Equal(t, status.Archived, m["brigade"])
	_, ok := m["all cncf"]
	assert.Assert(t, !ok, "rows before the first section are ignored")
}

func TestProjectsWithoutTable(t *testing.T) {
	projects, err := Projects([]byte(`<tr><td>Graduated</td></tr><tr><td><a>A</a></td></tr>`))
	assert.NilError(t, err)
	assert.DeepEqual(t, []Project{{Name: "A", Status: status.Graduated}}, projects)
}
