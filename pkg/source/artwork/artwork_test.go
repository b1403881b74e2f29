package artwork

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const testREADME = "# CNCF Artwork\r\n" +
	"\n" +
	"* [Kubernetes](https://kubernetes.io) logo guidelines\n" +
	"  * [NotAProject](https://example.com)\n" +
	"* Graduated Projects\n" +
	"  * [Kubernetes](https://github.com/cncf/artwork/tree/main/projects/kubernetes)\n" +
	"  * **containerd**  \n" +
	"\n" +
	"\t* Helm\r\n" +
	"* INCUBATING PROJECTS\n" +
	"  * [Backstage](projects/backstage)\n" +
	"    * [Backstage Subproject](projects/backstage/sub)\n" +
	"* Other Artwork\n" +
	"  * [CNCF Logo](other/cncf)\n" +
	"* Archived Projects\n" +
	"  * [rkt](archived/rkt)\n" +
	"  Some prose that is not a bullet\n"

func TestProjects(t *testing.T) {
	expected := []Project{
		{Name: "Kubernetes", Status: status.Graduated},
		{Name: "containerd", Status: status.Graduated},
		{Name: "Helm", Status: status.Graduated},
		{Name: "Backstage", Status: status.Incubating},
		{Name: "Backstage Subproject", Status: status.Incubating},
		{Name: "rkt", Status: status.Archived},
	}
	assert.DeepEqual(t, expected, Projects(testREADME))
}

func TestBulletText(t *testing.T) {
	cases := []struct {
		line     string
		expected string
	}{
		{"* Graduated Projects", "Graduated Projects"},
		{"  * [Name](url) trailing", "Name"},
		{"  * plain name  soft break", "plain name"},
		{"  * __underlined__", "underlined"},
		{"no bullet", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, bulletText(tc.line), tc.line)
	}
}

func TestStatusMap(t *testing.T) {
	m, err := StatusMap(context.TODO(), []byte(testREADME))
	assert.NilError(t, err)
	assert.Equal(t, status.Graduated, m["kubernetes"])
	assert.Equal(t, status.Incubating, m["backstage"])
	assert.Equal(t, status.Archived, m["rkt"])
	for _, k := range []string{"notaproject", "cncf logo"} {
		_, ok := m[k]
		assert.Check(t, !ok, k)
	}
}
