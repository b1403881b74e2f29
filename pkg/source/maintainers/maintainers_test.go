package maintainers

import (
	"context"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const testCSV = `,Project,Name,Company,GitHub,OWNERS/MAINTAINERS
Graduated,Kubernetes,Jane Doe,Example,janedoe,https://github.com/kubernetes/community/blob/master/OWNERS
,Kubernetes,John Roe,Example,johnroe,
Incubating,Istio: Steering Committee,Alice,Example,alice,https://github.com/istio/community
Sandbox,k8sgpt-ai,Bob,Example,bob,https://github.com/k8sgpt-ai
Sandbox,Kubernetes,Mallory,Example,mallory,
Graduated,,Nobody,Example,nobody,https://github.com/nobody
TAG,TAG Security,Carol,Example,carol,https://github.com/cncf/tag-security
Archived,Brigade Project,Dave,Example,dave,https://gitlab.com/brigade
Sandbox,Short
`

func TestEntries(t *testing.T) {
	entries, err := Entries(context.TODO(), strings.NewReader(testCSV))
	assert.NilError(t, err)
	assert.Equal(t, 8, len(entries))
	assert.DeepEqual(t, Entry{
		Status:  "Graduated",
		Project: "Kubernetes",
		URL:     "https://github.com/kubernetes/community/blob/master/OWNERS",
	}, entries[0])
	assert.DeepEqual(t, Entry{Project: "Kubernetes"}, entries[1])
	assert.DeepEqual(t, Entry{Status: "Sandbox", Project: "Short"}, entries[7])
}

func TestEntriesOddHeader(t *testing.T) {
	const input = "St\"atus,Pro\"ject\n" +
		"Graduated,Kubernetes,Jane,Example,jane,\n"
	entries, err := Entries(context.TODO(), strings.NewReader(input))
	assert.NilError(t, err)
	assert.DeepEqual(t, []Entry{{Status: "Graduated", Project: "Kubernetes"}}, entries)
}

func TestAliases(t *testing.T) {
	got := Aliases("Istio: Steering Committee")
	assert.Check(t, is.Contains(got, "istio: steering committee"))
	assert.Check(t, is.Contains(got, "istio"))

	got = Aliases("Kubernetes steering")
	assert.Check(t, is.Contains(got, "kubernetes"))

	got = Aliases("k8sgpt-ai")
	assert.Check(t, is.Contains(got, "k8sgpt-ai"))
	assert.Check(t, is.Contains(got, "k8sgpt"))
}

func TestStatusMap(t *testing.T) {
	m, err := StatusMap(context.TODO(), []byte(testCSV))
	assert.NilError(t, err)
	cases := map[string]status.Status{
		"kubernetes":           status.Graduated,
		"kubernetes/community": status.Graduated,
		"istio":                status.Incubating,
		"istio/community":      status.Incubating,
		"k8sgpt":               status.Sandbox,
		"k8sgpt-ai":            status.Sandbox,
		"brigade":              status.Archived,
		"short":                status.Sandbox,
	}
	for k, expected := range cases {
		assert.Check(t, is.Equal(expected, m[k]), k)
	}
	for _, k := range []string{"tag security", "cncf", "cncf/tag-security", "nobody", "gitlab.com"} {
		_, ok := m[k]
		assert.Check(t, !ok, k)
	}
}
