package pcc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

const testRegistry = `source: LFX PCC project-service
foundation_id: a0941000002wBz4AAE
categories:
  Graduated:
  - name: Kubernetes
    slug: kubernetes
    category: Graduated
    status: Active
    project_logo: null
  Incubating:
  - name: Backstage
  - "not a record"
  - name: ""
  TAG:
  - name: TAG Security
  Sandbox:
  - name: Foo Bar (FB)
forming_projects:
- name: Forming One
  status: Formation - Exploratory
archived_projects:
- name: rkt
  status: Archived
`

func TestExpectedStatuses(t *testing.T) {
	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, Filename), []byte(testRegistry), 0o644))
	r, err := Load(dir)
	assert.NilError(t, err)
	expected := []Expected{
		{Name: "Kubernetes", Status: status.Graduated},
		{Name: "Backstage", Status: status.Incubating},
		{Name: "Foo Bar (FB)", Status: status.Sandbox},
		{Name: "rkt", Status: status.Archived},
		{Name: "Forming One", Status: status.Forming},
	}
	assert.DeepEqual(t, expected, ExpectedStatuses(r))
}

func TestLoadNotGenerated(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Assert(t, errors.Is(err, ErrNotGenerated))
	assert.ErrorContains(t, err, "fetch-pcc")
}

func TestWriteKeepsCategoryOrder(t *testing.T) {
	dir := t.TempDir()
	r := &Registry{
		Source: SourceName,
		Categories: Categories{
			{Name: "Graduated", Records: Records{{Name: "Kubernetes"}}},
			{Name: "Incubating"},
			{Name: "Sandbox", Records: Records{{Name: "Foo"}}},
		},
	}
	assert.NilError(t, Write(dir, r))
	got, err := Load(dir)
	assert.NilError(t, err)
	var names []string
	for _, cat := range got.Categories {
		names = append(names, cat.Name)
	}
	assert.DeepEqual(t, []string{"Graduated", "Incubating", "Sandbox"}, names)
	assert.Equal(t, "Foo", got.Categories.Get("Sandbox")[0].Name)
}

func TestFetch(t *testing.T) {
	projects := []map[string]any{
		{"Name": "zeta", "Category": "Sandbox", "Status": "Active", "Foundation": map[string]any{"ID": FoundationIDCNCF}},
		{"Name": "Alpha", "Category": "Sandbox", "Status": "Active", "Foundation": map[string]any{"ID": FoundationIDCNCF}},
		{"Name": "Kubernetes", "Slug": "kubernetes", "Category": "Graduated", "Status": "Active", "Foundation": map[string]any{"ID": FoundationIDCNCF}},
		{"Name": "TAG Runtime", "Category": "TAG", "Status": "Active", "Foundation": map[string]any{"ID": FoundationIDCNCF}},
		{"Name": "Node.js", "Category": "Graduated", "Status": "Active", "Foundation": map[string]any{"ID": "other"}},
		{"Name": "New Thing", "Status": "Formation - Exploratory", "Foundation": map[string]any{"ID": FoundationIDCNCF}},
		{"Name": "rkt", "Category": "Incubating", "Status": "Archived", "Foundation": map[string]any{"ID": FoundationIDCNCF}},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		end := min(offset+limit, len(projects))
		data := []map[string]any{}
		if offset < end {
			data = projects[offset:end]
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"Data": data})
	}))
	defer srv.Close()

	ctx := context.TODO()
	r, err := Fetch(ctx, "token", WithURL(srv.URL), WithPageSize(3), WithInterval(0))
	assert.NilError(t, err)
	assert.Equal(t, FoundationIDCNCF, r.FoundationID)
	assert.Equal(t, 3, len(r.Categories))
	assert.Equal(t, "Kubernetes", r.Categories.Get("Graduated")[0].Name)
	assert.Equal(t, "kubernetes", r.Categories.Get("Graduated")[0].Slug)
	assert.Equal(t, 0, len(r.Categories.Get("Incubating")))
	sandbox := r.Categories.Get("Sandbox")
	assert.Equal(t, 2, len(sandbox))
	assert.Equal(t, "Alpha", sandbox[0].Name)
	assert.Equal(t, "zeta", sandbox[1].Name)
	assert.Equal(t, 1, len(r.FormingProjects))
	assert.Equal(t, "New Thing", r.FormingProjects[0].Name)
	assert.Equal(t, 1, len(r.ArchivedProjects))
	assert.Equal(t, "Incubating", r.ArchivedProjects[0].Category)

	_, err = Fetch(ctx, "wrong", WithURL(srv.URL), WithInterval(0))
	assert.ErrorContains(t, err, "401")
}

func TestFetchSkipsMalformedProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") != "0" {
			_, _ = w.Write([]byte(`{"Data":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"Data":[
			{"Name":"Kubernetes","Category":"Graduated","Status":"Active","Foundation":{"ID":"` + FoundationIDCNCF + `"}},
			{"Name":"Broken","Category":"Sandbox","Status":"Active","Foundation":"oops"},
			{"Name":"Envoy","Category":"Graduated","Status":"Active","Foundation":{"ID":"` + FoundationIDCNCF + `"}}
		]}`))
	}))
	defer srv.Close()

	r, err := Fetch(context.TODO(), "token", WithURL(srv.URL), WithInterval(0))
	assert.NilError(t, err)
	graduated := r.Categories.Get("Graduated")
	assert.Equal(t, 2, len(graduated))
	assert.Equal(t, "Envoy", graduated[0].Name)
	assert.Equal(t, "Kubernetes", graduated[1].Name)
	assert.Equal(t, 0, len(r.Categories.Get("Sandbox")))
}
