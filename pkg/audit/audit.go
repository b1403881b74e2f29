// Package audit runs the lifecycle audit: it loads the PCC registry and the
// source documents, reconciles them, and writes the reports.
package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/reconcile"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/report"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/artwork"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/clomonitor"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/devstats"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/landscape"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/maintainers"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/source/pcc"
)

// Adapters are the sources in report order. The first one is the primary source.
var Adapters = []source.Adapter{
	landscape.Adapter,
	clomonitor.Adapter,
	maintainers.Adapter,
	devstats.Adapter,
	artwork.Adapter,
}

// Documents returns the documents of [Adapters].
func Documents() []source.Document {
	res := make([]source.Document, len(Adapters))
	for i, a := range Adapters {
		res[i] = a.Document
	}
	return res
}

const (
	AnomaliesFilename = "status_audit.md"
	FullFilename      = "all_statuses.md"
	DefaultOutputDir  = "audit"
)

type Opts struct {
	// Datasources is the directory of the PCC registry.
	Datasources string
	Loader      source.Loader
	// Adapters defaults to [Adapters].
	Adapters []source.Adapter
}

func (o *Opts) adapters() []source.Adapter {
	if len(o.Adapters) == 0 {
		return Adapters
	}
	return o.Adapters
}

// NewEngine loads and parses every document, one at a time.
// The first failure aborts.
func NewEngine(ctx context.Context, loader source.Loader, adapters []source.Adapter) (*reconcile.Engine, error) {
	if len(adapters) == 0 {
		return nil, errors.New("no sources")
	}
	var e reconcile.Engine
	for i, a := range adapters {
		b, err := loader.Load(ctx, a.Document)
		if err != nil {
			return nil, err
		}
		m, err := a.StatusMap(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", a.Name, err)
		}
		slog.DebugContext(ctx, "parsed a source", "name", a.Name, "keys", len(m))
		src := reconcile.Source{Name: a.Name, Map: m}
		if i == 0 {
			e.Primary = src
		} else {
			e.Secondary = append(e.Secondary, src)
		}
	}
	return &e, nil
}

// Run reconciles the PCC registry with the sources.
func Run(ctx context.Context, opts Opts) (*reconcile.Result, error) {
	if opts.Loader == nil {
		return nil, errors.New("no loader")
	}
	registry, err := pcc.Load(opts.Datasources)
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(ctx, opts.Loader, opts.adapters())
	if err != nil {
		return nil, err
	}
	expected := pcc.ExpectedStatuses(registry)
	slog.DebugContext(ctx, "loaded the PCC registry", "projects", len(expected))
	return e.Reconcile(expected), nil
}

// NewReportWriter returns a writer with one column per adapter.
func NewReportWriter(adapters []source.Adapter) *report.Writer {
	wr := &report.Writer{
		Expected: report.Column{Title: "PCC", ShortTitle: "PCC", Link: pcc.Link},
	}
	for _, a := range adapters {
		wr.Columns = append(wr.Columns, report.Column{Title: a.Title, ShortTitle: a.ShortTitle, Link: a.Link})
	}
	return wr
}

// WriteReports writes [AnomaliesFilename], then [FullFilename], into dir.
func WriteReports(dir string, adapters []source.Adapter, res *reconcile.Result) error {
	if len(adapters) == 0 {
		adapters = Adapters
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	wr := NewReportWriter(adapters)
	reports := []struct {
		filename string
		write    func(*os.File) error
	}{
		{AnomaliesFilename, func(f *os.File) error { return wr.WriteAnomalies(f, res.Rows) }},
		{FullFilename, func(f *os.File) error { return wr.WriteFull(f, res.Rows) }},
	}
	for _, r := range reports {
		if err := writeFile(filepath.Join(dir, r.filename), r.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(p string, write func(*os.File) error) error {
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
