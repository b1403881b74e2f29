// Package report renders reconciliation rows as Markdown tables.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/reconcile"
	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/status"
)

// Column describes a source column.
type Column struct {
	// Title is used by the anomalies table, ShortTitle by the full report.
	Title      string
	ShortTitle string
	Link       string
}

// Writer renders rows whose statuses are in the order of Columns.
type Writer struct {
	// Expected is the column of the expected status.
	Expected Column
	Columns  []Column
}

const (
	AnomaliesTitle = "CNCF Project Status Audit"
	FullTitle      = "CNCF Project Statuses"
	noAnomalies    = "_No mismatches found between PCC and external sources._"
	noEntries      = "_No entries._"
)

// Anomalies returns the anomalous rows sorted by expected status, then by name.
func Anomalies(rows []reconcile.Row) []reconcile.Row {
	var res []reconcile.Row
	for _, r := range rows {
		if r.IsAnomaly() {
			res = append(res, r)
		}
	}
	slices.SortStableFunc(res, func(a, b reconcile.Row) int {
		return cmp.Or(
			cmp.Compare(a.Expected.Priority(), b.Expected.Priority()),
			compareNames(a, b),
		)
	})
	return res
}

// ByStatus returns the rows expected to have st, sorted by name.
func ByStatus(rows []reconcile.Row, st status.Status) []reconcile.Row {
	var res []reconcile.Row
	for _, r := range rows {
		if r.Expected == st {
			res = append(res, r)
		}
	}
	slices.SortStableFunc(res, compareNames)
	return res
}

func compareNames(a, b reconcile.Row) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// WriteAnomalies writes the table of anomalous rows.
func (wr *Writer) WriteAnomalies(w io.Writer, rows []reconcile.Row) error {
	lines := []string{"# " + AnomaliesTitle, ""}
	anomalies := Anomalies(rows)
	if len(anomalies) == 0 {
		lines = append(lines, noAnomalies)
	} else {
		header := []string{"Project", link(wr.Expected.Title+" status", wr.Expected.Link)}
		for _, c := range wr.Columns {
			header = append(header, link(c.Title+" status", c.Link))
		}
		lines = append(lines, wr.table(header, anomalies)...)
	}
	return writeLines(w, lines)
}

// WriteFull writes the anomalies followed by every row grouped by expected status.
func (wr *Writer) WriteFull(w io.Writer, rows []reconcile.Row) error {
	lines := []string{"# " + FullTitle, ""}
	lines = append(lines, wr.section("Anomalies", Anomalies(rows))...)
	title := cases.Title(language.English)
	for _, st := range status.Canonical {
		lines = append(lines, wr.section(title.String(string(st)), ByStatus(rows, st))...)
	}
	return writeLines(w, lines)
}

func (wr *Writer) section(title string, rows []reconcile.Row) []string {
	lines := []string{"## " + title, ""}
	if len(rows) == 0 {
		return append(lines, noEntries, "")
	}
	header := []string{"Project", wr.Expected.ShortTitle}
	for _, c := range wr.Columns {
		header = append(header, link(c.ShortTitle, c.Link))
	}
	lines = append(lines, wr.table(header, rows)...)
	return append(lines, "")
}

func (wr *Writer) table(header []string, rows []reconcile.Row) []string {
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	lines := []string{tableRow(header), "|" + strings.Join(sep, "|") + "|"}
	for _, r := range rows {
		cells := []string{r.Name, r.Expected.String()}
		for _, st := range r.Statuses() {
			cells = append(cells, st.String())
		}
		lines = append(lines, tableRow(cells))
	}
	return lines
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func link(text, url string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("[%s](%s)", text, url)
}

func writeLines(w io.Writer, lines []string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
