// Package source defines the documents that report project statuses.
//
// Each subpackage parses one document into an [alias.Map].
package source

import (
	"context"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/alias"
)

// Document is a remote document, cached locally as Filename.
type Document struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Loader returns the contents of a document.
type Loader interface {
	Load(ctx context.Context, doc Document) ([]byte, error)
}

// StatusMapFunc parses a document into a status map.
type StatusMapFunc func(ctx context.Context, b []byte) (alias.Map, error)

// Adapter binds a document to its parser.
type Adapter struct {
	Document
	// Title is the column title of the source in the anomalies report,
	// ShortTitle the one in the full report.
	Title      string
	ShortTitle string
	// Link is the human-readable location of the document, used in report headers.
	Link      string
	StatusMap StatusMapFunc
}

// Fixtures is a [Loader] backed by in-memory contents keyed by [Document.Name].
type Fixtures map[string][]byte

func (f Fixtures) Load(_ context.Context, doc Document) ([]byte, error) {
	b, ok := f[doc.Name]
	if !ok {
		return nil, &NotFoundError{Document: doc}
	}
	return b, nil
}

type NotFoundError struct {
	Document Document
}

func (e *NotFoundError) Error() string {
	return "document not found: " + e.Document.Name
}
