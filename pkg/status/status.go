// Package status defines the lifecycle statuses of CNCF projects.
package status

import (
	"strings"
)

// Status is a lifecycle status.
// Values produced by [Normalize] are either one of the canonical constants,
// [Missing], or an unrecognized lowercased string that is kept for review.
type Status string

const (
	Graduated  Status = "graduated"
	Incubating Status = "incubating"
	Sandbox    Status = "sandbox"
	Forming    Status = "forming"
	Archived   Status = "archived"
	// Missing means no value was reported.
	Missing Status = ""
)

// Canonical lists the canonical statuses in report order.
var Canonical = []Status{Graduated, Incubating, Sandbox, Forming, Archived}

var synonyms = map[string]Status{
	"graduated":               Graduated,
	"incubating":              Incubating,
	"incubator":               Incubating,
	"sandbox":                 Sandbox,
	"archived":                Archived,
	"archive":                 Archived,
	"archieve":                Archived, // sic, seen upstream
	"retired":                 Archived,
	"formation - exploratory": Forming,
	"forming":                 Forming,
	"form":                    Forming,
	"exploratory":             Forming,
}

// Normalize maps a free-text status to a [Status].
func Normalize(raw string) Status {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return Missing
	}
	if s, ok := synonyms[v]; ok {
		return s
	}
	return Status(v)
}

// IsCanonical reports whether s is one of [Canonical].
func (s Status) IsCanonical() bool {
	return s.Priority() < len(Canonical)
}

// Priority returns the sort rank of s.
// Unknown statuses sort after all canonical ones.
func (s Status) Priority() int {
	for i, c := range Canonical {
		if s == c {
			return i
		}
	}
	return 99
}

// String returns "-" for [Missing].
func (s Status) String() string {
	if s == Missing {
		return "-"
	}
	return string(s)
}
