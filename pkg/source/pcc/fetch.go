package pcc

import (
	"cmp"
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cncf/automation/utilities/lifecycle-audit/pkg/netutil"
)

const (
	URL = "https://api-gw.platform.linuxfoundation.org/project-service/v1/projects"
	// FoundationIDCNCF is the PCC ID of the CNCF.
	FoundationIDCNCF = "a0941000002wBz4AAE"
	// SourceName is recorded in [Registry.Source].
	SourceName = "LFX PCC project-service"

	DefaultPageSize = 100
	DefaultInterval = 200 * time.Millisecond
)

// Lifecycle values of the "Status" field of the project-service.
const (
	statusActive  = "Active"
	statusForming = "Formation - Exploratory"
)

// ActiveCategories are the categories of active projects kept in [Registry.Categories], in order.
var ActiveCategories = []string{"Graduated", "Incubating", "Sandbox"}

type page struct {
	Data []json.RawMessage `json:"Data"`
}

type apiProject struct {
	Name          string `json:"Name"`
	Slug          string `json:"Slug"`
	Category      string `json:"Category"`
	Status        string `json:"Status"`
	ProjectLogo   string `json:"ProjectLogo"`
	RepositoryURL string `json:"RepositoryURL"`
	Foundation    struct {
		ID string `json:"ID"`
	} `json:"Foundation"`
}

type fetchOpts struct {
	url          string
	foundationID string
	pageSize     int
	interval     time.Duration
	httpOpts     []netutil.HTTPOpt
}

type FetchOpt func(*fetchOpts) error

func WithURL(u string) FetchOpt {
	return func(o *fetchOpts) error {
		o.url = u
		return nil
	}
}

func WithPageSize(n int) FetchOpt {
	return func(o *fetchOpts) error {
		o.pageSize = n
		return nil
	}
}

// WithInterval sets the pause between two page requests.
func WithInterval(d time.Duration) FetchOpt {
	return func(o *fetchOpts) error {
		o.interval = d
		return nil
	}
}

func WithHTTPOpts(opts ...netutil.HTTPOpt) FetchOpt {
	return func(o *fetchOpts) error {
		o.httpOpts = append(o.httpOpts, opts...)
		return nil
	}
}

// Fetch pages through the project-service and builds the registry of the CNCF projects.
// Active projects are grouped by category; projects in formation are forming;
// every other status is archived.
func Fetch(ctx context.Context, token string, o ...FetchOpt) (*Registry, error) {
	opts := fetchOpts{
		url:          URL,
		foundationID: FoundationIDCNCF,
		pageSize:     DefaultPageSize,
		interval:     DefaultInterval,
	}
	for _, f := range o {
		if err := f(&opts); err != nil {
			return nil, err
		}
	}
	httpOpts := append([]netutil.HTTPOpt{
		netutil.WithBearerToken(token),
		netutil.WithHeader("Accept", "application/json"),
		netutil.WithHeader("User-Agent", "lifecycle-audit"),
		netutil.WithTimeout(30 * time.Second),
	}, opts.httpOpts...)

	var active, forming, archived Records
	for offset := 0; ; {
		q := url.Values{
			"offset": {strconv.Itoa(offset)},
			"limit":  {strconv.Itoa(opts.pageSize)},
		}
		b, err := netutil.Get(ctx, opts.url, append(httpOpts, netutil.WithQuery(q))...)
		if err != nil {
			return nil, err
		}
		var p page
		if err = json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
		if len(p.Data) == 0 {
			break
		}
		slog.DebugContext(ctx, "fetched a page of projects", "offset", offset, "count", len(p.Data))
		for i, raw := range p.Data {
			var ap apiProject
			if err = json.Unmarshal(raw, &ap); err != nil {
				slog.DebugContext(ctx, "skipping a malformed project", "offset", offset+i, "error", err)
				continue
			}
			if ap.Foundation.ID != opts.foundationID {
				continue
			}
			switch ap.Status {
			case statusActive:
				active = append(active, Record{
					Name:          ap.Name,
					Slug:          ap.Slug,
					Category:      ap.Category,
					Status:        ap.Status,
					ProjectLogo:   ap.ProjectLogo,
					RepositoryURL: ap.RepositoryURL,
				})
			case statusForming:
				forming = append(forming, Record{
					Name:          ap.Name,
					Status:        ap.Status,
					ProjectLogo:   ap.ProjectLogo,
					RepositoryURL: ap.RepositoryURL,
				})
			default:
				archived = append(archived, Record{
					Name:          ap.Name,
					Category:      ap.Category,
					Status:        ap.Status,
					ProjectLogo:   ap.ProjectLogo,
					RepositoryURL: ap.RepositoryURL,
				})
			}
		}
		offset += len(p.Data)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.interval):
		}
	}

	slices.SortStableFunc(active, func(a, b Record) int {
		return cmp.Or(
			cmp.Compare(categoryRank(a.Category), categoryRank(b.Category)),
			compareNames(a, b),
		)
	})
	slices.SortStableFunc(forming, compareNames)
	slices.SortStableFunc(archived, compareNames)

	r := &Registry{
		Source:           SourceName,
		FoundationID:     opts.foundationID,
		FormingProjects:  forming,
		ArchivedProjects: archived,
	}
	for _, name := range ActiveCategories {
		cat := Category{Name: name}
		for _, rec := range active {
			if rec.Category == name {
				cat.Records = append(cat.Records, rec)
			}
		}
		r.Categories = append(r.Categories, cat)
	}
	return r, nil
}

func compareNames(a, b Record) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// categoryRank orders TAGs first and unknown categories last.
func categoryRank(category string) int {
	switch category {
	case "TAG":
		return 1
	case "Graduated":
		return 2
	case "Incubating":
		return 3
	case "Sandbox":
		return 4
	}
	return 99
}
