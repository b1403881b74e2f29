// Package github parses GitHub URLs.
package github

import (
	"fmt"
	"net/url"
	"strings"
)

// Path is an organization, or an organization and a repository, on github.com.
type Path struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo,omitempty"`
}

// ParsePath parses "https://github.com/<OWNER>[/<REPO>[/...]]".
// The result is lowercased and a ".git" suffix of the repository is removed.
func ParsePath(urlStr string) (*Path, error) {
	s := strings.ToLower(strings.TrimSpace(urlStr))
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return nil, fmt.Errorf("invalid GitHub URL: %q", urlStr)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub URL: %q: %w", urlStr, err)
	}
	if u.Host != "github.com" {
		return nil, fmt.Errorf("invalid GitHub URL: %q: not github.com", urlStr)
	}
	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("invalid GitHub URL: %q: no owner", urlStr)
	}
	p := &Path{Owner: parts[0]}
	if len(parts) >= 2 {
		p.Repo = strings.TrimSuffix(parts[1], ".git")
	}
	return p, nil
}

// Keys returns "<OWNER>" and, for a repository, "<OWNER>/<REPO>".
func (p *Path) Keys() []string {
	res := []string{p.Owner}
	if p.Repo != "" {
		res = append(res, p.Owner+"/"+p.Repo)
	}
	return res
}
