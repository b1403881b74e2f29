// Package alias generates lookup keys for project names.
//
// Sources spell project names differently ("Open Policy Agent (OPA)",
// "open-policy-agent", "OpenPolicyAgent", "opa"). A key is a normalized form
// of one spelling; [Generate] expands a name into every key that another
// source may plausibly use for the same project.
package alias

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize returns the key for name: accents folded, lowercased,
// underscores turned into spaces, whitespace collapsed.
// An empty result means "no key".
func Normalize(name string) string {
	s := strings.ReplaceAll(name, "³", "3")
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

// CommonSuffixes are generic words that some sources append to a project name.
var CommonSuffixes = []string{" project", " specification", " operator", " framework", " container linux"}

var (
	parenthetical      = regexp.MustCompile(`\s*\([^)]*\)`)
	parentheticalInner = regexp.MustCompile(`\(([^)]*)\)`)
	compositeSep       = regexp.MustCompile(`\s*(?:/|,|&| and )\s*`)
)

// StripParentheticals removes every "(...)" group from s.
func StripParentheticals(s string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(s, ""))
}

// ParentheticalTokens returns the normalized words inside the "(...)" groups of s,
// split on whitespace, '/' and '-'.
func ParentheticalTokens(s string) []string {
	var res []string
	for _, m := range parentheticalInner.FindAllStringSubmatch(s, -1) {
		inner := strings.NewReplacer("/", " ", "-", " ").Replace(m[1])
		for _, f := range strings.Fields(inner) {
			if k := Normalize(f); k != "" {
				res = append(res, k)
			}
		}
	}
	return res
}

// StripSuffixes returns s without each of [CommonSuffixes] it ends with.
func StripSuffixes(s string) []string {
	var res []string
	for _, suf := range CommonSuffixes {
		if strings.HasSuffix(s, suf) {
			res = append(res, strings.TrimSpace(strings.TrimSuffix(s, suf)))
		}
	}
	return res
}

// HyphenSpaceVariants returns s with hyphens turned into spaces and
// with spaces turned into hyphens.
func HyphenSpaceVariants(s string) []string {
	if s == "" {
		return nil
	}
	return []string{
		strings.Join(strings.Fields(strings.ReplaceAll(s, "-", " ")), " "),
		strings.ReplaceAll(s, " ", "-"),
	}
}

// SplitComposite splits s on '/', ',', '&' and the word "and".
func SplitComposite(s string) []string {
	var res []string
	for _, p := range compositeSep.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

// Compact keeps only the letters and digits of s.
func Compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// CamelToWords inserts a space at every lower-to-upper (or digit-to-upper) transition.
func CamelToWords(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// maxPasses bounds the expansion; the rule set converges well before it.
const maxPasses = 8

// Generate returns the deduplicated keys of name, followed by the keys of
// each extra slug. The result is closed under [HyphenSpaceVariants],
// [Compact] and camel splitting.
// Generate returns nil if name has no key.
func Generate(name string, extra ...string) []string {
	base := Normalize(name)
	if base == "" {
		return nil
	}
	var set Set
	set.Add(base)
	set.Add(Normalize(CamelToWords(name)))
	set.Add(Normalize(StripParentheticals(name)))
	for _, tok := range ParentheticalTokens(name) {
		set.Add(tok)
	}
	set.expand()
	for _, e := range extra {
		if set.Add(Normalize(e)) {
			set.expand()
		}
	}
	return set.Keys()
}

// Set is an insertion-ordered set of keys. The zero value is ready to use.
type Set struct {
	keys []string
	seen map[string]struct{}
}

// Add inserts k unless it is empty or already present, and reports whether it was inserted.
func (s *Set) Add(k string) bool {
	if k == "" {
		return false
	}
	if _, ok := s.seen[k]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	s.seen[k] = struct{}{}
	s.keys = append(s.keys, k)
	return true
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string {
	return s.keys
}

// Len returns the number of keys.
func (s *Set) Len() int {
	return len(s.keys)
}

// expand applies the rewrite rules until no rule adds a key.
func (s *Set) expand() {
	for range maxPasses {
		n := s.Len()
		s.each(func(c string) {
			for _, trimmed := range StripSuffixes(c) {
				s.Add(trimmed)
				if trimmed != "" {
					s.Add(trimmed + " project")
				}
			}
		})
		s.each(func(c string) {
			for _, v := range HyphenSpaceVariants(c) {
				s.Add(v)
			}
		})
		s.each(func(c string) {
			for _, p := range SplitComposite(c) {
				s.Add(p)
			}
		})
		s.each(func(c string) {
			s.Add(Compact(c))
		})
		s.each(func(c string) {
			s.Add(Normalize(CamelToWords(c)))
		})
		if s.Len() == n {
			return
		}
	}
}

// each calls f for every key present when each is called.
func (s *Set) each(f func(string)) {
	for _, c := range s.keys[:len(s.keys):len(s.keys)] {
		f(c)
	}
}
