package filter

import (
	"regexp"
)

// Kind describes how a rule matches a path.
type Kind string

const (
	KindSuffix  Kind = "suffix"
	KindSegment Kind = "segment"
)

// Rule is a single exclusion pattern.
type Rule struct {
	Kind    Kind
	Pattern string
	re      *regexp.Regexp
}

// Matches reports whether path is excluded by the rule.
func (r Rule) Matches(path string) bool {
	return r.re.MatchString(path)
}

func suffix(s string) Rule {
	return Rule{Kind: KindSuffix, Pattern: s, re: regexp.MustCompile(regexp.QuoteMeta(s) + `$`)}
}

func segment(s string) Rule {
	p := "/" + s + "/"
	return Rule{Kind: KindSegment, Pattern: p, re: regexp.MustCompile(regexp.QuoteMeta(p))}
}

var rules = []Rule{
	suffix(".graphql"),
	segment("test-utils"),
	segment("generated"),
	suffix("CHANGELOG.md"),
	suffix(".release-manifest.json"),
}

// Rules returns a copy of the exclusion table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// ShouldInclude returns true if path matches none of the exclusion rules.
func ShouldInclude(path string) bool {
	for _, r := range rules {
		if r.Matches(path) {
			return false
		}
	}
	return true
}

// Apply returns the paths that survive exclusion, in their original order.
// The result is never nil.
func Apply(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if ShouldInclude(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Describe renders the rule table as human-readable lines for usage text.
func Describe() []string {
	lines := make([]string, 0, len(rules))
	for _, r := range rules {
		switch r.Kind {
		case KindSuffix:
			lines = append(lines, "files ending in "+r.Pattern)
		case KindSegment:
			lines = append(lines, "files under a "+r.Pattern+" directory")
		}
	}
	return lines
}
