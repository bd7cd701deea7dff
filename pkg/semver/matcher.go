package semver

import (
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
)

// MatcherKind tells how a matcher constrains versions
type MatcherKind int

const (
	Wildcard MatcherKind = iota
	Caret
	Tilde
	Exact
)

func (k MatcherKind) String() string {
	switch k {
	case Caret:
		return "caret"
	case Tilde:
		return "tilde"
	case Exact:
		return "exact"
	default:
		return "wildcard"
	}
}

// Matcher is a parsed version range expression
type Matcher struct {
	Kind    MatcherKind
	Version Version
	source  string
}

// Any matches every version
var Any = Matcher{Kind: Wildcard, source: "*"}

// ParseMatcher parses "*", "^v", "~v" or an exact "v"
func ParseMatcher(text string) (Matcher, error) {
	if text == "*" {
		return Any, nil
	}

	kind := Exact
	rest := text
	switch {
	case strings.HasPrefix(text, "^"):
		kind, rest = Caret, text[1:]
	case strings.HasPrefix(text, "~"):
		kind, rest = Tilde, text[1:]
	}

	v, err := ParseVersion(rest)
	if err != nil {
		return Matcher{}, errors.Wrapf(err, errors.ErrInvalidMatcherFormat, "invalid version matcher %q", text).
			WithDetail("matcher", text)
	}

	return Matcher{Kind: kind, Version: v, source: text}, nil
}

// MustParseMatcher is like ParseMatcher but panics on malformed input
func MustParseMatcher(text string) Matcher {
	m, err := ParseMatcher(text)
	if err != nil {
		panic(err)
	}
	return m
}

// Range returns the half-open interval [min, max) the matcher accepts.
// constrained is false for the wildcard. For exact matchers min == max and
// only that version is accepted.
func (m Matcher) Range() (min, max Version, constrained bool) {
	switch m.Kind {
	case Caret:
		return m.Version, Version{Major: m.Version.Major + 1}, true
	case Tilde:
		return m.Version, Version{Major: m.Version.Major, Minor: m.Version.Minor + 1}, true
	case Exact:
		return m.Version, m.Version, true
	default:
		return Version{}, Version{}, false
	}
}

// Matches reports whether v falls inside the matcher's range
func (m Matcher) Matches(v Version) bool {
	min, max, constrained := m.Range()
	if !constrained {
		return true
	}
	if m.Kind == Exact {
		return Compare(v, min) == Equal
	}
	return Compare(v, min) != Lesser && Compare(v, max) == Lesser
}

// String returns the text the matcher was parsed from
func (m Matcher) String() string {
	if m.source == "" {
		switch m.Kind {
		case Wildcard:
			return "*"
		case Caret:
			return "^" + m.Version.String()
		case Tilde:
			return "~" + m.Version.String()
		default:
			return m.Version.String()
		}
	}
	return m.source
}

// MarshalText implements encoding.TextMarshaler
func (m Matcher) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Matcher) UnmarshalText(text []byte) error {
	parsed, err := ParseMatcher(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
