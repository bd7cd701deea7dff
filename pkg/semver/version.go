package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arthur-debert/nox/pkg/errors"
)

var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+){0,2}$`)

// Version is a {major, minor, patch} triple
type Version struct {
	Major int
	Minor int
	Patch int
}

// Comparison is the result of comparing two versions
type Comparison int

const (
	Lesser Comparison = iota - 1
	Equal
	Greater
)

func (c Comparison) String() string {
	switch c {
	case Lesser:
		return "Lesser"
	case Greater:
		return "Greater"
	default:
		return "Equal"
	}
}

// ParseVersion parses "N", "N.N" or "N.N.N"
func ParseVersion(text string) (Version, error) {
	if !versionPattern.MatchString(text) {
		return Version{}, errors.Newf(errors.ErrInvalidVersionFormat, "invalid version %q", text).
			WithDetail("version", text)
	}

	var parts [3]int
	for i, field := range strings.Split(text, ".") {
		n, err := strconv.Atoi(field)
		if err != nil {
			return Version{}, errors.Wrapf(err, errors.ErrInvalidVersionFormat, "invalid version %q", text).
				WithDetail("version", text)
		}
		parts[i] = n
	}

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// MustParseVersion is like ParseVersion but panics on malformed input.
// Intended for package definitions compiled into the binary.
func MustParseVersion(text string) Version {
	v, err := ParseVersion(text)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare orders a and b on (major, minor, patch)
func Compare(a, b Version) Comparison {
	switch {
	case a.Major != b.Major:
		return sign(a.Major - b.Major)
	case a.Minor != b.Minor:
		return sign(a.Minor - b.Minor)
	default:
		return sign(a.Patch - b.Patch)
	}
}

func sign(d int) Comparison {
	switch {
	case d < 0:
		return Lesser
	case d > 0:
		return Greater
	default:
		return Equal
	}
}

// String renders the version as "major.minor.patch"
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MarshalText implements encoding.TextMarshaler
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
