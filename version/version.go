package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an immutable major.minor.patch value with an optional
// pre-release tag. It is used for ordering and display only; definitions
// carry it to record the release a described member first appeared in.
type Version struct {
	major int
	minor int
	patch int
	pre   string
}

// New builds a release version.
func New(major, minor, patch int) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// NewPre builds a pre-release version. Pre-release versions order before
// the release with the same numeric triple.
func NewPre(major, minor, patch int, pre string) Version {
	return Version{major: major, minor: minor, patch: patch, pre: pre}
}

// Parse reads "major.minor.patch" with an optional "-pre" suffix,
// e.g. "1.4.0" or "2.0.0-rc1".
func Parse(s string) (Version, error) {
	core := s
	var pre string
	if i := strings.IndexByte(s, '-'); i >= 0 {
		core, pre = s[:i], s[i+1:]
		if pre == "" {
			return Version{}, fmt.Errorf("invalid version %q: empty pre-release tag", s)
		}
	}

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q: bad component %q", s, p)
		}
		nums[i] = n
	}

	return Version{major: nums[0], minor: nums[1], patch: nums[2], pre: pre}, nil
}

// MustParse is Parse for static registry literals; it panics on bad input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) Major() int  { return v.major }
func (v Version) Minor() int  { return v.minor }
func (v Version) Patch() int  { return v.patch }
func (v Version) Pre() string { return v.pre }

// IsZero reports whether v is the zero value. The zero version is not a
// valid "since" marker.
func (v Version) IsZero() bool {
	return v.major == 0 && v.minor == 0 && v.patch == 0 && v.pre == ""
}

// Compare returns -1, 0 or 1. A pre-release orders before the release
// carrying the same numeric triple; two pre-releases compare lexically.
func (v Version) Compare(o Version) int {
	if c := cmp(v.major, o.major); c != 0 {
		return c
	}
	if c := cmp(v.minor, o.minor); c != 0 {
		return c
	}
	if c := cmp(v.patch, o.patch); c != 0 {
		return c
	}
	switch {
	case v.pre == o.pre:
		return 0
	case v.pre == "":
		return 1
	case o.pre == "":
		return -1
	}
	return strings.Compare(v.pre, o.pre)
}

func (v Version) Less(o Version) bool  { return v.Compare(o) < 0 }
func (v Version) Equal(o Version) bool { return v == o }

func (v Version) String() string {
	if v.pre != "" {
		return fmt.Sprintf("%d.%d.%d-%s", v.major, v.minor, v.patch, v.pre)
	}
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
