package registry

import (
	"sort"

	"github.com/gobwas/glob"
)

// Match returns the sorted registered names matching a glob pattern, for
// example "github.com/acme/models.*". An invalid pattern matches nothing.
func Match(pattern string) []string {
	g, err := glob.Compile(pattern)
	if err != nil {
		log.WithError(err).WithField("pattern", pattern).Debug("bad match pattern")
		return nil
	}

	typesMu.RLock()
	defer typesMu.RUnlock()
	var out []string
	for name := range types {
		if g.Match(name) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
