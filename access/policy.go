package access

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

// Policy seals package paths against reflective bridging. A member declared
// in a sealed package cannot be made accessible unless its package also
// matches an open pattern. Operators install a policy via SetPolicy or by
// pointing REFLECTKIT_ACCESS_POLICY at a TOML file:
//
//	[policy]
//	name   = "corp-default"
//	sealed = ["github.com/acme/secrets*"]
//	open   = ["github.com/acme/secrets/public"]
type Policy struct {
	Name   string   `toml:"name"`
	Sealed []string `toml:"sealed"`
	Open   []string `toml:"open"`

	sealed []glob.Glob
	open   []glob.Glob
}

type policyFile struct {
	Policy Policy `toml:"policy"`
}

var (
	policyMu sync.RWMutex
	policy   *Policy
)

func init() {
	if path := os.Getenv("REFLECTKIT_ACCESS_POLICY"); path != "" {
		if err := LoadPolicy(path); err != nil {
			log.WithError(err).WithField("path", path).Warn("access policy not loaded")
		}
	}
}

// LoadPolicy reads a TOML policy file and installs it process-wide.
func LoadPolicy(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var pf policyFile
	if _, err := toml.Decode(string(data), &pf); err != nil {
		return fmt.Errorf("decode access policy: %w", err)
	}
	return SetPolicy(&pf.Policy)
}

// SetPolicy installs p; nil clears any active policy. A pattern that does
// not compile rejects the whole policy.
func SetPolicy(p *Policy) error {
	if p == nil {
		policyMu.Lock()
		policy = nil
		policyMu.Unlock()
		return nil
	}
	if p.Name == "" {
		p.Name = "default"
	}

	compile := func(patterns []string) ([]glob.Glob, error) {
		out := make([]glob.Glob, 0, len(patterns))
		for _, pat := range patterns {
			g, err := glob.Compile(pat)
			if err != nil {
				return nil, fmt.Errorf("policy %q: pattern %q: %w", p.Name, pat, err)
			}
			out = append(out, g)
		}
		return out, nil
	}

	var err error
	if p.sealed, err = compile(p.Sealed); err != nil {
		return err
	}
	if p.open, err = compile(p.Open); err != nil {
		return err
	}

	policyMu.Lock()
	policy = p
	policyMu.Unlock()
	log.WithField("policy", p.Name).Debug("access policy installed")
	return nil
}

// sealDenial returns the denial error when pkg is sealed and not opened,
// nil otherwise. The message follows the fixed template the diagnostic
// parser understands.
func sealDenial(pkg string) error {
	policyMu.RLock()
	p := policy
	policyMu.RUnlock()
	if p == nil || pkg == "" {
		return nil
	}
	for _, o := range p.open {
		if o.Match(pkg) {
			return nil
		}
	}
	for _, s := range p.sealed {
		if s.Match(pkg) {
			return fmt.Errorf("%w: package %q is sealed by policy %q", ErrAccessDenied, pkg, p.Name)
		}
	}
	return nil
}
