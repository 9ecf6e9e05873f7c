package definition

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/reflectkit/lazy"
	"github.com/Konsultn-Engineering/reflectkit/registry"
	"github.com/Konsultn-Engineering/reflectkit/utils"
	"github.com/Konsultn-Engineering/reflectkit/version"
)

var log = logrus.WithField("component", "reflectkit.definition")

var (
	// ErrNotPresent reports access through a definition whose member never
	// resolved.
	ErrNotPresent = errors.New("member not present")
	// ErrArgument reports an instance or value incompatible with the
	// described member.
	ErrArgument = errors.New("invalid argument")
)

// Kind tags which member a Definition describes.
type Kind int

const (
	KindField Kind = iota
	KindConstructor
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindConstructor:
		return "constructor"
	case KindMethod:
		return "method"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Definition describes one reflective member of a registered type: which
// type declares it, what it is called, the release it appeared in and
// whether it is deprecated. The description is immutable; the resolved
// type, member and parameter types are derived lazily, cached after the
// first lookup and never retried — a miss stays a miss for the lifetime of
// the instance, even if the registry gains the name later.
type Definition struct {
	kind        Kind
	since       version.Version
	deprecation *Deprecation
	className   string
	name        string
	paramNames  []string

	// Cells are shared pointers so Definition values stay copyable.
	class  *lazy.Cell[resolvedClass]
	member *lazy.Cell[resolvedMember]
	params *lazy.Cell[[]reflect.Type]
}

type resolvedClass struct {
	typ reflect.Type
	ok  bool
}

type resolvedMember struct {
	member registry.Member
	ok     bool
}

// newDefinition validates the defining attributes eagerly and fails fast.
func newDefinition(kind Kind, since version.Version, dep *Deprecation, className, name string, paramNames []string) (Definition, error) {
	if since.IsZero() {
		return Definition{}, fmt.Errorf("%s %s.%s: since version is required", kind, className, name)
	}
	if strings.TrimSpace(className) == "" {
		return Definition{}, fmt.Errorf("%s %q: class name is required", kind, name)
	}
	if strings.TrimSpace(name) == "" {
		return Definition{}, fmt.Errorf("%s on %s: member name is required", kind, className)
	}
	params := make([]string, len(paramNames))
	for i, p := range paramNames {
		if strings.TrimSpace(p) == "" {
			return Definition{}, fmt.Errorf("%s %s.%s: parameter name %d is blank", kind, className, name, i)
		}
		params[i] = p
	}

	return Definition{
		kind:        kind,
		since:       since,
		deprecation: dep,
		className:   className,
		name:        name,
		paramNames:  params,
		class:       &lazy.Cell[resolvedClass]{},
		member:      &lazy.Cell[resolvedMember]{},
		params:      &lazy.Cell[[]reflect.Type]{},
	}, nil
}

func (d *Definition) Kind() Kind                { return d.kind }
func (d *Definition) Since() version.Version    { return d.since }
func (d *Definition) Deprecation() *Deprecation { return d.deprecation }
func (d *Definition) IsDeprecated() bool        { return d.deprecation != nil }
func (d *Definition) ClassName() string         { return d.className }
func (d *Definition) Name() string              { return d.name }

// DeclaredClassName names the type the member belongs to.
func (d *Definition) DeclaredClassName() string { return d.className }

// ResolvedClass resolves the declaring type through the registry on first
// call. The result, present or absent, is cached permanently.
func (d *Definition) ResolvedClass() (reflect.Type, bool) {
	rc := d.class.Get(func() resolvedClass {
		t, ok := registry.Resolve(d.className)
		if !ok {
			log.WithField("type", d.className).Trace("declaring type unresolved")
		}
		return resolvedClass{typ: t, ok: ok}
	})
	return rc.typ, rc.ok
}

// DeclaredClass is ResolvedClass under the member-centric name.
func (d *Definition) DeclaredClass() (reflect.Type, bool) {
	return d.ResolvedClass()
}

// Member resolves the described member on first call using the kind's
// lookup strategy. Same never-retry cache policy as ResolvedClass.
func (d *Definition) Member() (registry.Member, bool) {
	rm := d.member.Get(func() resolvedMember {
		m, ok := resolvers[d.kind](d)
		if !ok {
			log.WithFields(logrus.Fields{
				"kind":   d.kind.String(),
				"type":   d.className,
				"member": d.name,
			}).Trace("member unresolved")
		}
		return resolvedMember{member: m, ok: ok}
	})
	return rm.member, rm.ok
}

// IsPresent reports whether the member resolves on this runtime.
func (d *Definition) IsPresent() bool {
	_, ok := d.Member()
	return ok
}

// Equal compares the defining attributes only. The resolution caches are
// derived state and never participate, so a resolved definition equals an
// unresolved one built from the same inputs.
func (d *Definition) Equal(o *Definition) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.kind != o.kind ||
		!d.since.Equal(o.since) ||
		!d.deprecation.Equal(o.deprecation) ||
		d.className != o.className ||
		d.name != o.name ||
		len(d.paramNames) != len(o.paramNames) {
		return false
	}
	for i := range d.paramNames {
		if d.paramNames[i] != o.paramNames[i] {
			return false
		}
	}
	return true
}

// HashCode fingerprints the same attributes Equal compares.
func (d *Definition) HashCode() uint64 {
	h := utils.Mix64(uint64(d.kind), utils.U64(d.since.String()))
	if d.deprecation != nil {
		h = utils.Mix64(h, utils.U64(d.deprecation.String()))
	}
	h = utils.MixStrings(h, d.className, d.name)
	return utils.MixStrings(h, d.paramNames...)
}

// String renders the definition for diagnostics, forcing resolution of the
// declaring type and the member.
func (d *Definition) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s{since=%s", d.kind, d.since)
	if d.deprecation != nil {
		fmt.Fprintf(&b, ", %s", d.deprecation)
	}
	if t, ok := d.ResolvedClass(); ok {
		fmt.Fprintf(&b, ", class=%s(%s)", d.className, t)
	} else {
		fmt.Fprintf(&b, ", class=%s(absent)", d.className)
	}
	if m, ok := d.Member(); ok {
		fmt.Fprintf(&b, ", member=%s(%s)", d.name, m)
	} else {
		fmt.Fprintf(&b, ", member=%s(absent)", d.name)
	}
	b.WriteByte('}')
	return b.String()
}
