package definition

import (
	"fmt"

	"github.com/Konsultn-Engineering/reflectkit/access"
	"github.com/Konsultn-Engineering/reflectkit/registry"
	"github.com/Konsultn-Engineering/reflectkit/version"
)

// ConstructorDefinition describes a registered factory function by the
// declaring type name, factory name and parameter type names.
type ConstructorDefinition struct {
	Definition
}

// NewConstructor builds a constructor definition. The factory must have
// been registered through registry.RegisterConstructor under funcName for
// the member to resolve.
func NewConstructor(since version.Version, dep *Deprecation, className, funcName string, paramClassNames ...string) (*ConstructorDefinition, error) {
	d, err := newDefinition(KindConstructor, since, dep, className, funcName, paramClassNames)
	if err != nil {
		return nil, err
	}
	return &ConstructorDefinition{Definition: d}, nil
}

// MustConstructor is NewConstructor for static registry tables; it panics
// on invalid input.
func MustConstructor(since version.Version, dep *Deprecation, className, funcName string, paramClassNames ...string) *ConstructorDefinition {
	d, err := NewConstructor(since, dep, className, funcName, paramClassNames...)
	if err != nil {
		panic(err)
	}
	return d
}

// Constructor returns the resolved factory handle.
func (d *ConstructorDefinition) Constructor() (*registry.Ctor, bool) {
	m, ok := d.Member()
	if !ok {
		return nil, false
	}
	c, ok := m.(*registry.Ctor)
	return c, ok
}

// New invokes the factory with args and returns the constructed value. A
// factory error result is propagated as-is.
func (d *ConstructorDefinition) New(args ...any) (any, error) {
	c, ok := d.Constructor()
	if !ok {
		return nil, fmt.Errorf("%w: constructor %s.%s", ErrNotPresent, d.className, d.name)
	}
	if !access.TrySetAccessible(c) {
		return nil, fmt.Errorf("%w: %s", access.ErrAccessDenied, c)
	}

	in, err := convertArgs(c.String(), c.Params(), args)
	if err != nil {
		return nil, err
	}

	out := c.Func().Call(in)
	if c.WithErr() && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
