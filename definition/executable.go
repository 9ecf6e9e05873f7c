package definition

import (
	"reflect"

	"github.com/Konsultn-Engineering/reflectkit/registry"
)

// ParameterClassNames returns a copy of the declared parameter type names,
// in order. Empty for field definitions.
func (d *Definition) ParameterClassNames() []string {
	out := make([]string, len(d.paramNames))
	copy(out, d.paramNames)
	return out
}

// ParameterTypes resolves every parameter name through the registry in one
// batch on the first call. Entries for unresolvable names are nil rather
// than a failure; the result always matches ParameterClassNames in length.
// The batch is cached with the same never-retry policy as the other
// resolution caches.
func (d *Definition) ParameterTypes() []reflect.Type {
	resolved := d.params.Get(func() []reflect.Type {
		out := make([]reflect.Type, len(d.paramNames))
		for i, name := range d.paramNames {
			t, ok := registry.Resolve(name)
			if !ok {
				log.WithField("type", name).Trace("parameter type unresolved")
				continue
			}
			out[i] = t
		}
		return out
	})

	out := make([]reflect.Type, len(resolved))
	copy(out, resolved)
	return out
}
