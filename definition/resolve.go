package definition

import (
	"reflect"

	"github.com/Konsultn-Engineering/reflectkit/registry"
)

// resolvers maps each definition kind to its member lookup strategy. An
// unresolved declaring type always yields an absent member.
var resolvers = map[Kind]func(*Definition) (registry.Member, bool){
	KindField:       resolveField,
	KindConstructor: resolveConstructor,
	KindMethod:      resolveMethod,
}

func resolveField(d *Definition) (registry.Member, bool) {
	t, ok := d.ResolvedClass()
	if !ok {
		return nil, false
	}
	f, ok := registry.DeclaredField(t, d.name)
	if !ok {
		return nil, false
	}
	return f, true
}

func resolveConstructor(d *Definition) (registry.Member, bool) {
	t, ok := d.ResolvedClass()
	if !ok {
		return nil, false
	}
	params, ok := d.resolvedParams()
	if !ok {
		return nil, false
	}
	c, ok := registry.Constructor(t, d.name, params)
	if !ok {
		return nil, false
	}
	return c, true
}

func resolveMethod(d *Definition) (registry.Member, bool) {
	t, ok := d.ResolvedClass()
	if !ok {
		return nil, false
	}
	params, ok := d.resolvedParams()
	if !ok {
		return nil, false
	}
	m, ok := registry.DeclaredMethod(t, d.name, params)
	if !ok {
		return nil, false
	}
	return m, true
}

// resolvedParams requires every parameter name to resolve; a single miss
// makes the whole executable unresolvable.
func (d *Definition) resolvedParams() ([]reflect.Type, bool) {
	types := d.ParameterTypes()
	for _, t := range types {
		if t == nil {
			return nil, false
		}
	}
	return types, true
}
