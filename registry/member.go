package registry

import (
	"fmt"
	"go/token"
	"reflect"
	"sync/atomic"
	"unsafe"
)

// Member is a resolved handle to a field, method or constructor. The
// accessible flag is the per-member gate the access package toggles before
// bridged reads and writes; it starts unset for every member.
type Member interface {
	Name() string
	DeclaringType() reflect.Type
	Exported() bool
	Accessible() bool
	// MarkAccessible sets the accessible flag and returns its previous state.
	MarkAccessible() bool
	String() string
}

// accessFlag is embedded by every concrete member handle.
type accessFlag struct {
	accessible atomic.Bool
}

func (f *accessFlag) Accessible() bool     { return f.accessible.Load() }
func (f *accessFlag) MarkAccessible() bool { return f.accessible.Swap(true) }

// Field is a handle to a field declared directly on a struct type,
// exported or not.
type Field struct {
	accessFlag
	declaring reflect.Type
	sf        reflect.StructField
}

func (f *Field) Name() string                { return f.sf.Name }
func (f *Field) DeclaringType() reflect.Type { return f.declaring }
func (f *Field) Exported() bool              { return f.sf.IsExported() }
func (f *Field) Type() reflect.Type          { return f.sf.Type }
func (f *Field) Offset() uintptr             { return f.sf.Offset }

func (f *Field) String() string {
	return fmt.Sprintf("field %s.%s %s", f.declaring, f.sf.Name, f.sf.Type)
}

// Bridge returns an addressable view of the field inside the struct at
// structPtr, bypassing the exported-only restriction of the plain reflect
// path. structPtr must point at a live value of the declaring type.
func (f *Field) Bridge(structPtr unsafe.Pointer) reflect.Value {
	return reflect.NewAt(f.sf.Type, unsafe.Add(structPtr, f.sf.Offset)).Elem()
}

// Method is a handle to an exported method reachable on T or *T. Unexported
// methods are invisible to the reflect API and therefore never resolve.
type Method struct {
	accessFlag
	declaring reflect.Type
	m         reflect.Method
}

func (m *Method) Name() string                { return m.m.Name }
func (m *Method) DeclaringType() reflect.Type { return m.declaring }
func (m *Method) Exported() bool              { return token.IsExported(m.m.Name) }

// Func returns the method as a function whose first argument is the
// receiver.
func (m *Method) Func() reflect.Value { return m.m.Func }

// Params returns the parameter types, receiver excluded.
func (m *Method) Params() []reflect.Type {
	mt := m.m.Func.Type()
	out := make([]reflect.Type, mt.NumIn()-1)
	for i := range out {
		out[i] = mt.In(i + 1)
	}
	return out
}

func (m *Method) String() string {
	return fmt.Sprintf("method %s.%s %s", m.declaring, m.m.Name, m.m.Func.Type())
}

// Ctor is a handle to a registered factory function producing the declaring
// type.
type Ctor struct {
	accessFlag
	declaring reflect.Type
	name      string
	fn        reflect.Value
	params    []reflect.Type
	withErr   bool
}

func (c *Ctor) Name() string                { return c.name }
func (c *Ctor) DeclaringType() reflect.Type { return c.declaring }
func (c *Ctor) Exported() bool              { return token.IsExported(c.name) }

// Func returns the underlying factory function.
func (c *Ctor) Func() reflect.Value { return c.fn }

// WithErr reports whether the factory has a trailing error result.
func (c *Ctor) WithErr() bool { return c.withErr }

// Params returns a copy of the factory parameter types.
func (c *Ctor) Params() []reflect.Type {
	out := make([]reflect.Type, len(c.params))
	copy(out, c.params)
	return out
}

func (c *Ctor) String() string {
	return fmt.Sprintf("constructor %s for %s", c.name, c.declaring)
}
