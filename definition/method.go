package definition

import (
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/reflectkit/access"
	"github.com/Konsultn-Engineering/reflectkit/registry"
	"github.com/Konsultn-Engineering/reflectkit/version"
)

// MethodDefinition describes an exported method by declaring type name,
// method name and parameter type names.
type MethodDefinition struct {
	Definition
}

// NewMethod builds a method definition.
func NewMethod(since version.Version, dep *Deprecation, className, methodName string, paramClassNames ...string) (*MethodDefinition, error) {
	d, err := newDefinition(KindMethod, since, dep, className, methodName, paramClassNames)
	if err != nil {
		return nil, err
	}
	return &MethodDefinition{Definition: d}, nil
}

// MustMethod is NewMethod for static registry tables; it panics on invalid
// input.
func MustMethod(since version.Version, dep *Deprecation, className, methodName string, paramClassNames ...string) *MethodDefinition {
	d, err := NewMethod(since, dep, className, methodName, paramClassNames...)
	if err != nil {
		panic(err)
	}
	return d
}

// Method returns the resolved method handle.
func (d *MethodDefinition) Method() (*registry.Method, bool) {
	m, ok := d.Member()
	if !ok {
		return nil, false
	}
	mm, ok := m.(*registry.Method)
	return mm, ok
}

// Invoke calls the method on instance with args and returns every result.
// instance may be a value or pointer of the declaring type; a value
// instance is copied when the method wants a pointer receiver, so mutations
// are then lost to the caller.
func (d *MethodDefinition) Invoke(instance any, args ...any) ([]any, error) {
	m, ok := d.Method()
	if !ok {
		return nil, fmt.Errorf("%w: method %s.%s", ErrNotPresent, d.className, d.name)
	}
	if instance == nil {
		return nil, fmt.Errorf("%w: nil instance for %s", ErrArgument, m)
	}
	if !access.TrySetAccessible(m) {
		return nil, fmt.Errorf("%w: %s", access.ErrAccessDenied, m)
	}

	recv, err := adaptReceiver(reflect.ValueOf(instance), m.Func().Type().In(0))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArgument, m, err)
	}

	in, err := convertArgs(m.String(), m.Params(), args)
	if err != nil {
		return nil, err
	}
	in = append([]reflect.Value{recv}, in...)

	out := m.Func().Call(in)
	results := make([]any, len(out))
	for i, r := range out {
		results[i] = r.Interface()
	}
	return results, nil
}

func adaptReceiver(recv reflect.Value, want reflect.Type) (reflect.Value, error) {
	switch {
	case recv.Type() == want:
		return recv, nil
	case recv.Kind() == reflect.Pointer && recv.Type().Elem() == want:
		if recv.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil instance")
		}
		return recv.Elem(), nil
	case want.Kind() == reflect.Pointer && want.Elem() == recv.Type():
		ptr := reflect.New(recv.Type())
		ptr.Elem().Set(recv)
		return ptr, nil
	}
	return reflect.Value{}, fmt.Errorf("instance %s does not match receiver %s", recv.Type(), want)
}
