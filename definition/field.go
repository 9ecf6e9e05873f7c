package definition

import (
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/reflectkit/access"
	"github.com/Konsultn-Engineering/reflectkit/registry"
	"github.com/Konsultn-Engineering/reflectkit/version"
)

// FieldDefinition describes a struct field by declaring type name and field
// name, and provides typed access to it once resolved. Unexported fields
// are reached through the accessibility bridge; every read and write
// funnels through the access controller first.
type FieldDefinition struct {
	Definition
}

// NewField builds a field definition. since, className and fieldName are
// required; dep may be nil.
func NewField(since version.Version, dep *Deprecation, className, fieldName string) (*FieldDefinition, error) {
	d, err := newDefinition(KindField, since, dep, className, fieldName, nil)
	if err != nil {
		return nil, err
	}
	return &FieldDefinition{Definition: d}, nil
}

// MustField is NewField for static registry tables; it panics on invalid
// input.
func MustField(since version.Version, dep *Deprecation, className, fieldName string) *FieldDefinition {
	d, err := NewField(since, dep, className, fieldName)
	if err != nil {
		panic(err)
	}
	return d
}

// Field returns the resolved field handle.
func (d *FieldDefinition) Field() (*registry.Field, bool) {
	m, ok := d.Member()
	if !ok {
		return nil, false
	}
	f, ok := m.(*registry.Field)
	return f, ok
}

// Get reads the field from instance, which may be a value or pointer of the
// declaring type.
func (d *FieldDefinition) Get(instance any) (any, error) {
	f, ok := d.Field()
	if !ok {
		return nil, fmt.Errorf("%w: field %s.%s", ErrNotPresent, d.className, d.name)
	}
	fv, err := d.fieldValue(f, instance, false)
	if err != nil {
		return nil, err
	}
	return fv.Interface(), nil
}

// Set writes value into the field and returns the previous value. instance
// must be a pointer to the declaring type. Writing a value equal to the
// current one skips the underlying store entirely.
func (d *FieldDefinition) Set(instance any, value any) (any, error) {
	f, ok := d.Field()
	if !ok {
		return nil, fmt.Errorf("%w: field %s.%s", ErrNotPresent, d.className, d.name)
	}
	fv, err := d.fieldValue(f, instance, true)
	if err != nil {
		return nil, err
	}

	prev := fv.Interface()
	if value != nil && reflect.DeepEqual(prev, value) {
		return prev, nil
	}

	var nv reflect.Value
	if value == nil {
		nv = reflect.Zero(f.Type())
	} else {
		nv = reflect.ValueOf(value)
		switch {
		case nv.Type().AssignableTo(f.Type()):
		case nv.CanConvert(f.Type()):
			nv = nv.Convert(f.Type())
		default:
			return nil, fmt.Errorf("%w: cannot assign %s to %s", ErrArgument, nv.Type(), f)
		}
	}
	fv.Set(nv)
	return prev, nil
}

// fieldValue validates the instance, funnels through the access controller
// and returns the bridged field value. Writes require a pointer instance;
// reads of a plain value go through an addressable copy.
func (d *FieldDefinition) fieldValue(f *registry.Field, instance any, forWrite bool) (reflect.Value, error) {
	if instance == nil {
		return reflect.Value{}, fmt.Errorf("%w: nil instance for %s", ErrArgument, f)
	}

	rv := reflect.ValueOf(instance)
	switch {
	case rv.Kind() == reflect.Pointer:
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: nil instance for %s", ErrArgument, f)
		}
		if rv.Type().Elem() != f.DeclaringType() {
			return reflect.Value{}, fmt.Errorf("%w: instance %s is not %s", ErrArgument, rv.Type().Elem(), f.DeclaringType())
		}
	case forWrite:
		return reflect.Value{}, fmt.Errorf("%w: set requires a pointer to %s", ErrArgument, f.DeclaringType())
	case rv.Type() != f.DeclaringType():
		return reflect.Value{}, fmt.Errorf("%w: instance %s is not %s", ErrArgument, rv.Type(), f.DeclaringType())
	default:
		// Reads of a plain value work on an addressable copy.
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		rv = ptr
	}

	if !access.TrySetAccessible(f) {
		return reflect.Value{}, fmt.Errorf("%w: %s", access.ErrAccessDenied, f)
	}
	return f.Bridge(rv.UnsafePointer()), nil
}
