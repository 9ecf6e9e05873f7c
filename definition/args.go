package definition

import (
	"fmt"
	"reflect"
)

// convertArgs checks arity and adapts each argument to the expected
// parameter type, converting where Go allows it. Mismatches are argument
// errors, never panics.
func convertArgs(what string, params []reflect.Type, args []any) ([]reflect.Value, error) {
	if len(args) != len(params) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgument, what, len(params), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		want := params[i]
		if a == nil {
			switch want.Kind() {
			case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
				in[i] = reflect.Zero(want)
				continue
			}
			return nil, fmt.Errorf("%w: %s argument %d: nil for %s", ErrArgument, what, i, want)
		}
		v := reflect.ValueOf(a)
		switch {
		case v.Type().AssignableTo(want):
		case v.CanConvert(want):
			v = v.Convert(want)
		default:
			return nil, fmt.Errorf("%w: %s argument %d: %s is not %s", ErrArgument, what, i, v.Type(), want)
		}
		in[i] = v
	}
	return in, nil
}
