package registry

import (
	"fmt"
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Konsultn-Engineering/reflectkit/utils"
)

// fieldCache memoizes declared-field lookups so repeated resolution of the
// same (type, name) pair returns the same handle. Keys mix the declaring
// type's canonical name with the field name.
var fieldCache, _ = lru.New[uint64, *Field](1024)

func fieldKey(t reflect.Type, name string) uint64 {
	return utils.Mix64(utils.U64(CanonicalName(t)), utils.U64(name))
}

// DeclaredField returns a handle to the field declared directly on t (no
// embedded promotion), exported or not. A miss is not an error.
func DeclaredField(t reflect.Type, name string) (*Field, bool) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, false
	}
	key := fieldKey(t, name)
	if f, ok := fieldCache.Get(key); ok {
		return f, true
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name != name || sf.Anonymous {
			continue
		}
		f := &Field{declaring: t, sf: sf}
		fieldCache.Add(key, f)
		return f, true
	}
	log.WithField("type", t.String()).WithField("field", name).
		Trace("declared field not found")
	return nil, false
}

// DeclaredMethod returns a handle to the exported method named name on t or
// *t whose parameter types (receiver excluded) equal params exactly.
func DeclaredMethod(t reflect.Type, name string, params []reflect.Type) (*Method, bool) {
	if t == nil {
		return nil, false
	}
	m, ok := t.MethodByName(name)
	if !ok && t.Kind() != reflect.Pointer {
		m, ok = reflect.PointerTo(t).MethodByName(name)
	}
	if !ok {
		return nil, false
	}
	mt := m.Func.Type()
	if mt.NumIn()-1 != len(params) {
		return nil, false
	}
	for i, p := range params {
		if mt.In(i+1) != p {
			return nil, false
		}
	}
	return &Method{declaring: t, m: m}, true
}

var (
	ctorsMu sync.RWMutex
	ctors   = make(map[reflect.Type][]*Ctor)
)

// RegisterConstructor registers fn as a named factory for its result type.
// fn must be a non-variadic func whose first result is the constructed type
// (T or *T); an optional trailing error result is allowed.
func RegisterConstructor(name string, fn any) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return fmt.Errorf("register constructor %q: not a function", name)
	}
	ft := v.Type()
	if ft.IsVariadic() {
		return fmt.Errorf("register constructor %q: variadic factories are not supported", name)
	}
	if ft.NumOut() == 0 || ft.NumOut() > 2 {
		return fmt.Errorf("register constructor %q: want T or (T, error) results, got %d", name, ft.NumOut())
	}
	withErr := ft.NumOut() == 2
	if withErr && ft.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
		return fmt.Errorf("register constructor %q: second result must be error", name)
	}

	declaring := ft.Out(0)
	if declaring.Kind() == reflect.Pointer {
		declaring = declaring.Elem()
	}

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}

	c := &Ctor{declaring: declaring, name: name, fn: v, params: params, withErr: withErr}
	ctorsMu.Lock()
	ctors[declaring] = append(ctors[declaring], c)
	ctorsMu.Unlock()
	return nil
}

// Constructor finds a factory registered for t matching name and parameter
// types exactly.
func Constructor(t reflect.Type, name string, params []reflect.Type) (*Ctor, bool) {
	if t == nil {
		return nil, false
	}
	ctorsMu.RLock()
	defer ctorsMu.RUnlock()
outer:
	for _, c := range ctors[t] {
		if c.name != name || len(c.params) != len(params) {
			continue
		}
		for i, p := range params {
			if c.params[i] != p {
				continue outer
			}
		}
		return c, true
	}
	return nil, false
}
