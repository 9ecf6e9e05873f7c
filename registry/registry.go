package registry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "reflectkit.registry")

// ErrAlreadyRegistered reports a name conflict between two distinct types.
var ErrAlreadyRegistered = errors.New("type name already registered")

var (
	typesMu sync.RWMutex
	types   = make(map[string]reflect.Type, 128)
)

func init() {
	// Well-known types every process can resolve without registration.
	RegisterBasicType[string]()
	RegisterBasicType[bool]()
	RegisterBasicType[int]()
	RegisterBasicType[int8]()
	RegisterBasicType[int16]()
	RegisterBasicType[int32]()
	RegisterBasicType[int64]()
	RegisterBasicType[uint]()
	RegisterBasicType[uint8]()
	RegisterBasicType[uint16]()
	RegisterBasicType[uint32]()
	RegisterBasicType[uint64]()
	RegisterBasicType[float32]()
	RegisterBasicType[float64]()
	RegisterBasicType[[]byte]()
	RegisterBasicType[[]string]()
	RegisterBasicType[time.Time]()
	RegisterBasicType[time.Duration]()
	RegisterBasicType[uuid.UUID]()
	RegisterBasicType[ulid.ULID]()
}

// CanonicalName returns the key a type is stored under: the full package
// path joined with the type name, or the type's own string form for
// builtins and unnamed types.
func CanonicalName(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// Register associates T with its canonical name plus any aliases.
// Registration is idempotent for the same type; binding an already-taken
// name to a different type fails with ErrAlreadyRegistered.
func Register[T any](aliases ...string) error {
	var zero T
	return RegisterType(reflect.TypeOf(zero), aliases...)
}

// RegisterBasicType registers T under its canonical name only, ignoring
// conflicts. Used for the built-in seed set.
func RegisterBasicType[T any]() {
	var zero T
	t := reflect.TypeOf(zero)
	typesMu.Lock()
	types[CanonicalName(t)] = t
	typesMu.Unlock()
}

// RegisterType is Register for a reflect.Type obtained elsewhere.
func RegisterType(t reflect.Type, aliases ...string) error {
	if t == nil {
		return fmt.Errorf("register: nil type")
	}
	names := append([]string{CanonicalName(t)}, aliases...)

	typesMu.Lock()
	defer typesMu.Unlock()
	// Validate every name first so a conflict leaves no partial state.
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return fmt.Errorf("register %s: blank name", t)
		}
		if existing, ok := types[n]; ok && existing != t {
			return fmt.Errorf("%w: %q already names %s", ErrAlreadyRegistered, n, existing)
		}
	}
	for _, n := range names {
		types[n] = t
	}
	return nil
}

// Resolve looks a type up by registered name. A miss is not an error; it is
// reported through the second return and traced for diagnostics.
func Resolve(name string) (reflect.Type, bool) {
	typesMu.RLock()
	t, ok := types[name]
	typesMu.RUnlock()
	if !ok {
		log.WithField("type", name).Trace("type not registered")
	}
	return t, ok
}

// Names returns a snapshot of every registered name, unordered.
func Names() []string {
	typesMu.RLock()
	defer typesMu.RUnlock()
	out := make([]string, 0, len(types))
	for n := range types {
		out = append(out, n)
	}
	return out
}
