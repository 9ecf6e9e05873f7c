package access

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/Konsultn-Engineering/reflectkit/registry"
)

// ErrAccessDenied reports that the runtime or the installed policy refused
// to grant reflective access to a member.
var ErrAccessDenied = errors.New("reflective access denied")

// CanAccess reports whether member m is currently invocable on instance.
// Exported members are always accessible and short-circuit before any
// probing. For unexported members the extended capability answers a live
// query when present; a failure during that delegation is logged and the
// member's own accessible flag decides instead.
func CanAccess(instance any, m registry.Member) bool {
	if m == nil {
		return false
	}
	if m.Exported() {
		return true
	}
	if caps.ExtendedCheck {
		ok, err := extendedCheck(instance, m)
		if err == nil {
			return ok
		}
		log.WithError(err).WithField("member", m.String()).
			Debug("extended access check failed, falling back to member flag")
	}
	return m.Accessible()
}

// extendedCheck answers whether, with the current capabilities and policy,
// the member could actually be reached on the given instance.
func extendedCheck(instance any, m registry.Member) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extended access check: %v", r)
		}
	}()

	if m.Accessible() {
		return true, nil
	}
	if f, isField := m.(*registry.Field); isField && instance != nil {
		t := reflect.TypeOf(instance)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t != f.DeclaringType() {
			return false, nil
		}
	}
	if !caps.TrySet {
		return false, nil
	}
	return sealDenial(m.DeclaringType().PkgPath()) == nil, nil
}

// TrySetAccessible attempts to make m invocable and reports whether it is
// accessible afterwards. With the try-set capability present the attempt is
// policy-checked and a refusal turns into false; on legacy runtimes the
// baseline toggle is forced unconditionally, skipping the call when the
// member is already accessible.
func TrySetAccessible(m registry.Member) bool {
	if m == nil {
		return false
	}
	if caps.TrySet {
		if _, err := SetAccessible(m); err != nil {
			log.WithError(err).WithField("member", m.String()).
				Debug("try-set-accessible refused")
			return false
		}
		return true
	}
	if m.Accessible() {
		return true
	}
	m.MarkAccessible()
	return true
}

// SetAccessible forces the accessibility flag, returning its previous
// state. The flag is toggled only when unset. A policy seal denial is
// logged with a best-effort remediation diagnostic and returned unchanged.
func SetAccessible(m registry.Member) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("%w: nil member", ErrAccessDenied)
	}
	if m.Accessible() {
		return true, nil
	}
	if !m.Exported() {
		if err := sealDenial(m.DeclaringType().PkgPath()); err != nil {
			reportDenial(m, err)
			return false, err
		}
	}
	return m.MarkAccessible(), nil
}
