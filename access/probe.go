package access

import (
	"os"
	"reflect"
	"unsafe"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "reflectkit.access")

// Capabilities records which optional accessibility operations the running
// runtime supports. They are probed once at program start and read-only for
// the rest of the process lifetime, so concurrent readers need no
// synchronization.
type Capabilities struct {
	// ExtendedCheck means a live can-access query can be answered for a
	// concrete instance instead of falling back to the member's own flag.
	ExtendedCheck bool
	// TrySet means the unsafe field bridge works on this runtime, so
	// accessibility can be granted without the unconditional legacy toggle.
	TrySet bool
}

var caps = probe()

// Caps returns the process-wide capability flags.
func Caps() Capabilities { return caps }

// sentinel carries the unexported field the probes exercise.
type sentinel struct {
	hidden string
}

func probe() Capabilities {
	if os.Getenv("REFLECTKIT_DISABLE_UNSAFE") == "1" {
		log.Debug("unsafe bridging disabled by environment, using legacy accessibility mode")
		return Capabilities{}
	}
	c := Capabilities{
		ExtendedCheck: probeOp("extended-access-check", probeRead),
		TrySet:        probeOp("try-set-accessible", probeWrite),
	}
	log.WithFields(logrus.Fields{
		"extended_check": c.ExtendedCheck,
		"try_set":        c.TrySet,
	}).Debug("accessibility capabilities probed")
	return c
}

// probeOp runs a single probe, converting any panic into an absent
// capability. Probe failure is never propagated.
func probeOp(name string, op func() bool) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{"capability": name, "cause": r}).
				Debug("capability probe failed")
			ok = false
		}
	}()
	return op()
}

func probeRead() bool {
	s := sentinel{hidden: "probe"}
	sf, ok := reflect.TypeOf(s).FieldByName("hidden")
	if !ok {
		return false
	}
	v := reflect.NewAt(sf.Type, unsafe.Add(unsafe.Pointer(&s), sf.Offset)).Elem()
	return v.CanInterface() && v.Interface() == "probe"
}

func probeWrite() bool {
	s := sentinel{hidden: "probe"}
	sf, ok := reflect.TypeOf(s).FieldByName("hidden")
	if !ok {
		return false
	}
	v := reflect.NewAt(sf.Type, unsafe.Add(unsafe.Pointer(&s), sf.Offset)).Elem()
	if !v.CanSet() {
		return false
	}
	v.SetString("granted")
	return s.hidden == "granted"
}
