package definition

import "fmt"

// Deprecation marks a described member as deprecated, carrying the reason
// and optionally a suggested replacement. Immutable; a nil *Deprecation
// means "not deprecated".
type Deprecation struct {
	reason      string
	replacement string
}

// Deprecated builds a deprecation marker with a reason only.
func Deprecated(reason string) *Deprecation {
	return &Deprecation{reason: reason}
}

// DeprecatedFor builds a deprecation marker naming the replacement.
func DeprecatedFor(reason, replacement string) *Deprecation {
	return &Deprecation{reason: reason, replacement: replacement}
}

func (d *Deprecation) Reason() string { return d.reason }

// Replacement returns the suggested replacement, if one was named.
func (d *Deprecation) Replacement() (string, bool) {
	return d.replacement, d.replacement != ""
}

// Equal is nil-safe value equality.
func (d *Deprecation) Equal(o *Deprecation) bool {
	if d == nil || o == nil {
		return d == o
	}
	return *d == *o
}

func (d *Deprecation) String() string {
	if d.replacement != "" {
		return fmt.Sprintf("deprecated(%s, use %s)", d.reason, d.replacement)
	}
	return fmt.Sprintf("deprecated(%s)", d.reason)
}
