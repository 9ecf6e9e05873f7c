// Package reflectkit provides lazy reflective member definitions — immutable
// descriptions of struct fields, constructors and methods that resolve to
// live reflect handles on first use — with capability-gated accessibility
// bridging for unexported members.
package reflectkit

import (
	"github.com/Konsultn-Engineering/reflectkit/definition"
	"github.com/Konsultn-Engineering/reflectkit/registry"
	"github.com/Konsultn-Engineering/reflectkit/version"
)

type (
	Version               = version.Version
	Deprecation           = definition.Deprecation
	FieldDefinition       = definition.FieldDefinition
	ConstructorDefinition = definition.ConstructorDefinition
	MethodDefinition      = definition.MethodDefinition
)

var (
	NewField        = definition.NewField
	MustField       = definition.MustField
	NewConstructor  = definition.NewConstructor
	MustConstructor = definition.MustConstructor
	NewMethod       = definition.NewMethod
	MustMethod      = definition.MustMethod

	Deprecated    = definition.Deprecated
	DeprecatedFor = definition.DeprecatedFor

	ParseVersion     = version.Parse
	MustParseVersion = version.MustParse
)

// Register makes T resolvable by its canonical name plus any aliases.
func Register[T any](aliases ...string) error {
	return registry.Register[T](aliases...)
}

// RegisterConstructor makes a factory function resolvable by constructor
// definitions naming it.
func RegisterConstructor(name string, fn any) error {
	return registry.RegisterConstructor(name, fn)
}
