package registry

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =========================================================================
// Field Lookup
// =========================================================================

type ledger struct {
	Owner   string
	balance int64
	receipt // embedded, never returned as declared
}

func TestDeclaredFieldExported(t *testing.T) {
	f, ok := DeclaredField(reflect.TypeOf(ledger{}), "Owner")
	require.True(t, ok)
	assert.Equal(t, "Owner", f.Name())
	assert.True(t, f.Exported())
	assert.Equal(t, reflect.TypeOf(""), f.Type())
	assert.False(t, f.Accessible())
}

func TestDeclaredFieldUnexported(t *testing.T) {
	f, ok := DeclaredField(reflect.TypeOf(ledger{}), "balance")
	require.True(t, ok)
	assert.False(t, f.Exported())
	assert.Equal(t, reflect.TypeOf(ledger{}), f.DeclaringType())
}

func TestDeclaredFieldCachedHandle(t *testing.T) {
	f1, ok := DeclaredField(reflect.TypeOf(ledger{}), "Owner")
	require.True(t, ok)
	f2, ok := DeclaredField(reflect.TypeOf(ledger{}), "Owner")
	require.True(t, ok)
	assert.Same(t, f1, f2)
}

func TestDeclaredFieldMisses(t *testing.T) {
	_, ok := DeclaredField(reflect.TypeOf(ledger{}), "missing")
	assert.False(t, ok)

	// Embedded fields are not declared members.
	_, ok = DeclaredField(reflect.TypeOf(ledger{}), "receipt")
	assert.False(t, ok)

	_, ok = DeclaredField(reflect.TypeOf(42), "Owner")
	assert.False(t, ok)

	_, ok = DeclaredField(nil, "Owner")
	assert.False(t, ok)
}

func TestFieldBridge(t *testing.T) {
	f, ok := DeclaredField(reflect.TypeOf(ledger{}), "balance")
	require.True(t, ok)

	l := ledger{balance: 250}
	v := f.Bridge(unsafe.Pointer(&l))
	assert.Equal(t, int64(250), v.Interface())

	v.SetInt(300)
	assert.Equal(t, int64(300), l.balance)
}

// =========================================================================
// Method Lookup
// =========================================================================

func (l *ledger) Credit(amount int64) int64 {
	l.balance += amount
	return l.balance
}

func (l ledger) OwnerName() string { return l.Owner }

func TestDeclaredMethodPointerReceiver(t *testing.T) {
	m, ok := DeclaredMethod(reflect.TypeOf(ledger{}), "Credit", []reflect.Type{reflect.TypeOf(int64(0))})
	require.True(t, ok)
	assert.Equal(t, "Credit", m.Name())
	assert.True(t, m.Exported())
	assert.Equal(t, []reflect.Type{reflect.TypeOf(int64(0))}, m.Params())
}

func TestDeclaredMethodValueReceiver(t *testing.T) {
	m, ok := DeclaredMethod(reflect.TypeOf(ledger{}), "OwnerName", nil)
	require.True(t, ok)
	assert.Empty(t, m.Params())
}

func TestDeclaredMethodParamMismatch(t *testing.T) {
	_, ok := DeclaredMethod(reflect.TypeOf(ledger{}), "Credit", []reflect.Type{reflect.TypeOf("")})
	assert.False(t, ok)

	_, ok = DeclaredMethod(reflect.TypeOf(ledger{}), "Credit", nil)
	assert.False(t, ok)

	_, ok = DeclaredMethod(reflect.TypeOf(ledger{}), "Debit", nil)
	assert.False(t, ok)
}

// =========================================================================
// Constructor Registration
// =========================================================================

func TestRegisterConstructor(t *testing.T) {
	err := RegisterConstructor("NewLedger", func(owner string) *ledger {
		return &ledger{Owner: owner}
	})
	require.NoError(t, err)

	c, ok := Constructor(reflect.TypeOf(ledger{}), "NewLedger", []reflect.Type{reflect.TypeOf("")})
	require.True(t, ok)
	assert.Equal(t, "NewLedger", c.Name())
	assert.True(t, c.Exported())
	assert.False(t, c.WithErr())
	assert.Equal(t, reflect.TypeOf(ledger{}), c.DeclaringType())
}

func TestRegisterConstructorWithError(t *testing.T) {
	err := RegisterConstructor("OpenLedger", func(owner string) (*ledger, error) {
		if owner == "" {
			return nil, errors.New("owner required")
		}
		return &ledger{Owner: owner}, nil
	})
	require.NoError(t, err)

	c, ok := Constructor(reflect.TypeOf(ledger{}), "OpenLedger", []reflect.Type{reflect.TypeOf("")})
	require.True(t, ok)
	assert.True(t, c.WithErr())
}

func TestRegisterConstructorRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{name: "NotAFunc", fn: 42},
		{name: "Nil", fn: nil},
		{name: "NoResults", fn: func() {}},
		{name: "Variadic", fn: func(vals ...string) *ledger { return nil }},
		{name: "SecondResultNotError", fn: func() (*ledger, string) { return nil, "" }},
		{name: "ThreeResults", fn: func() (*ledger, error, error) { return nil, nil, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, RegisterConstructor(fmt.Sprintf("Bad%s", tt.name), tt.fn))
		})
	}
}

func TestConstructorLookupMisses(t *testing.T) {
	_, ok := Constructor(reflect.TypeOf(ledger{}), "NewLedger", nil)
	assert.False(t, ok)

	_, ok = Constructor(reflect.TypeOf(receipt{}), "NewLedger", []reflect.Type{reflect.TypeOf("")})
	assert.False(t, ok)

	_, ok = Constructor(nil, "NewLedger", nil)
	assert.False(t, ok)
}
