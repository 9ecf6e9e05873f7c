package definition

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/reflectkit/registry"
)

// =========================================================================
// Method Invocation
// =========================================================================

func TestMethodInvokePointerReceiver(t *testing.T) {
	d := MustMethod(v100, nil, accountClass, "Deposit", "int64")
	require.True(t, d.IsPresent())

	a := &account{balance: 10}
	out, err := d.Invoke(a, int64(5))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(15), out[0])
	assert.Equal(t, int64(15), a.balance)
}

func TestMethodInvokeValueReceiver(t *testing.T) {
	d := MustMethod(v100, nil, accountClass, "Memo")

	out, err := d.Invoke(account{note: "hello"})
	require.NoError(t, err)
	assert.Equal(t, []any{"hello"}, out)

	// Pointer instances reach value-receiver methods too.
	out, err = d.Invoke(&account{note: "hi"})
	require.NoError(t, err)
	assert.Equal(t, []any{"hi"}, out)
}

func TestMethodInvokeValueInstanceCopiesForPointerReceiver(t *testing.T) {
	d := MustMethod(v100, nil, accountClass, "Deposit", "int64")

	a := account{balance: 10}
	out, err := d.Invoke(a, int64(5))
	require.NoError(t, err)
	assert.Equal(t, int64(15), out[0])

	// The mutation happened on a copy.
	assert.Equal(t, int64(10), a.balance)
}

func TestMethodInvokeArgumentErrors(t *testing.T) {
	d := MustMethod(v100, nil, accountClass, "Deposit", "int64")

	_, err := d.Invoke(&account{})
	assert.ErrorIs(t, err, ErrArgument)

	_, err = d.Invoke(&account{}, int64(1), int64(2))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = d.Invoke(&account{}, "not a number")
	assert.ErrorIs(t, err, ErrArgument)

	_, err = d.Invoke(nil, int64(1))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = d.Invoke("wrong type", int64(1))
	assert.ErrorIs(t, err, ErrArgument)
}

func TestMethodUnresolved(t *testing.T) {
	// Unexported methods are invisible to reflection, same as missing ones.
	for _, name := range []string{"NoSuchMethod", "reset"} {
		d := MustMethod(v100, nil, accountClass, name)
		assert.False(t, d.IsPresent())

		_, err := d.Invoke(&account{})
		assert.ErrorIs(t, err, ErrNotPresent)
	}
}

func TestMethodSignatureMismatchStaysAbsent(t *testing.T) {
	d := MustMethod(v100, nil, accountClass, "Deposit", "string")
	assert.False(t, d.IsPresent())
}

// =========================================================================
// Constructor Invocation
// =========================================================================

func TestConstructorNew(t *testing.T) {
	d := MustConstructor(v100, nil, accountClass, "NewAccount",
		"github.com/google/uuid.UUID", "string")
	require.True(t, d.IsPresent())

	id := uuid.New()
	out, err := d.New(id, "opening")
	require.NoError(t, err)

	a, ok := out.(*account)
	require.True(t, ok)
	assert.Equal(t, id, a.ID)
	assert.Equal(t, "opening", a.note)
}

func TestConstructorErrorPropagated(t *testing.T) {
	require.NoError(t, registry.RegisterConstructor("OpenAccount", func(note string) (*account, error) {
		if note == "" {
			return nil, errors.New("note required")
		}
		return &account{note: note}, nil
	}))

	d := MustConstructor(v100, nil, accountClass, "OpenAccount", "string")

	_, err := d.New("")
	require.EqualError(t, err, "note required")

	out, err := d.New("ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", out.(*account).note)
}

func TestConstructorArgumentErrors(t *testing.T) {
	d := MustConstructor(v100, nil, accountClass, "NewAccount",
		"github.com/google/uuid.UUID", "string")

	_, err := d.New()
	assert.ErrorIs(t, err, ErrArgument)

	_, err = d.New(uuid.New(), struct{}{})
	assert.ErrorIs(t, err, ErrArgument)
}

func TestConstructorUnresolved(t *testing.T) {
	d := MustConstructor(v100, nil, accountClass, "NoSuchFactory", "string")
	assert.False(t, d.IsPresent())

	_, err := d.New("x")
	assert.ErrorIs(t, err, ErrNotPresent)

	// An unresolvable parameter name keeps the whole constructor absent.
	d = MustConstructor(v100, nil, accountClass, "NewAccount", "no.such.Type", "string")
	assert.False(t, d.IsPresent())
}
