package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSealDenial(t *testing.T) {
	tests := []struct {
		name           string
		msg            string
		expectedPkg    string
		expectedPolicy string
		expectOK       bool
	}{
		{
			name:           "FullTemplate",
			msg:            `reflective access denied: package "github.com/acme/secrets" is sealed by policy "corp-default"`,
			expectedPkg:    "github.com/acme/secrets",
			expectedPolicy: "corp-default",
			expectOK:       true,
		},
		{
			name:           "ExtraPrefix",
			msg:            `try-set failed: reflective access denied: package "a/b" is sealed by policy "p"`,
			expectedPkg:    "a/b",
			expectedPolicy: "p",
			expectOK:       true,
		},
		{name: "NoMarker", msg: "reflective access denied: nope"},
		{name: "EmptyPackage", msg: `package "" is sealed by policy "p"`},
		{name: "UnterminatedPolicy", msg: `package "a" is sealed by policy `},
		{name: "Empty", msg: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, pol, ok := parseSealDenial(tt.msg)
			assert.Equal(t, tt.expectOK, ok)
			if tt.expectOK {
				assert.Equal(t, tt.expectedPkg, pkg)
				assert.Equal(t, tt.expectedPolicy, pol)
			}
		})
	}
}

func TestParseSealDenialMatchesProducedMessage(t *testing.T) {
	err := SetPolicy(&Policy{Name: "round-trip", Sealed: []string{"pkg/inner"}})
	assert.NoError(t, err)
	defer func() { assert.NoError(t, SetPolicy(nil)) }()

	denial := sealDenial("pkg/inner")
	assert.Error(t, denial)

	pkg, pol, ok := parseSealDenial(denial.Error())
	assert.True(t, ok)
	assert.Equal(t, "pkg/inner", pkg)
	assert.Equal(t, "round-trip", pol)
}
