package access

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/reflectkit/registry"
)

// parseSealDenial extracts the package and policy names from a seal denial
// message. Best effort over the known template
//
//	... package "PKG" is sealed by policy "POLICY"
//
// Any shape mismatch reports ok=false; the parse itself never fails.
func parseSealDenial(msg string) (pkg, policyName string, ok bool) {
	const marker = `" is sealed by policy "`
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", "", false
	}

	left := msg[:i]
	j := strings.LastIndexByte(left, '"')
	if j < 0 {
		return "", "", false
	}
	pkg = left[j+1:]

	right := msg[i+len(marker):]
	k := strings.IndexByte(right, '"')
	if k <= 0 {
		return "", "", false
	}
	policyName = right[:k]

	if pkg == "" {
		return "", "", false
	}
	return pkg, policyName, true
}

// reportDenial logs a structured remediation hint for a seal denial. An
// unrecognized message still produces a log line, just without the derived
// fields.
func reportDenial(m registry.Member, denial error) {
	fields := logrus.Fields{
		"event_id": ulid.Make().String(),
		"member":   m.String(),
	}
	if pkg, pol, ok := parseSealDenial(denial.Error()); ok {
		fields["package"] = pkg
		fields["policy"] = pol
		fields["remediation"] = fmt.Sprintf("add %q to the open list of policy %q", pkg, pol)
	}
	log.WithFields(fields).WithError(denial).Warn("reflective access denied by policy")
}
