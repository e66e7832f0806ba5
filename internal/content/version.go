package content

import (
	"strings"

	"golang.org/x/mod/semver"
)

// canonicalVersion accepts "1.2.0" or "v1.2.0" and returns the canonical
// semver form.
func canonicalVersion(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", false
	}
	return semver.Canonical(v), true
}

// CompareVersion compares two catalog versions the way semver does. An
// empty or invalid version sorts before every valid one.
func CompareVersion(a, b string) int {
	ca, _ := canonicalVersion(a)
	cb, _ := canonicalVersion(b)
	return semver.Compare(ca, cb)
}

// VersionChanged reports whether current differs from the version the
// learner's progress was last reconciled against. Unversioned content
// never counts as a change.
func VersionChanged(stored, current string) bool {
	if current == "" {
		return false
	}
	return CompareVersion(stored, current) != 0
}
