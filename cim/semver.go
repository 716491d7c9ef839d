package cim

import (
	"strconv"
	"strings"
)

// CompareVersions implements full semver 2.0.0 precedence for the
// Version custom datatype (spec.md §6, supplemented per SPEC_FULL.md):
// major.minor.patch compare numerically; a pre-release version has
// lower precedence than the associated release; pre-release
// identifiers are compared left-to-right, numeric identifiers
// numerically and always lower than alphanumeric ones; build metadata
// is ignored for precedence.
func CompareVersions(a, b string) int {
	aCore, aPre := splitVersion(a)
	bCore, bPre := splitVersion(b)

	if c := compareCore(aCore, bCore); c != 0 {
		return c
	}

	switch {
	case aPre == "" && bPre == "":
		return 0
	case aPre == "" && bPre != "":
		return 1 // no pre-release > has pre-release
	case aPre != "" && bPre == "":
		return -1
	default:
		return comparePreRelease(aPre, bPre)
	}
}

// splitVersion strips build metadata (after '+') and separates the
// core major.minor.patch from the pre-release (after '-').
func splitVersion(v string) (core, pre string) {
	if i := strings.IndexByte(v, '+'); i >= 0 {
		v = v[:i]
	}
	if i := strings.IndexByte(v, '-'); i >= 0 {
		return v[:i], v[i+1:]
	}
	return v, ""
}

func compareCore(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < 3; i++ {
		av, bv := numericPart(as, i), numericPart(bs, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func numericPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0
	}
	return n
}

func comparePreRelease(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		if i >= len(as) {
			return -1 // fewer fields -> lower precedence
		}
		if i >= len(bs) {
			return 1
		}
		if c := compareIdentifier(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareIdentifier(a, b string) int {
	an, aIsNum := isNumericIdentifier(a)
	bn, bIsNum := isNumericIdentifier(b)
	switch {
	case aIsNum && bIsNum:
		if an == bn {
			return 0
		}
		if an < bn {
			return -1
		}
		return 1
	case aIsNum && !bIsNum:
		return -1 // numeric < alphanumeric
	case !aIsNum && bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func isNumericIdentifier(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
