package directive

import "strings"

// Sigils marking a name's storage kind. A name starting with anything else is
// bare: either a function name (normalized to the code sigil) or a file path.
const (
	SigilScalar = '$'
	SigilArray  = '@'
	SigilHash   = '%'
	SigilCode   = '&'
	SigilGlob   = '*'

	// Separator joins a namespace to a name in a qualified identifier.
	Separator = "::"
)

// SigilOf returns the name's leading sigil, or 0 for a bare name.
func SigilOf(name string) byte {
	if name == "" {
		return 0
	}
	switch name[0] {
	case SigilScalar, SigilArray, SigilHash, SigilCode, SigilGlob:
		return name[0]
	}
	return 0
}

// SplitName separates a name into its sigil (0 for none) and remainder.
func SplitName(name string) (byte, string) {
	if s := SigilOf(name); s != 0 {
		return s, name[1:]
	}
	return 0, name
}

// EnsureCodeSigil prepends the code sigil to a bare name. Function names are
// conventionally written without one but stored under '&'.
func EnsureCodeSigil(name string) string {
	if SigilOf(name) != 0 {
		return name
	}
	return string(SigilCode) + name
}

// Qualify prefixes an unqualified sigiled name with the given namespace.
// Bare names are file paths and pass through untouched, as do names that
// already carry an explicit separator. Idempotent.
func Qualify(name, namespace string) string {
	sigil, rest := SplitName(name)
	if sigil == 0 || strings.Contains(rest, Separator) {
		return name
	}
	return string(sigil) + namespace + Separator + rest
}

// SigilCategory is the report-grouping label for a sigil.
func SigilCategory(sigil byte) string {
	switch sigil {
	case SigilScalar:
		return "scalars"
	case SigilArray:
		return "arrays"
	case SigilHash:
		return "hashes"
	case SigilCode:
		return "functions"
	case SigilGlob:
		return "globs"
	}
	return "files"
}
