// Package directive recognizes structured annotations embedded in comment
// lines of the form "# ^keyword value" and classifies the names they carry.
package directive

import (
	"regexp"
	"strings"
)

type Kind int

const (
	// KindPlain marks a line that is not a directive at all. The scanner
	// clears its current-function context when it sees one.
	KindPlain Kind = iota
	KindPackage
	KindVariable
	KindFunction
	KindUses
	// KindUnknown is a well-formed directive with an unrecognized keyword.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindPackage:
		return "package"
	case KindVariable:
		return "variable"
	case KindFunction:
		return "function"
	case KindUses:
		return "uses"
	case KindUnknown:
		return "unknown"
	}
	return "invalid"
}

// VarScope is the declared visibility of a variable directive.
type VarScope int

const (
	// ScopeUnspecified means the directive omitted the my/our word; the
	// scanner defaults it to package scope with a warning.
	ScopeUnspecified VarScope = iota
	ScopePackage              // our
	ScopeLexical              // my
	ScopeInvalid              // unrecognized word; symbol is dropped
)

// Directive is the parsed form of one annotation line.
type Directive struct {
	Kind    Kind
	Keyword string // raw keyword, informative for KindUnknown
	Value   string // free-text value, trailing whitespace trimmed
	Scope   VarScope
	Name    string // for variable: value minus the scope word
}

// One or more '#' markers, optional whitespace, a caret, a keyword, and a
// non-empty value. Lines that miss any part of this shape are plain.
var directiveRE = regexp.MustCompile(`^\s*#+\s*\^(\w+)\s+(.*?)\s*$`)

// Parse classifies a single line. It never fails; a malformed line is simply
// KindPlain and an unrecognized keyword is KindUnknown.
func Parse(line string) Directive {
	m := directiveRE.FindStringSubmatch(line)
	if m == nil {
		return Directive{Kind: KindPlain}
	}
	keyword, value := m[1], m[2]

	switch keyword {
	case "package":
		return Directive{Kind: KindPackage, Keyword: keyword, Value: value}
	case "variable":
		d := Directive{Kind: KindVariable, Keyword: keyword, Value: value}
		d.Scope, d.Name = splitVarScope(value)
		return d
	case "function":
		return Directive{Kind: KindFunction, Keyword: keyword, Value: value}
	case "uses":
		return Directive{Kind: KindUses, Keyword: keyword, Value: value}
	}
	return Directive{Kind: KindUnknown, Keyword: keyword, Value: value}
}

// splitVarScope separates the optional my/our word from the variable name.
func splitVarScope(value string) (VarScope, string) {
	fields := strings.Fields(value)
	if len(fields) == 1 {
		return ScopeUnspecified, fields[0]
	}
	if len(fields) == 2 {
		switch fields[0] {
		case "our":
			return ScopePackage, fields[1]
		case "my":
			return ScopeLexical, fields[1]
		}
	}
	return ScopeInvalid, value
}
