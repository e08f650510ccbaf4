package symtab

import (
	"fmt"

	"perlxref/internal/directive"
	"perlxref/internal/errors"
)

// Resolution is the single result shape for every lookup branch. Sym is nil
// when no record exists yet; that is a valid state (forward reference or
// never-declared name), never a failure.
type Resolution struct {
	Scope Scope
	Key   string
	Sym   *Symbol
}

// Resolved reports whether the resolution found a declared symbol.
func (r Resolution) Resolved() bool {
	return r.Sym != nil && r.Sym.Declared
}

// Resolve determines which namespace a name belongs to. A sigiled name is
// checked against the file's lexical table first, since lexical declarations
// shadow package ones regardless of declaration order within the file; only
// then is it qualified against the current namespace and looked up globally.
// A bare name is a file path. Resolution is only trustworthy once the whole
// scan has completed; the report re-resolves against the finished table.
func (t *Table) Resolve(name, file, namespace string) Resolution {
	if directive.SigilOf(name) != 0 {
		if sym, ok := t.LookupLexical(file, name); ok {
			return Resolution{Scope: ScopeLexical, Key: name, Sym: sym}
		}
		q := directive.Qualify(name, namespace)
		sym, _ := t.LookupPackage(q)
		return Resolution{Scope: ScopePackage, Key: q, Sym: sym}
	}
	if fr := t.files[name]; fr != nil {
		return Resolution{Scope: ScopeFile, Key: name, Sym: &fr.Symbol}
	}
	return Resolution{Scope: ScopeFile, Key: name}
}

// ResolveRef maps an edge endpoint back to its record. Every ref stored in
// the table points at a record that exists by construction, so a miss means
// the scan-then-report invariant was broken and the run must abort.
func (t *Table) ResolveRef(ref Ref) (*Symbol, error) {
	var sym *Symbol
	switch ref.Scope {
	case ScopePackage:
		sym = t.pkg[ref.Key]
	case ScopeLexical:
		sym = t.lex[ref.File][ref.Key]
	case ScopeFile:
		if fr := t.files[ref.Key]; fr != nil {
			sym = &fr.Symbol
		}
	}
	if sym == nil {
		return nil, errors.New(errors.CodeInternal,
			fmt.Sprintf("edge points at missing %s record %q", ref.Scope, ref.Key))
	}
	return sym, nil
}

// Stats summarizes one completed scan for history and metrics.
type Stats struct {
	Files          int
	PackageSymbols int
	LexicalSymbols int
	Edges          int
	Unresolved     int
	Conflicts      int
}

func (t *Table) Stats() Stats {
	st := Stats{
		Files:     len(t.files),
		Edges:     t.edges,
		Conflicts: t.conflicts,
	}
	for _, sym := range t.pkg {
		if sym.Declared {
			st.PackageSymbols++
		} else {
			st.Unresolved++
		}
	}
	for _, names := range t.lex {
		st.LexicalSymbols += len(names)
	}
	for _, fr := range t.files {
		if !fr.Declared {
			st.Unresolved++
		}
	}
	return st
}
