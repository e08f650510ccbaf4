// Package symtab holds the symbol table built from directive annotations:
// package-scoped and file-lexical namespaces with bidirectional uses/used-by
// edges, plus file pseudo-symbols anchoring file-body uses.
package symtab

import (
	"fmt"

	"perlxref/internal/directive"
	"perlxref/internal/errors"
)

// Scope says which namespace a name or edge endpoint belongs to.
type Scope int

const (
	ScopePackage Scope = iota
	ScopeLexical
	ScopeFile
)

func (s Scope) String() string {
	switch s {
	case ScopePackage:
		return "package"
	case ScopeLexical:
		return "lexical"
	case ScopeFile:
		return "file"
	}
	return "invalid"
}

// Ref is one endpoint of a uses/used-by edge. Key is a qualified name for
// package refs, the literal spelling for lexical refs (File disambiguates),
// and a path for file refs. A symbol's Uses list mixes all three kinds.
type Ref struct {
	Scope Scope
	Key   string
	File  string
}

// Symbol is one record in either namespace. Records are created on first
// touch: a declaration claims File/Line and sets Declared, while edge
// recording may create the record early so used-by edges land on it before
// (or without) any declaration. An undeclared record is a forward reference.
type Symbol struct {
	Scope    Scope
	Key      string
	Declared bool
	File     string
	Line     int
	Uses     []Ref
	UsedBy   []Ref
}

// FileRecord represents a scanned file. The embedded pseudo-symbol (declared
// at line 0) anchors uses recorded outside any function; BySigil and Lexicals
// index the declarations made in the file, in declaration order, for report
// grouping.
type FileRecord struct {
	Symbol
	BySigil  map[byte][]*Symbol
	Lexicals []*Symbol
}

// Table is the symbol table for one scan run. It is built single-threaded
// during the scan and read-only afterwards; nothing persists across runs.
type Table struct {
	pkg   map[string]*Symbol
	lex   map[string]map[string]*Symbol
	files map[string]*FileRecord

	conflicts int
	edges     int
}

func NewTable() *Table {
	return &Table{
		pkg:   make(map[string]*Symbol),
		lex:   make(map[string]map[string]*Symbol),
		files: make(map[string]*FileRecord),
	}
}

// RegisterFile creates the pseudo-symbol for a scanned file. Idempotent; the
// walk never yields a path twice but a file-body use may touch it first.
func (t *Table) RegisterFile(path string) *FileRecord {
	fr := t.files[path]
	if fr == nil {
		fr = &FileRecord{
			Symbol:  Symbol{Scope: ScopeFile, Key: path, File: path, Line: 0},
			BySigil: make(map[byte][]*Symbol),
		}
		t.files[path] = fr
	}
	fr.Declared = true
	return fr
}

// DeclarePackage qualifies name against namespace and claims the record.
// The qualified name is returned even on conflict so the caller can keep
// attributing subsequent uses to it. A conflict leaves the table unchanged.
func (t *Table) DeclarePackage(name, file string, line int, namespace string) (string, error) {
	q := directive.Qualify(name, namespace)
	sym := t.touchPackage(q)
	if sym.Declared {
		t.conflicts++
		return q, errors.AddContext(errors.New(errors.CodeConflict,
			fmt.Sprintf("package symbol %s already declared at %s:%d", q, sym.File, sym.Line)),
			errors.CtxSymbol, q)
	}
	sym.Declared = true
	sym.File = file
	sym.Line = line

	fr := t.RegisterFile(file)
	sigil := directive.SigilOf(q)
	fr.BySigil[sigil] = append(fr.BySigil[sigil], sym)
	return q, nil
}

// DeclareLexical claims a file-local record under the literal spelling.
// Scoping below file granularity is unsupported.
func (t *Table) DeclareLexical(name, file string, line int) error {
	names := t.lex[file]
	if names == nil {
		names = make(map[string]*Symbol)
		t.lex[file] = names
	}
	sym := names[name]
	if sym == nil {
		sym = &Symbol{Scope: ScopeLexical, Key: name, File: file}
		names[name] = sym
	}
	if sym.Declared {
		t.conflicts++
		return errors.AddContext(errors.New(errors.CodeConflict,
			fmt.Sprintf("lexical symbol %s already declared at %s:%d", name, sym.File, sym.Line)),
			errors.CtxSymbol, name)
	}
	sym.Declared = true
	sym.Line = line

	fr := t.RegisterFile(file)
	fr.Lexicals = append(fr.Lexicals, sym)
	return nil
}

// RecordUse appends a uses edge from the current function (or, outside any
// function, from the file's pseudo-symbol) to the resolved target, and the
// reciprocal used-by edge on the target's record. An unresolved target gets
// an undeclared record so the reciprocal edge still lands somewhere real.
func (t *Table) RecordUse(target Resolution, file, currentFunction string) {
	tgt := t.touch(target)

	tref := Ref{Scope: target.Scope, Key: target.Key}
	if target.Scope == ScopeLexical {
		tref.File = file
	}

	if currentFunction != "" {
		src := t.touchPackage(currentFunction)
		src.Uses = append(src.Uses, tref)
		tgt.UsedBy = append(tgt.UsedBy, Ref{Scope: ScopePackage, Key: currentFunction})
	} else {
		fr := t.RegisterFile(file)
		fr.Uses = append(fr.Uses, tref)
		tgt.UsedBy = append(tgt.UsedBy, Ref{Scope: ScopeFile, Key: file})
	}
	t.edges++
}

func (t *Table) touchPackage(q string) *Symbol {
	sym := t.pkg[q]
	if sym == nil {
		sym = &Symbol{Scope: ScopePackage, Key: q}
		t.pkg[q] = sym
	}
	return sym
}

func (t *Table) touch(res Resolution) *Symbol {
	switch res.Scope {
	case ScopeLexical:
		// Lexical resolutions only exist for already-declared names.
		return res.Sym
	case ScopeFile:
		fr := t.files[res.Key]
		if fr == nil {
			fr = &FileRecord{
				Symbol:  Symbol{Scope: ScopeFile, Key: res.Key, File: res.Key},
				BySigil: make(map[byte][]*Symbol),
			}
			t.files[res.Key] = fr
		}
		return &fr.Symbol
	}
	return t.touchPackage(res.Key)
}

// LookupPackage finds a package symbol by its fully qualified name.
func (t *Table) LookupPackage(qualified string) (*Symbol, bool) {
	sym, ok := t.pkg[qualified]
	return sym, ok
}

// LookupLexical finds a file-local symbol by its literal spelling.
func (t *Table) LookupLexical(file, name string) (*Symbol, bool) {
	sym, ok := t.lex[file][name]
	return sym, ok
}

// File returns the record for a scanned path, nil if never registered.
func (t *Table) File(path string) *FileRecord {
	return t.files[path]
}

// Files returns all registered file paths in map order; callers sort.
func (t *Table) Files() []string {
	paths := make([]string, 0, len(t.files))
	for p := range t.files {
		paths = append(paths, p)
	}
	return paths
}
