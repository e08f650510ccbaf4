// Package scanner drives a scan run: it walks the tree, reads each file line
// by line, and feeds recognized directives into the symbol table.
package scanner

import (
	"bufio"
	stderrors "errors"
	"log/slog"
	"os"
	"time"

	"perlxref/internal/directive"
	"perlxref/internal/errors"
	"perlxref/internal/observability"
	"perlxref/internal/symtab"
)

// DefaultNamespace applies until a package directive is seen.
const DefaultNamespace = "main"

// Line size limits for the per-file scanner. Data-heavy files routinely carry
// lines past bufio's 64 KiB default; a line past the max skips the rest of
// that file with a warning instead of aborting the run.
const (
	initialLineBytes = 1024 * 1024
	maxLineBytes     = 10 * 1024 * 1024
)

type Scanner struct {
	walker *Walker
}

func New(walker *Walker) *Scanner {
	return &Scanner{walker: walker}
}

// Run performs one full scan and returns the completed table. Every run
// builds a fresh table; nothing persists between invocations. Per-line
// problems are logged and skipped, unreadable files abort the whole run.
func (s *Scanner) Run(root string) (*symtab.Table, error) {
	start := time.Now()

	files, err := s.walker.Walk(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIOFailure, "walk "+root)
	}

	table := symtab.NewTable()
	for _, path := range files {
		if err := s.scanFile(table, path); err != nil {
			return nil, err
		}
	}

	st := table.Stats()
	observability.ScanDuration.Observe(time.Since(start).Seconds())
	observability.TableSymbols.Set(float64(st.PackageSymbols + st.LexicalSymbols))
	observability.TableEdges.Set(float64(st.Edges))
	slog.Debug("scan complete",
		"root", root,
		"files", st.Files,
		"package_symbols", st.PackageSymbols,
		"lexical_symbols", st.LexicalSymbols,
		"edges", st.Edges)
	return table, nil
}

// scanFile applies the per-file state machine: currentNamespace starts at
// main and follows package directives; currentFunction is set by function
// directives and cleared by any non-directive line, so body-level uses seen
// after plain text attach to the file rather than a stale function.
func (s *Scanner) scanFile(table *symtab.Table, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeIOFailure, "open "+path)
	}
	defer f.Close()

	table.RegisterFile(path)
	observability.FilesScanned.Inc()

	namespace := DefaultNamespace
	currentFunction := ""

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, initialLineBytes), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		d := directive.Parse(sc.Text())
		if d.Kind == directive.KindPlain {
			currentFunction = ""
			continue
		}
		observability.DirectivesParsed.WithLabelValues(d.Kind.String()).Inc()

		switch d.Kind {
		case directive.KindPackage:
			namespace = d.Value

		case directive.KindVariable:
			scope := d.Scope
			if scope == directive.ScopeUnspecified {
				warn("variable directive without my/our, assuming our", path, line, d.Name)
				scope = directive.ScopePackage
			}
			switch scope {
			case directive.ScopePackage:
				if _, err := table.DeclarePackage(d.Name, path, line, namespace); err != nil {
					warn(err.Error(), path, line, d.Name)
				}
			case directive.ScopeLexical:
				if err := table.DeclareLexical(d.Name, path, line); err != nil {
					warn(err.Error(), path, line, d.Name)
				}
			default:
				warn("unrecognized variable scope, symbol dropped", path, line, d.Value)
			}

		case directive.KindFunction:
			name := directive.EnsureCodeSigil(d.Value)
			q, err := table.DeclarePackage(name, path, line, namespace)
			if err != nil {
				warn(err.Error(), path, line, name)
			}
			// Last declaration wins for attributing subsequent uses,
			// conflicting or not.
			currentFunction = q

		case directive.KindUses:
			name := directive.EnsureCodeSigil(d.Value)
			res := table.Resolve(name, path, namespace)
			table.RecordUse(res, path, currentFunction)

		case directive.KindUnknown:
			observability.Warnings.WithLabelValues("unknown_directive").Inc()
			derr := errors.AddContext(errors.New(errors.CodeUnknownDirective,
				"unknown directive keyword"), errors.CtxDirective, d.Keyword)
			derr = errors.AddContext(derr, errors.CtxFile, path)
			derr = errors.AddContext(derr, errors.CtxLine, line)
			slog.Warn("skipping directive", "error", derr)
		}
	}
	if err := sc.Err(); err != nil {
		if stderrors.Is(err, bufio.ErrTooLong) {
			observability.Warnings.WithLabelValues("oversized_line").Inc()
			slog.Warn("line exceeds scanner limit, skipping rest of file",
				"file", path, "line", line+1, "error", err)
			return nil
		}
		return errors.Wrap(err, errors.CodeIOFailure, "read "+path)
	}
	return nil
}

func warn(msg, path string, line int, symbol string) {
	observability.Warnings.WithLabelValues("declaration").Inc()
	slog.Warn(msg, "file", path, "line", line, "symbol", symbol)
}
