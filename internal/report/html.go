// Package report renders the completed symbol table as a single
// self-contained HTML cross-reference document.
package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"perlxref/internal/directive"
	"perlxref/internal/symtab"
)

// Sigil categories in presentation order.
var sigilOrder = []byte{
	directive.SigilScalar,
	directive.SigilArray,
	directive.SigilHash,
	directive.SigilCode,
	directive.SigilGlob,
}

type pageData struct {
	Root      string
	Generated string
	Files     []fileSection
}

type fileSection struct {
	Path     string
	Anchor   string
	Groups   []symbolGroup
	Lexicals []symbolRow
	FileUses []refView
}

type symbolGroup struct {
	Category string
	Symbols  []symbolRow
}

type symbolRow struct {
	Name   string
	Anchor string
	Line   int
	Uses   []refView
	UsedBy []refView
}

// refView is one rendered edge endpoint. An empty Anchor means the target
// was never declared and renders as an "unresolved" marker, not a link.
type refView struct {
	Label  string
	Anchor string
}

// Renderer walks the read-only table and produces the report. It re-resolves
// every stored edge against the completed table, so forward references made
// during the scan come out as proper links.
type Renderer struct {
	table   *symtab.Table
	anchors map[*symtab.Symbol]string
	next    int
}

func NewRenderer(table *symtab.Table) *Renderer {
	return &Renderer{table: table, anchors: make(map[*symtab.Symbol]string)}
}

func (r *Renderer) Render(w io.Writer, root string) error {
	data := pageData{
		Root:      root,
		Generated: time.Now().Format(time.RFC1123),
	}

	paths := r.table.Files()
	sort.Strings(paths)
	for _, path := range paths {
		fr := r.table.File(path)
		if !fr.Declared {
			// Referenced but never scanned; it shows up only as an
			// unresolved target inside other sections.
			continue
		}
		section, err := r.fileSection(fr)
		if err != nil {
			return err
		}
		data.Files = append(data.Files, section)
	}

	return pageTemplate.Execute(w, data)
}

func (r *Renderer) fileSection(fr *symtab.FileRecord) (fileSection, error) {
	section := fileSection{
		Path:   fr.Key,
		Anchor: r.anchorFor(&fr.Symbol),
	}

	for _, sigil := range sigilOrder {
		syms := fr.BySigil[sigil]
		if len(syms) == 0 {
			continue
		}
		group := symbolGroup{Category: directive.SigilCategory(sigil)}
		for _, sym := range syms {
			row, err := r.symbolRow(sym)
			if err != nil {
				return fileSection{}, err
			}
			group.Symbols = append(group.Symbols, row)
		}
		section.Groups = append(section.Groups, group)
	}

	for _, sym := range fr.Lexicals {
		row, err := r.symbolRow(sym)
		if err != nil {
			return fileSection{}, err
		}
		section.Lexicals = append(section.Lexicals, row)
	}

	var err error
	section.FileUses, err = r.refViews(fr.Uses)
	if err != nil {
		return fileSection{}, err
	}
	return section, nil
}

func (r *Renderer) symbolRow(sym *symtab.Symbol) (symbolRow, error) {
	row := symbolRow{
		Name:   sym.Key,
		Anchor: r.anchorFor(sym),
		Line:   sym.Line,
	}
	var err error
	if row.Uses, err = r.refViews(sym.Uses); err != nil {
		return symbolRow{}, err
	}
	if row.UsedBy, err = r.refViews(sym.UsedBy); err != nil {
		return symbolRow{}, err
	}
	return row, nil
}

func (r *Renderer) refViews(refs []symtab.Ref) ([]refView, error) {
	views := make([]refView, 0, len(refs))
	for _, ref := range refs {
		target, err := r.table.ResolveRef(ref)
		if err != nil {
			return nil, err
		}
		view := refView{Label: ref.Key}
		if target.Declared {
			view.Anchor = r.anchorFor(target)
		}
		views = append(views, view)
	}
	return views, nil
}

func (r *Renderer) anchorFor(sym *symtab.Symbol) string {
	if a, ok := r.anchors[sym]; ok {
		return a
	}
	r.next++
	a := fmt.Sprintf("x%d", r.next)
	r.anchors[sym] = a
	return a
}

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Cross-reference: {{.Root}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { border-bottom: 2px solid #444; }
h2 { margin-top: 2em; border-bottom: 1px solid #999; }
h3 { color: #555; text-transform: capitalize; }
table { border-collapse: collapse; margin: 0.5em 0 1.5em; }
td, th { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
code { font-family: monospace; }
.unresolved { color: #a00; font-style: italic; }
.toc li { margin: 0.2em 0; }
.line { color: #888; }
</style>
</head>
<body>
<h1>Cross-reference: {{.Root}}</h1>
<p>Generated {{.Generated}}</p>
<ul class="toc">
{{- range .Files}}
<li><a href="#{{.Anchor}}"><code>{{.Path}}</code></a></li>
{{- end}}
</ul>
{{- range .Files}}
<h2 id="{{.Anchor}}"><code>{{.Path}}</code></h2>
{{- range .Groups}}
<h3>{{.Category}}</h3>
<table>
<tr><th>Symbol</th><th>Line</th><th>Uses</th><th>Used by</th></tr>
{{- range .Symbols}}
<tr>
<td id="{{.Anchor}}"><code>{{.Name}}</code></td>
<td class="line">{{.Line}}</td>
<td>{{template "refs" .Uses}}</td>
<td>{{template "refs" .UsedBy}}</td>
</tr>
{{- end}}
</table>
{{- end}}
{{- if .Lexicals}}
<h3>lexical</h3>
<table>
<tr><th>Symbol</th><th>Line</th><th>Uses</th><th>Used by</th></tr>
{{- range .Lexicals}}
<tr>
<td id="{{.Anchor}}"><code>{{.Name}}</code></td>
<td class="line">{{.Line}}</td>
<td>{{template "refs" .Uses}}</td>
<td>{{template "refs" .UsedBy}}</td>
</tr>
{{- end}}
</table>
{{- end}}
{{- if .FileUses}}
<h3>file body uses</h3>
<p>{{template "refs" .FileUses}}</p>
{{- end}}
{{- end}}
</body>
</html>
{{- define "refs"}}
{{- range $i, $ref := .}}{{if $i}}, {{end}}
{{- if $ref.Anchor}}<a href="#{{$ref.Anchor}}"><code>{{$ref.Label}}</code></a>
{{- else}}<span class="unresolved"><code>{{$ref.Label}}</code> (unresolved)</span>{{end}}
{{- end}}
{{- end}}`))
