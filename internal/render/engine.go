package render

import (
	"fmt"
	"html/template"
	"strings"

	"resume-builder/internal/resumes"
	"resume-builder/internal/templates"
)

// Engine is the one parameterized layout engine behind every template in
// the registry. A render call is a pure function of the document, the
// template's layout descriptor and the mode: no global state, no
// document mutation, no viewport dependence.
type Engine struct {
	Registry *templates.Registry
	tmpl     *template.Template
}

// NewEngine constructs an Engine over the given registry.
func NewEngine(reg *templates.Registry) *Engine {
	funcs := template.FuncMap{
		// seq repeats a block n times; used for skill dot rows.
		"seq": func(n int) []struct{} {
			if n < 0 {
				n = 0
			}
			return make([]struct{}, n)
		},
	}
	return &Engine{
		Registry: reg,
		tmpl:     template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate)),
	}
}

// Render lays out a document into a fixed-size page. The explicit
// templateID wins over the document's own selection (previewing another
// template without saving); pass "" to use the document's. Unregistered
// template ids fail closed: no fallback template is ever substituted.
func (e *Engine) Render(doc resumes.Resume, templateID string, opts Options) (Page, error) {
	if templateID == "" {
		templateID = doc.TemplateID
	}
	tpl, err := e.Registry.Get(templateID)
	if err != nil {
		return Page{}, err
	}
	if opts.Mode == "" {
		opts.Mode = ModeInteractive
	}

	view := buildView(doc, tpl, opts)
	view = applyGlyph(view, tpl.Layout.BulletGlyph)

	var buf strings.Builder
	if err := e.tmpl.Execute(&buf, view); err != nil {
		return Page{}, fmt.Errorf("render template %q: %w", templateID, err)
	}

	return Page{
		HTML:       buf.String(),
		TemplateID: templateID,
		WidthIn:    view.WidthIn,
		HeightIn:   view.HeightIn,
	}, nil
}

// applyGlyph prefixes description bullet lines with the descriptor's
// glyph. Done in the view, not the template, to keep the template free
// of per-template branching.
func applyGlyph(v pageView, glyph string) pageView {
	if glyph == "" {
		glyph = "•"
	}
	for si := range v.Sections {
		for ei := range v.Sections[si].Entries {
			bullets := v.Sections[si].Entries[ei].Bullets
			for bi := range bullets {
				bullets[bi] = glyph + " " + bullets[bi]
			}
		}
	}
	return v
}

// pageTemplate is the single HTML layout shared by all templates. Every
// visual difference between catalog entries comes in through the view:
// fonts, colors, header arrangement, section order, skill indicator.
// The page is a fixed physical size and clips overflow; content that
// does not fit the single page is cut off rather than flowed to a
// second page.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  html, body { background: #ffffff; }
  .page {
    width: {{printf "%.3f" .WidthIn}}in;
    height: {{printf "%.3f" .HeightIn}}in;
    padding: {{printf "%.3f" .PaddingIn}}in;
    margin: 0 auto;
    background: #ffffff;
    color: #1a1a1a;
    font-family: {{.FontStack}};
    font-size: calc(10pt * {{printf "%.3f" .Zoom}});
    line-height: 1.45;
    position: relative;
    overflow: hidden;
  }
  .header { margin-bottom: 1.4em; }
  .header.centered { text-align: center; }
  .header.banner {
    background: {{.Primary}};
    color: #ffffff;
    margin: calc(-1 * {{printf "%.3f" .PaddingIn}}in);
    margin-bottom: 1.4em;
    padding: {{printf "%.3f" .PaddingIn}}in;
  }
  .header .name { font-size: 2.2em; font-weight: 700; }
  .header .title { font-size: 1.25em; color: {{.Accent}}; margin-top: 0.15em; }
  .header.banner .title { color: {{.Secondary}}; }
  .header .contact { font-size: 0.9em; margin-top: 0.6em; }
  .section { margin-bottom: 1.3em; }
  .section h2 {
    font-size: 1.2em;
    font-weight: 700;
    color: {{.Primary}};
    border-bottom: 1px solid {{.Secondary}};
    padding-bottom: 0.2em;
    margin-bottom: 0.6em;
  }
  .header.banner ~ .section h2 { border-bottom-color: {{.Secondary}}; }
  .entry { margin-bottom: 0.9em; }
  .entry .row { display: flex; justify-content: space-between; align-items: baseline; }
  .entry .heading { font-weight: 700; }
  .entry .dates { font-size: 0.9em; white-space: nowrap; }
  .entry .meta { font-size: 0.9em; color: #555555; }
  .entry ul { list-style: none; margin-top: 0.3em; }
  .entry li { font-size: 0.92em; margin-bottom: 0.2em; }
  .entry .note { font-size: 0.92em; margin-top: 0.25em; }
  .placeholder { font-size: 0.92em; font-style: italic; color: #777777; }
  .skills { display: flex; flex-wrap: wrap; }
  .skill { margin-bottom: 0.5em; padding-right: 0.8em; }
  .skill .name { font-weight: 600; font-size: 0.95em; }
  .skill .dots { color: {{.Primary}}; letter-spacing: 0.15em; font-size: 0.9em; }
  .skill .bar { background: {{.Secondary}}; height: 0.35em; border-radius: 0.2em; margin-top: 0.25em; }
  .skill .bar .fill { background: {{.Primary}}; height: 100%; border-radius: 0.2em; }
  .langs { display: flex; flex-wrap: wrap; }
  .lang { width: 50%; margin-bottom: 0.4em; }
  .lang .name { font-weight: 600; }
  .lang .level { font-size: 0.9em; color: #555555; }
</style>
</head>
<body>
<div class="page">
  <div class="header {{.Header}}">
    <div class="name">{{.FullName}}</div>
    {{if .Title}}<div class="title">{{.Title}}</div>{{end}}
    {{if .ContactLine}}<div class="contact">{{range $i, $part := .ContactLine}}{{if $i}} &bull; {{end}}{{$part}}{{end}}</div>{{end}}
    {{if .LinkLine}}<div class="contact">{{range $i, $part := .LinkLine}}{{if $i}} &bull; {{end}}{{$part}}{{end}}</div>{{end}}
  </div>
  {{range .Sections}}
  {{if eq .Kind "summary"}}
  <div class="section">
    <h2>{{.Title}}</h2>
    {{if .Paragraph}}<p>{{.Paragraph}}</p>{{else}}<div class="placeholder">{{.Placeholder}}</div>{{end}}
  </div>
  {{else if eq .Kind "skills"}}
  <div class="section">
    <h2>{{.Title}}</h2>
    {{if .Skills}}
    <div class="skills">
      {{$mode := .SkillMode}}{{$cols := .Columns}}
      {{range .Skills}}
      <div class="skill" style="width: calc(100% / {{$cols}});">
        <div class="name">{{.Name}}</div>
        {{if eq $mode "dots"}}
        <div class="dots">{{range seq .Filled}}&#9679;{{end}}{{range seq .Empty}}&#9675;{{end}}</div>
        {{else if eq $mode "bars"}}
        <div class="bar"><div class="fill" style="width: {{.Percent}}%;"></div></div>
        {{end}}
      </div>
      {{end}}
    </div>
    {{else}}<div class="placeholder">{{.Placeholder}}</div>{{end}}
  </div>
  {{else if eq .Kind "languages"}}
  <div class="section">
    <h2>{{.Title}}</h2>
    {{if .Languages}}
    <div class="langs">
      {{range .Languages}}
      <div class="lang">
        <span class="name">{{.Name}}</span>
        {{if .Proficiency}}<span class="level"> &mdash; {{.Proficiency}}</span>{{end}}
      </div>
      {{end}}
    </div>
    {{else}}<div class="placeholder">{{.Placeholder}}</div>{{end}}
  </div>
  {{else}}
  <div class="section">
    <h2>{{.Title}}</h2>
    {{if .Entries}}
    {{range .Entries}}
    <div class="entry">
      <div class="row">
        <span class="heading">{{.Heading}}</span>
        {{if .DateRange}}<span class="dates">{{.DateRange}}</span>{{end}}
      </div>
      {{if or .SubHeading .Meta}}
      <div class="row">
        <span>{{.SubHeading}}</span>
        <span class="meta">{{.Meta}}</span>
      </div>
      {{end}}
      {{if .Bullets}}
      <ul>
        {{range .Bullets}}<li>{{.}}</li>{{end}}
      </ul>
      {{end}}
      {{if .Note}}<div class="note">{{.Note}}</div>{{end}}
    </div>
    {{end}}
    {{else}}<div class="placeholder">{{.Placeholder}}</div>{{end}}
  </div>
  {{end}}
  {{end}}
</div>
</body>
</html>`
