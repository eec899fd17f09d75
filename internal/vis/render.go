//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vis

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"github.com/go-echarts/go-echarts/v2/components"
)

var (
	Msg         = lnch.NewMessageMakerWithDefaults()
	ChartWidth  = vv.DEFAULTCHRTWIDTH
	ChartHeight = vv.DEFAULTCHRTHEIGHT
)

// Fragment - the html+js for one or more charts; meant to be injected into a page that already loads echarts
func Fragment(cc ...components.Charter) (string, error) {
	p := pageof("", cc...)
	p.Renderer = NewCustomPageRender(p, p.Validate)

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return "", fmt.Errorf("Fragment(): %w", err)
	}
	return buf.String(), nil
}

// Standalone - a complete html page with its own <head> and the echarts assets
func Standalone(w io.Writer, title string, cc ...components.Charter) error {
	p := pageof(title, cc...)
	p.Renderer = &CustomPageRender{c: p, before: []func(){p.Validate}, full: true}
	return p.Render(w)
}

// WriteHTML - Standalone() into dir/fn; returns the path
func WriteHTML(dir string, fn string, title string, cc ...components.Charter) (string, error) {
	const (
		MSG1 = "wrote %s"
	)
	if err := os.MkdirAll(dir, vv.DIRPERMS); err != nil {
		return "", fmt.Errorf("WriteHTML(): %w", err)
	}
	path := filepath.Join(dir, fn)

	var buf bytes.Buffer
	if err := Standalone(&buf, title, cc...); err != nil {
		return "", fmt.Errorf("WriteHTML(): %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), vv.WRITEPERMS); err != nil {
		return "", fmt.Errorf("WriteHTML(): %w", err)
	}
	Msg.PEEK(fmt.Sprintf(MSG1, path))
	return path, nil
}

// pageof - we are building the page by hand: the assets of every chart get copied onto it
func pageof(title string, cc ...components.Charter) *components.Page {
	p := components.NewPage()
	if title != "" {
		p.PageTitle = title
	}
	for _, c := range cc {
		c.Validate()
		assets := c.GetAssets()
		for _, v := range assets.JSAssets.Values {
			p.JSAssets.Add(v)
		}
		for _, v := range assets.CSSAssets.Values {
			p.CSSAssets.Add(v)
		}
		p.Charts = append(p.Charts, c)
	}
	p.Validate()
	return p
}

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

// go-echarts is "too clever" and opaque about how to not do things its way:
// we override page.Render() to yield html+js that can be dropped into a div

// ModRenderer etc modified from https://github.com/go-echarts/go-echarts/render/engine.go
type ModRenderer interface {
	Render(w io.Writer) error
}

type CustomPageRender struct {
	c      interface{}
	before []func()
	full   bool
}

// NewCustomPageRender returns a render implementation for Page.
func NewCustomPageRender(c interface{}, before ...func()) ModRenderer {
	return &CustomPageRender{c: c, before: before}
}

// Render renders the page into the given io.Writer.
func (r *CustomPageRender) Render(w io.Writer) error {
	const (
		TEMPLNAME = "chart"
		FULLNAME  = "fullpage"
		PATTERN   = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	contents := []string{CustomHeaderTpl, CustomBaseTpl, CustomPageTpl, CustomFullPageTpl}
	tpl := ModMustTemplate(TEMPLNAME, contents)

	name := TEMPLNAME
	if r.full {
		name = FULLNAME
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

// ModMustTemplate creates a new template with the given name and parsed contents.
func ModMustTemplate(name string, contents []string) *template.Template {
	const (
		JSNAME = "safeJS"
	)

	tpl := template.Must(template.New(name).Parse(contents[0])).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	})

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

// CustomHeaderTpl etc. adapted from https://github.com/go-echarts/go-echarts/templates/
var CustomHeaderTpl = `
{{ define "header" }}
<head>
	<!-- CustomHeaderTpl -->
    <meta charset="utf-8">
    <title>{{ .PageTitle }}</title>
{{- range .JSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CustomizedJSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
{{- range .CustomizedCSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
</head>
{{ end }}
`

var CustomBaseTpl = `
{{- define "base" }}
<!-- CustomBaseTpl -->
<div class="container">
    <div class="item" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
	let action_{{ .ChartID | safeJS }} = {{ .JSONNotEscapedAction | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});
 	goecharts_{{ .ChartID | safeJS }}.dispatchAction(action_{{ .ChartID | safeJS }});

    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var CustomPageTpl = `
{{- define "chart" }}
	<!-- "style" overridden because it is set in cws.css -->
	<!-- CustomPageTpl -->
	{{ if eq .Layout "none" }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}
	
	{{ if eq .Layout "center" }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}
	
	{{ if eq .Layout "flex" }}
		<div class="box"> {{- range .Charts }} {{ template "base" . }} {{- end }} </div>
	{{ end }}
{{ end }}
`

var CustomFullPageTpl = `
{{- define "fullpage" }}<!DOCTYPE html>
<html>
{{ template "header" . }}
<body>
<style> .container {display: flex;justify-content: center;align-items: center; } .item {margin: auto;} </style>
{{ template "chart" . }}
</body>
</html>
{{ end }}
`
