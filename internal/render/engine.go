// Package render compiles and executes generator templates.
package render

import (
	"bytes"
	"fmt"
	"text/template"
)

type Options struct {
	LStripBlocks bool
	TrimBlocks   bool
	// MissingKey is the text/template missingkey option.
	MissingKey string
}

func DefaultOptions() Options {
	return Options{
		LStripBlocks: true,
		TrimBlocks:   true,
		MissingKey:   "error",
	}
}

type Engine struct {
	opts  Options
	funcs template.FuncMap
}

func NewEngine(opts Options) (*Engine, error) {
	switch opts.MissingKey {
	case "":
		opts.MissingKey = "error"
	case "error", "zero", "default", "invalid":
	default:
		return nil, fmt.Errorf("invalid missing key mode %q", opts.MissingKey)
	}

	return &Engine{
		opts:  opts,
		funcs: FuncMap(),
	}, nil
}

func (e *Engine) Compile(name, src string) (*template.Template, error) {
	src = StripBlockWhitespace(src, e.opts.LStripBlocks, e.opts.TrimBlocks)

	tmpl, err := template.New(name).
		Option("missingkey=" + e.opts.MissingKey).
		Funcs(e.funcs).
		Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return tmpl, nil
}

// Execute renders tmpl fully into memory so callers never see partial
// output of a failing template.
func (e *Engine) Execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}
	return buf.Bytes(), nil
}

// Render compiles and executes src in one step.
func (e *Engine) Render(name, src string, data any) ([]byte, error) {
	tmpl, err := e.Compile(name, src)
	if err != nil {
		return nil, err
	}
	return e.Execute(tmpl, data)
}
