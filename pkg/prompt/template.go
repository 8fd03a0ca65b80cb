package prompt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// Template wraps a text/template parsed either from disk or from an
// in-memory source, with an optional function map. It is immutable after
// construction and safe for concurrent use.
type Template struct {
	name  string
	funcs template.FuncMap
	tmpl  *template.Template
	hash  string
}

// NewTemplate parses the template at path using the provided template functions.
func NewTemplate(path string, funcs template.FuncMap) (*Template, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("prompt template path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt template %q: %w", path, err)
	}
	t := &Template{
		name:  filepath.Base(path),
		funcs: funcs,
	}
	if err := t.parse(data); err != nil {
		return nil, err
	}
	return t, nil
}

// NewTemplateFromSource parses src under name.
func NewTemplateFromSource(name string, src []byte, funcs template.FuncMap) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("prompt template name is empty")
	}
	t := &Template{
		name:  name,
		funcs: funcs,
	}
	if err := t.parse(src); err != nil {
		return nil, err
	}
	return t, nil
}

// Load returns the template at path when one is configured, and the
// built-in source otherwise.
func Load(path, name string, fallback []byte, funcs template.FuncMap) (*Template, error) {
	if strings.TrimSpace(path) != "" {
		return NewTemplate(path, funcs)
	}
	return NewTemplateFromSource(name, fallback, funcs)
}

// Render executes the template with the provided data and returns the rendered string.
func (t *Template) Render(data any) (string, error) {
	if t.tmpl == nil {
		return "", fmt.Errorf("prompt template %q not parsed", t.name)
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", t.name, err)
	}
	return buf.String(), nil
}

// Name reports the template name, the file base name for disk templates.
func (t *Template) Name() string { return t.name }

// Digest returns the sha256 hash of the template content.
func (t *Template) Digest() string { return t.hash }

func (t *Template) parse(data []byte) error {
	tmpl := template.New(t.name).Option("missingkey=error")
	if len(t.funcs) > 0 {
		tmpl = tmpl.Funcs(t.funcs)
	}
	if _, err := tmpl.Parse(string(data)); err != nil {
		return fmt.Errorf("parse prompt template %q: %w", t.name, err)
	}
	t.tmpl = tmpl
	t.hash = computeDigest(data)
	return nil
}
