// Package prompt implements the canned-reply template collaborator: named
// templates with pure {{path.to.value}} substitution. It is intentionally
// not a general template language; there are no conditionals or loops.
package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when rendering a template name that was never added.
var ErrNotFound = fmt.Errorf("template not found")

// placeholderRe matches {{dotted.path}} markers. Paths are looked up in the
// variables map with dotted-path semantics.
var placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z0-9_\-.]+)\}\}`)

// Registry stores named template texts. It is safe for concurrent access.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]string
}

// NewRegistry constructs an empty template registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]string)}
}

// Add stores (or replaces) a template text under a name.
func (r *Registry) Add(name, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[name] = text
}

// Has reports whether a template with the given name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.templates[name]
	return ok
}

// Render looks up the named template and substitutes its placeholders from
// vars. Unknown names fail with ErrNotFound.
func (r *Registry) Render(name string, vars map[string]any) (string, error) {
	r.mu.RLock()
	text, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	return RenderText(text, vars), nil
}

// RenderText substitutes {{path.to.value}} placeholders in text using
// dotted-path lookup into vars. Placeholders whose path resolves to nothing
// are left verbatim in the output. Object- and array-valued variables are
// serialized to their canonical JSON text form.
func RenderText(text string, vars map[string]any) string {
	if len(vars) == 0 {
		return text
	}

	doc, err := json.Marshal(vars)
	if err != nil {
		return text
	}

	return placeholderRe.ReplaceAllStringFunc(text, func(marker string) string {
		path := placeholderRe.FindStringSubmatch(marker)[1]
		value := gjson.GetBytes(doc, path)
		if !value.Exists() {
			return marker
		}
		if value.IsObject() || value.IsArray() {
			return value.Raw
		}
		return value.String()
	})
}
