package glyph

import "strings"

// Renderer builds display strings from a Provider.
type Renderer struct {
	provider Provider
	icon     string
}

// NewRenderer creates a renderer. An empty icon uses DefaultIcon.
func NewRenderer(p Provider, icon string) *Renderer {
	if icon == "" {
		icon = DefaultIcon
	}
	return &Renderer{provider: p, icon: icon}
}

// Render returns the icon followed by the digit glyphs for seconds.
func (r *Renderer) Render(seconds int) string {
	var b strings.Builder
	b.WriteString(string(r.provider.Lookup(r.icon)))
	for _, name := range Names(seconds) {
		b.WriteString(string(r.provider.Lookup(name)))
	}
	return b.String()
}
