package captainhook

import (
	"strings"

	"github.com/alnah/go-captainhook/internal/pattern"
)

// TemplateType selects the comment syntax used for block markers.
type TemplateType string

// Built-in template types.
const (
	TemplateHTML TemplateType = "html"
	TemplateSCSS TemplateType = "scss"
)

// DefaultTemplateType is used when no type is configured.
const DefaultTemplateType = TemplateHTML

// Placeholder names understood by comment styles and injection templates.
const (
	VarMarker = "marker"
	VarType   = "type"
	VarFile   = "file"
)

// Marker values substituted for {marker}.
const (
	markerBegin = "begin"
	markerEnd   = "end"
)

// defaultCommentStyles maps template types to their marker pattern.
var defaultCommentStyles = map[TemplateType]string{
	TemplateHTML: "<!-- {marker}:{type} -->",
	TemplateSCSS: "// {marker}:{type}",
}

// defaultInjectionTemplates maps file extensions to the tag rendered for them.
var defaultInjectionTemplates = map[string]string{
	"css":  `<link rel="stylesheet" type="text/css" href="{file}">`,
	"js":   `<script src="{file}"></script>`,
	"scss": `@import "{file}";`,
}

// DefaultCommentStyle returns the built-in comment style for t.
// The second result is false for types without a built-in style.
func DefaultCommentStyle(t TemplateType) (string, bool) {
	s, ok := defaultCommentStyles[TemplateType(strings.ToLower(string(t)))]
	return s, ok
}

// DefaultInjectionTemplates returns a copy of the built-in extension templates.
func DefaultInjectionTemplates() map[string]string {
	return copyTemplates(defaultInjectionTemplates)
}

// KnownTemplateTypes lists the template types with a built-in comment style.
func KnownTemplateTypes() []TemplateType {
	return []TemplateType{TemplateHTML, TemplateSCSS}
}

// CommentTags holds the literal begin and end markers of one block.
type CommentTags struct {
	Begin string
	End   string
}

// BlockIndexes locates a block in the template.
// Begin is the offset of the begin marker; End is the offset just past the
// end marker.
type BlockIndexes struct {
	Begin int
	End   int
}

// Renderer expands named placeholders in a pattern.
type Renderer interface {
	Render(pattern string, vars map[string]string) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(pattern string, vars map[string]string) string

// Render calls f(pattern, vars).
func (f RendererFunc) Render(p string, vars map[string]string) string {
	return f(p, vars)
}

// Placeholder renderers. Built-in patterns use {name}, so a renderer that
// does not understand braces must be paired with explicit comment styles and
// injection templates.
var (
	// DefaultRenderer expands both {name} and <%= name %> placeholders.
	DefaultRenderer Renderer = pattern.Default

	// BraceRenderer expands {name} placeholders only.
	BraceRenderer Renderer = pattern.Brace

	// ERBRenderer expands <%= name %> placeholders only.
	ERBRenderer Renderer = pattern.ERB
)

// Option configures an Injector.
type Option func(*injectorConfig)

// injectorConfig collects options before New validates them.
type injectorConfig struct {
	templateType       TemplateType
	commentStyle       string
	injectionTemplates map[string]string
	renderer           Renderer
}

// WithTemplateType sets the template type (default "html").
func WithTemplateType(t TemplateType) Option {
	return func(c *injectorConfig) {
		c.templateType = t
	}
}

// WithCommentStyle sets an explicit marker pattern, overriding the one
// derived from the template type. This is how custom template types are
// supported. The pattern must reference both {marker} and {type}.
func WithCommentStyle(style string) Option {
	return func(c *injectorConfig) {
		c.commentStyle = style
	}
}

// WithInjectionTemplates adds extension templates. Keys given here win over
// the built-in defaults; extensions not given keep their default.
func WithInjectionTemplates(templates map[string]string) Option {
	return func(c *injectorConfig) {
		if c.injectionTemplates == nil {
			c.injectionTemplates = make(map[string]string, len(templates))
		}
		for ext, tmpl := range templates {
			c.injectionTemplates[ext] = tmpl
		}
	}
}

// WithRenderer replaces the placeholder renderer.
// Panics if r is nil (programmer error).
func WithRenderer(r Renderer) Option {
	if r == nil {
		panic("captainhook: WithRenderer renderer must not be nil")
	}
	return func(c *injectorConfig) {
		c.renderer = r
	}
}

// mergeDefaults returns a new map holding every key of overrides plus the
// keys of defaults that overrides lacks. Existing keys are never replaced.
func mergeDefaults(overrides, defaults map[string]string) map[string]string {
	merged := make(map[string]string, len(overrides)+len(defaults))
	for k, v := range overrides {
		merged[k] = v
	}
	for k, v := range defaults {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return merged
}

func copyTemplates(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
