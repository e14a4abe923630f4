package captainhook

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-captainhook/internal/fileutil"
)

// Injector rewrites marked blocks of a single template.
//
// An Injector is not safe for concurrent use: Inject reads and then replaces
// the template. Use one Injector per template and serialize calls.
type Injector struct {
	template           string
	templateType       TemplateType
	commentStyle       string
	injectionTemplates map[string]string
	renderer           Renderer

	// idAtStart and idAtEnd are set when markers start or end with the block
	// ID, as in "// begin:js".
	idAtStart bool
	idAtEnd   bool
}

// New creates an Injector for template.
// Returns ErrUnknownTemplateType if the type has no built-in comment style and
// none was given with WithCommentStyle, and ErrInvalidCommentStyle if the
// comment style cannot tell begin and end markers apart.
func New(template string, opts ...Option) (*Injector, error) {
	cfg := injectorConfig{
		templateType: DefaultTemplateType,
		renderer:     DefaultRenderer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.templateType == "" {
		cfg.templateType = DefaultTemplateType
	}

	style := cfg.commentStyle
	if style == "" {
		var ok bool
		style, ok = DefaultCommentStyle(cfg.templateType)
		if !ok {
			return nil, fmt.Errorf("%w: %q (use WithCommentStyle for custom types)", ErrUnknownTemplateType, cfg.templateType)
		}
	}

	inj := &Injector{
		template:           template,
		templateType:       cfg.templateType,
		commentStyle:       style,
		injectionTemplates: mergeDefaults(cfg.injectionTemplates, defaultInjectionTemplates),
		renderer:           cfg.renderer,
	}

	if err := inj.validateCommentStyle(); err != nil {
		return nil, err
	}

	return inj, nil
}

// validateCommentStyle checks that rendered markers are non-empty, differ
// between begin and end, and embed the block ID.
func (inj *Injector) validateCommentStyle() error {
	const probe = "captainhook-probe"
	tags := inj.GenerateCommentTags(probe)
	if strings.TrimSpace(tags.Begin) == "" || tags.Begin == tags.End {
		return fmt.Errorf("%w: %q must reference {%s}", ErrInvalidCommentStyle, inj.commentStyle, VarMarker)
	}
	if !strings.Contains(tags.Begin, probe) || !strings.Contains(tags.End, probe) {
		return fmt.Errorf("%w: %q must reference {%s}", ErrInvalidCommentStyle, inj.commentStyle, VarType)
	}
	inj.idAtStart = strings.HasPrefix(tags.Begin, probe) || strings.HasPrefix(tags.End, probe)
	inj.idAtEnd = strings.HasSuffix(tags.Begin, probe) || strings.HasSuffix(tags.End, probe)
	return nil
}

// Template returns the current template content.
func (inj *Injector) Template() string {
	return inj.template
}

// TemplateType returns the configured template type.
func (inj *Injector) TemplateType() TemplateType {
	return inj.templateType
}

// CommentStyle returns the marker pattern in use.
func (inj *Injector) CommentStyle() string {
	return inj.commentStyle
}

// InjectionTemplates returns a copy of the merged extension templates.
func (inj *Injector) InjectionTemplates() map[string]string {
	return copyTemplates(inj.injectionTemplates)
}

// Extensions returns the configured extensions, sorted.
func (inj *Injector) Extensions() []string {
	exts := make([]string, 0, len(inj.injectionTemplates))
	for ext := range inj.injectionTemplates {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// GenerateCommentTags renders the begin and end markers for blockID.
func (inj *Injector) GenerateCommentTags(blockID string) CommentTags {
	return CommentTags{
		Begin: inj.renderer.Render(inj.commentStyle, map[string]string{VarMarker: markerBegin, VarType: blockID}),
		End:   inj.renderer.Render(inj.commentStyle, map[string]string{VarMarker: markerEnd, VarType: blockID}),
	}
}

// BlockIndexes locates the block delimited by tags.
// The first occurrence of each marker is used.
// Returns ErrBlockNotFound if the begin marker is absent and ErrMalformedBlock
// if the end marker is missing or starts before the begin marker ends.
func (inj *Injector) BlockIndexes(tags CommentTags) (BlockIndexes, error) {
	begin := indexMarker(inj.template, tags.Begin, inj.idAtStart, inj.idAtEnd)
	if begin < 0 {
		return BlockIndexes{}, fmt.Errorf("%w: %q", ErrBlockNotFound, tags.Begin)
	}

	end := indexMarker(inj.template, tags.End, inj.idAtStart, inj.idAtEnd)
	if end < 0 {
		return BlockIndexes{}, fmt.Errorf("%w: %q has no %q", ErrMalformedBlock, tags.Begin, tags.End)
	}
	if end < begin+len(tags.Begin) {
		return BlockIndexes{}, fmt.Errorf("%w: %q appears before %q", ErrMalformedBlock, tags.End, tags.Begin)
	}

	return BlockIndexes{Begin: begin, End: end + len(tags.End)}, nil
}

// indexMarker returns the offset of the first occurrence of marker in s.
// Block IDs are runs of non-space bytes, as in BlockIDs. When the marker ends
// with the ID, occurrences followed by a non-space byte are part of a longer
// ID ("// begin:js" inside "// begin:js.min") and are skipped; idAtStart does
// the same for the byte before. Returns -1 if there is none.
func indexMarker(s, marker string, idAtStart, idAtEnd bool) int {
	if marker == "" {
		return -1
	}
	for offset := 0; offset <= len(s); {
		i := strings.Index(s[offset:], marker)
		if i < 0 {
			return -1
		}
		i += offset
		next := i + len(marker)
		startOK := !idAtStart || i == 0 || isSpaceByte(s[i-1])
		endOK := !idAtEnd || next >= len(s) || isSpaceByte(s[next])
		if startOK && endOK {
			return i
		}
		offset = i + 1
	}
	return -1
}

// isSpaceByte reports whether c is in the \s class of package regexp.
func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\f' || c == '\r'
}

// entrySeparator splits block content into entries.
var entrySeparator = regexp.MustCompile(`\s*\n\s*`)

// BlockContents returns the entries currently inside the block, in source
// order with duplicates preserved. Blank lines and indentation are dropped.
func (inj *Injector) BlockContents(tags CommentTags) ([]string, error) {
	idx, err := inj.BlockIndexes(tags)
	if err != nil {
		return nil, err
	}
	return splitEntries(inj.template[idx.Begin+len(tags.Begin) : idx.End-len(tags.End)]), nil
}

func splitEntries(content string) []string {
	parts := entrySeparator.Split(content, -1)
	entries := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			entries = append(entries, p)
		}
	}
	return entries
}

// CreateTag renders the injection template registered for file's extension.
// Extension lookup is case-sensitive. Returns ErrUnknownExtension if no
// template is registered.
func (inj *Injector) CreateTag(file string) (string, error) {
	ext := fileutil.Ext(file)
	tmpl, ok := inj.injectionTemplates[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q (file %q)", ErrUnknownExtension, ext, file)
	}
	return inj.renderer.Render(tmpl, map[string]string{VarFile: file}), nil
}

// Inject replaces the entries of block blockID with tags for files.
//
// Entries already present and still requested keep their relative order;
// new entries are appended in the order given; entries no longer requested
// are removed; duplicates collapse to one. Entries are separated by the
// whitespace that precedes the begin marker.
//
// If the block does not exist the template is returned unchanged with a nil
// error. On any error the template is left untouched.
func (inj *Injector) Inject(blockID string, files []string) (string, error) {
	return inj.inject(blockID, files, inj.CreateTag)
}

// InjectWithTemplate is like Inject but renders every file through
// tagTemplate instead of looking up its extension. An empty tagTemplate
// behaves like Inject.
func (inj *Injector) InjectWithTemplate(blockID string, files []string, tagTemplate string) (string, error) {
	if tagTemplate == "" {
		return inj.Inject(blockID, files)
	}
	return inj.inject(blockID, files, func(file string) (string, error) {
		return inj.renderer.Render(tagTemplate, map[string]string{VarFile: file}), nil
	})
}

func (inj *Injector) inject(blockID string, files []string, createTag func(string) (string, error)) (string, error) {
	if blockID == "" {
		return inj.template, ErrEmptyBlockID
	}

	tags := inj.GenerateCommentTags(blockID)

	original, err := inj.BlockContents(tags)
	if err != nil {
		if errors.Is(err, ErrBlockNotFound) {
			return inj.template, nil
		}
		return inj.template, fmt.Errorf("block %q: %w", blockID, err)
	}

	idx, err := inj.BlockIndexes(tags)
	if err != nil {
		return inj.template, fmt.Errorf("block %q: %w", blockID, err)
	}

	toInject := make([]string, 0, len(files))
	for _, f := range files {
		tag, err := createTag(f)
		if err != nil {
			return inj.template, fmt.Errorf("block %q: %w", blockID, err)
		}
		toInject = append(toInject, tag)
	}

	lines := make([]string, 0, len(toInject)+2)
	lines = append(lines, tags.Begin)
	lines = append(lines, reconcileEntries(original, toInject)...)
	lines = append(lines, tags.End)

	var b strings.Builder
	b.Grow(len(inj.template) + len(toInject)*64)
	b.WriteString(inj.template[:idx.Begin])
	b.WriteString(strings.Join(lines, indentation(inj.template, idx.Begin)))
	b.WriteString(inj.template[idx.End:])

	inj.template = b.String()
	return inj.template, nil
}

// indentation returns the text between the last newline before pos and pos,
// newline included. When no newline precedes pos one is prepended so joined
// entries still start on their own line.
func indentation(template string, pos int) string {
	start := strings.LastIndexByte(template[:pos], '\n')
	if start < 0 {
		start = 0
	}
	indent := template[start:pos]
	if !strings.Contains(indent, "\n") {
		indent = "\n" + indent
	}
	return indent
}

// reconcileEntries returns the entries of toInject, deduplicated, with those
// already in original first (in original order) followed by the rest (in
// toInject order).
func reconcileEntries(original, toInject []string) []string {
	wanted := make(map[string]bool, len(toInject))
	for _, e := range toInject {
		wanted[e] = true
	}

	out := make([]string, 0, len(toInject))
	seen := make(map[string]bool, len(toInject))
	for _, e := range original {
		if wanted[e] && !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	for _, e := range toInject {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}
