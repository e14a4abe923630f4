// Package pattern expands named placeholders in small text patterns.
// Patterns are used for comment markers and injection tags, e.g.
// "<!-- {marker}:{type} -->" or `<script src="{file}"></script>`.
package pattern

import "regexp"

// Syntax describes a placeholder notation.
type Syntax struct {
	name string
	re   *regexp.Regexp // the first non-empty group captures the variable name
}

const (
	braceExpr = `\{([A-Za-z_][A-Za-z0-9_]*)\}`
	erbExpr   = `<%=\s*([A-Za-z_][A-Za-z0-9_]*)\s*%>`
)

// Placeholder syntaxes.
var (
	// Brace matches {name} placeholders.
	Brace = Syntax{name: "brace", re: regexp.MustCompile(braceExpr)}

	// ERB matches <%= name %> placeholders.
	ERB = Syntax{name: "erb", re: regexp.MustCompile(erbExpr)}

	// Default matches both notations.
	Default = Syntax{name: "default", re: regexp.MustCompile(braceExpr + "|" + erbExpr)}
)

// String returns the syntax name.
func (s Syntax) String() string {
	return s.name
}

// varName returns the variable captured by a submatch.
func varName(sub []string) string {
	for _, g := range sub[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// Render replaces every placeholder whose name is present in vars.
// Placeholders without a matching variable are left untouched.
func (s Syntax) Render(pattern string, vars map[string]string) string {
	if pattern == "" || len(vars) == 0 {
		return pattern
	}
	return s.re.ReplaceAllStringFunc(pattern, func(match string) string {
		name := varName(s.re.FindStringSubmatch(match))
		if v, ok := vars[name]; ok {
			return v
		}
		return match
	})
}

// Placeholders returns the distinct variable names referenced by pattern,
// in order of first appearance.
func (s Syntax) Placeholders(pattern string) []string {
	matches := s.re.FindAllStringSubmatch(pattern, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := varName(m)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Has reports whether pattern references every given variable name.
func (s Syntax) Has(pattern string, names ...string) bool {
	found := s.Placeholders(pattern)
	for _, n := range names {
		ok := false
		for _, f := range found {
			if f == n {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
