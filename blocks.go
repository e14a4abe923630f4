package captainhook

import (
	"regexp"
	"strings"
)

// BlockIDs returns the IDs of all begin markers found in the template, in
// order of first appearance. IDs are matched as runs of non-space characters.
// Returns nil if the comment style does not place {type} exactly once.
func (inj *Injector) BlockIDs() []string {
	re := inj.beginMarkerPattern()
	if re == nil {
		return nil
	}

	var ids []string
	seen := make(map[string]bool)
	for _, m := range re.FindAllStringSubmatch(inj.template, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}

// beginMarkerPattern builds a regexp matching any begin marker, capturing
// the block ID.
func (inj *Injector) beginMarkerPattern() *regexp.Regexp {
	const hole = "\x00"
	rendered := inj.renderer.Render(inj.commentStyle, map[string]string{VarMarker: markerBegin, VarType: hole})
	parts := strings.Split(rendered, hole)
	if len(parts) != 2 {
		return nil
	}

	prefix, suffix := regexp.QuoteMeta(parts[0]), regexp.QuoteMeta(parts[1])
	if parts[1] == "" {
		return regexp.MustCompile(prefix + `(\S+)`)
	}
	return regexp.MustCompile(prefix + `(\S+?)` + suffix)
}
