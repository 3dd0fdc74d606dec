package markup

import (
	"regexp"
	"strings"
)

// Attributes maps attribute names to their decoded values. A name present
// with an empty value means the attribute had no "=value" part (or the
// value text was blank). Duplicate names resolve last-wins.
type Attributes map[string]string

// Attribute grammar: repeated name[=value], value single-quoted,
// double-quoted or a bare run of non-whitespace.
var attrRe = regexp.MustCompile(`(\w+)\s*(=\s*('([^']*)'|"([^"]*)"|(\S*)))?\s*`)

// Per-tag attribute allow-lists. Names outside the list are dropped with
// a warning.
var allowedAttrs = map[Tag]map[string]bool{
	TagStart:     {"region": true},
	TagEnd:       {"region": true},
	TagHighlight: {"substring": true, "regex": true, "region": true, "type": true},
	TagReplace:   {"substring": true, "regex": true, "region": true, "replacement": true},
	TagLink:      {"substring": true, "regex": true, "region": true, "target": true, "type": true},
}

// parseAttributes tokenizes the attribute text of a tag body (the part
// after the "@tagname" keyword) and validates names against the allow-list
// for the tag. Parsing continues past rejected names.
func parseAttributes(tag Tag, text string, rep Reporter) Attributes {
	attrs := make(Attributes)
	text = strings.TrimSpace(text)
	if text == "" {
		return attrs
	}
	for _, m := range attrRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if name == "" {
			continue
		}
		if !allowedAttrs[tag][name] {
			rep.Warnf("invalid attribute %s used in @%s tag", name, tag)
			continue
		}
		attrs[name] = attrValue(m)
	}
	return attrs
}

// attrValue decodes the matched value alternative: single-quoted,
// double-quoted or bare. Returns "" when the attribute had no value.
func attrValue(m []string) string {
	if m[2] == "" {
		return ""
	}
	quoted := m[3]
	switch {
	case strings.HasPrefix(quoted, "'"):
		return m[4]
	case strings.HasPrefix(quoted, `"`):
		return m[5]
	default:
		return m[6]
	}
}
