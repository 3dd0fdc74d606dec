package markup

import (
	"html"
	"regexp"
	"strings"
)

// LinkResolver resolves a textual @link target into an opaque reference
// id, given the path of the snippet source it appears in.
type LinkResolver interface {
	ResolveLink(target, origin string) (id string, ok bool)
}

// RefStore collects the reference ids of successfully resolved links.
// The store is owned by the caller and shared across snippet parses.
type RefStore interface {
	StoreRef(id string)
}

type opKind int

const (
	opHighlight opKind = iota
	opReplace
	opLink
)

// Operation is a single-line text transformation built from a markup tag.
// It carries no mutable state and operates on already HTML-escaped text.
type Operation struct {
	kind        opKind
	substring   string         // HTML-escaped needle, "" when unset
	pattern     *regexp.Regexp // nil when unset
	marker      string         // highlight wrap tag: "b", "i" or "em"
	ref         string         // attribute-escaped reference id for links
	replacement string         // HTML-escaped replacement text
}

// Apply transforms one escaped line. When a substring is set it is
// rewritten first; a regex is then also applied. With neither set the
// whole line is rewritten.
func (op *Operation) Apply(line string) string {
	applied := false
	if op.substring != "" {
		line = strings.ReplaceAll(line, op.substring, op.rewrite(op.substring))
		applied = true
	}
	if op.pattern != nil {
		line = op.pattern.ReplaceAllStringFunc(line, op.rewrite)
		applied = true
	}
	if !applied {
		line = op.rewrite(line)
	}
	return line
}

func (op *Operation) rewrite(text string) string {
	switch op.kind {
	case opReplace:
		return op.replacement
	case opLink:
		return `<a data-ref="` + op.ref + `">` + text + `</a>`
	default:
		return "<" + op.marker + ">" + text + "</" + op.marker + ">"
	}
}

// matcher extracts the shared substring/regex attributes. The substring
// needle is escaped so it matches escaped line text. A regex that fails
// to compile rejects the whole tag.
func matcher(tag Tag, attrs Attributes, rep Reporter) (substring string, pattern *regexp.Regexp, ok bool) {
	if s := attrs["substring"]; s != "" {
		substring = html.EscapeString(s)
	}
	if rx := attrs["regex"]; rx != "" {
		p, err := regexp.Compile(rx)
		if err != nil {
			rep.Warnf("invalid regex in @%s tag: %v", tag, err)
			return "", nil, false
		}
		pattern = p
	}
	return substring, pattern, true
}

var highlightMarkers = map[string]string{
	"bold":        "b",
	"italic":      "i",
	"highlighted": "em",
}

// buildHighlight wraps matched text in a bold/italic/emphasis marker
// pair. Type defaults to bold; an unknown type rejects the tag.
func buildHighlight(attrs Attributes, rep Reporter) *Operation {
	kind := attrs["type"]
	if kind == "" {
		kind = "bold"
	}
	marker, ok := highlightMarkers[kind]
	if !ok {
		rep.Warnf("unknown type %s used in @highlight tag", kind)
		return nil
	}
	substring, pattern, ok := matcher(TagHighlight, attrs, rep)
	if !ok {
		return nil
	}
	return &Operation{kind: opHighlight, substring: substring, pattern: pattern, marker: marker}
}

// buildReplace replaces matched text with the replacement attribute,
// which is required.
func buildReplace(attrs Attributes, rep Reporter) *Operation {
	replacement := attrs["replacement"]
	if replacement == "" {
		rep.Warnf("missing replacement attribute in @replace tag")
		return nil
	}
	substring, pattern, ok := matcher(TagReplace, attrs, rep)
	if !ok {
		return nil
	}
	return &Operation{kind: opReplace, substring: substring, pattern: pattern, replacement: html.EscapeString(replacement)}
}

// buildLink wraps matched text in a link anchor carrying the resolved
// reference id. The target attribute is required and must resolve.
func buildLink(attrs Attributes, origin string, links LinkResolver, refs RefStore, rep Reporter) *Operation {
	target := attrs["target"]
	if target == "" {
		rep.Warnf("missing target attribute in @link tag")
		return nil
	}
	if links == nil {
		rep.Warnf("cannot resolve @link target %s", target)
		return nil
	}
	id, ok := links.ResolveLink(target, origin)
	if !ok {
		rep.Warnf("cannot resolve @link target %s", target)
		return nil
	}
	if refs != nil {
		refs.StoreRef(id)
	}
	substring, pattern, ok := matcher(TagLink, attrs, rep)
	if !ok {
		return nil
	}
	return &Operation{kind: opLink, substring: substring, pattern: pattern, ref: html.EscapeString(id)}
}
