package markup

import (
	"regexp"
	"strings"
)

// MarkupComment is a trailing line comment that carries snippet markup
type MarkupComment struct {
	Syntax  string // literal comment introducer, e.g. "//" or "#"
	TagBody string // full "@tag ..." text, trailing whitespace preserved
}

// A line carries markup iff it ends with a recognized comment introducer
// followed by one of the five tag keywords.
var markupLineRe = regexp.MustCompile(`(//|#|rem|REM|')\s*(@(start|end|highlight|replace|link)(\s.+)?)$`)

// ScanLine checks whether line ends with a markup comment. On a match it
// returns the comment, the code portion of the line (markup removed,
// trailing whitespace trimmed) and true.
func ScanLine(line string) (MarkupComment, string, bool) {
	loc := markupLineRe.FindStringSubmatchIndex(line)
	if loc == nil {
		return MarkupComment{}, "", false
	}
	comment := MarkupComment{
		Syntax:  line[loc[2]:loc[3]],
		TagBody: line[loc[4]:loc[5]],
	}
	code := strings.TrimRight(line[:loc[0]], " \t")
	return comment, code, true
}

// Tag is one of the five markup tag keywords
type Tag string

const (
	TagStart     Tag = "start"
	TagEnd       Tag = "end"
	TagHighlight Tag = "highlight"
	TagReplace   Tag = "replace"
	TagLink      Tag = "link"
)

// SplitTag splits a tag body into the tag keyword and the trailing
// attribute text. The body must carry the leading "@".
func SplitTag(body string) (Tag, string, bool) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "@") {
		return "", "", false
	}
	name, rest := body[1:], ""
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name, rest = name[:i], name[i+1:]
	}
	switch Tag(name) {
	case TagStart, TagEnd, TagHighlight, TagReplace, TagLink:
		return Tag(name), strings.TrimSpace(rest), true
	}
	return "", "", false
}

// Regions returns the names of all regions opened by @start tags in the
// given lines, in order of appearance. Attribute problems are ignored.
func Regions(lines []string) []string {
	var names []string
	for _, line := range lines {
		comment, _, ok := ScanLine(line)
		if !ok {
			continue
		}
		tag, rest, ok := SplitTag(comment.TagBody)
		if !ok || tag != TagStart {
			continue
		}
		attrs := parseAttributes(tag, rest, discardReporter{})
		if name := attrs["region"]; name != "" {
			names = append(names, name)
		}
	}
	return names
}
