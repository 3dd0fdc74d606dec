package markup

import (
	"html"
	"strings"
)

// Processor runs the snippet markup engine over a block of source lines.
// Each Process call owns its own region stack and output accumulator, so
// one Processor may serve concurrent calls for different snippets.
type Processor struct {
	Links  LinkResolver // optional, @link targets fail to resolve when nil
	Refs   RefStore     // optional, receives ids of resolved links
	Origin string       // source path handed to the link resolver

	rep Reporter
}

// NewProcessor returns a Processor emitting diagnostics to rep
func NewProcessor(rep Reporter) *Processor {
	if rep == nil {
		rep = discardReporter{}
	}
	return &Processor{rep: rep}
}

// Process interprets the markup in lines and returns the transformed
// snippet body. A non-empty extract names a region to pull out of an
// external file: lines before its @start and after its closing @end are
// discarded.
func (p *Processor) Process(lines []string, extract string) string {
	// Continuation folding rewrites the following line, so work on a copy.
	work := make([]string, len(lines))
	copy(work, lines)

	var out []string
	var stack regionStack
	collecting := extract == ""
	closed := false

loop:
	for i := 0; i < len(work); i++ {
		comment, code, ok := ScanLine(work[i])
		if !ok {
			if collecting {
				out = append(out, applyOps(escapeLine(work[i]), stack.activeOps()))
			}
			continue
		}

		// A body ending in ":" is not terminal for this line: it
		// reattaches to the next line with the same comment syntax.
		body := strings.TrimRight(comment.TagBody, " \t")
		if strings.HasSuffix(body, ":") {
			if i+1 >= len(work) {
				p.rep.Warnf("continuation marker on the last line of the snippet")
				break loop
			}
			work[i+1] += " " + comment.Syntax + " " + strings.TrimSuffix(body, ":")
			if collecting && code != "" {
				out = append(out, applyOps(escapeLine(code), stack.activeOps()))
			}
			continue
		}

		tag, rest, ok := SplitTag(body)
		if !ok {
			continue
		}

		if !collecting {
			// Awaiting the requested region: everything before its
			// @start is discarded.
			if tag == TagStart {
				attrs := parseAttributes(tag, rest, discardReporter{})
				if attrs["region"] == extract {
					collecting = true
				}
			}
			continue
		}

		attrs := parseAttributes(tag, rest, p.rep)
		ops := stack.activeOps()

		switch tag {
		case TagStart:
			name := attrs["region"]
			if name == "" {
				p.rep.Warnf("@start tag without a region attribute")
				continue
			}
			stack.push(activeRegion{name: name})
			if code != "" {
				out = append(out, applyOps(escapeLine(code), ops))
			}

		case TagEnd:
			name := attrs["region"]
			if name != "" && extract != "" && name == extract {
				if code != "" {
					out = append(out, applyOps(escapeLine(code), ops))
				}
				closed = true
				break loop
			}
			switch {
			case name != "":
				if !stack.popByName(name) {
					p.rep.Warnf("@end tag for unknown region %s", name)
				}
			default:
				if _, popped := stack.popTop(); !popped {
					if extract != "" {
						if code != "" {
							out = append(out, applyOps(escapeLine(code), ops))
						}
						closed = true
						break loop
					}
					p.rep.Warnf("@end tag without matching start")
				}
			}
			if code != "" {
				out = append(out, applyOps(escapeLine(code), ops))
			}

		default: // highlight, replace, link
			op := p.buildOperation(tag, attrs)
			if op == nil {
				if code != "" {
					out = append(out, applyOps(escapeLine(code), ops))
				}
				continue
			}
			if _, scoped := attrs["region"]; scoped {
				stack.push(activeRegion{name: attrs["region"], op: op})
			}
			if code != "" {
				out = append(out, op.Apply(applyOps(escapeLine(code), ops)))
			}
		}
	}

	if extract != "" && !closed {
		p.rep.Errorf("external snippet does not contain closing @end tag")
	}
	if !stack.empty() {
		p.rep.Warnf("unclosed regions in snippet: %s", strings.Join(stack.names(), ", "))
	}

	return trimIndent(strings.Join(out, "\n"))
}

// buildOperation dispatches to the builder for an operation tag
func (p *Processor) buildOperation(tag Tag, attrs Attributes) *Operation {
	switch tag {
	case TagHighlight:
		return buildHighlight(attrs, p.rep)
	case TagReplace:
		return buildReplace(attrs, p.rep)
	case TagLink:
		return buildLink(attrs, p.Origin, p.Links, p.Refs, p.rep)
	}
	return nil
}

// escapeLine right-trims a raw line and escapes it for HTML embedding.
// Escaping happens exactly once, before any operation is applied.
func escapeLine(line string) string {
	return html.EscapeString(strings.TrimRight(line, " \t"))
}

// applyOps applies operations in order, oldest first
func applyOps(line string, ops []*Operation) string {
	for _, op := range ops {
		line = op.Apply(line)
	}
	return line
}

// trimIndent strips leading and trailing blank lines and removes the
// common leading indentation shared by all non-blank lines.
func trimIndent(body string) string {
	lines := strings.Split(body, "\n")

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	lines = lines[start:end]
	if len(lines) == 0 {
		return ""
	}

	indent := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			indent = lead
			first = false
			continue
		}
		indent = commonPrefix(indent, lead)
	}

	if indent != "" {
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, indent)
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
