package markup

import "testing"

func TestScanLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		match   bool
		syntax  string
		tagBody string
		code    string
	}{
		{
			name:    "slash comment with code",
			line:    "foo() // @start region=x",
			match:   true,
			syntax:  "//",
			tagBody: "@start region=x",
			code:    "foo()",
		},
		{
			name:    "hash comment",
			line:    "bar # @end",
			match:   true,
			syntax:  "#",
			tagBody: "@end",
			code:    "bar",
		},
		{
			name:    "single quote comment",
			line:    "Dim x ' @highlight substring='x'",
			match:   true,
			syntax:  "'",
			tagBody: "@highlight substring='x'",
			code:    "Dim x",
		},
		{
			name:    "uppercase rem without code",
			line:    "REM @replace replacement='y'",
			match:   true,
			syntax:  "REM",
			tagBody: "@replace replacement='y'",
			code:    "",
		},
		{
			name:    "no whitespace before tag",
			line:    "code //@link target=Foo",
			match:   true,
			syntax:  "//",
			tagBody: "@link target=Foo",
			code:    "code",
		},
		{
			name:    "continuation marker preserved",
			line:    "code //@highlight substring='x':",
			match:   true,
			syntax:  "//",
			tagBody: "@highlight substring='x':",
			code:    "code",
		},
		{
			name:  "tag without comment introducer",
			line:  "@start region=x",
			match: false,
		},
		{
			name:  "ordinary comment",
			line:  "foo // just a comment",
			match: false,
		},
		{
			name:  "tag keyword with suffix",
			line:  "foo //@starting",
			match: false,
		},
		{
			name:  "markup not at end of line",
			line:  "foo // @start region=x ; bar()",
			match: true,
			// the attribute text swallows the rest of the line
			syntax:  "//",
			tagBody: "@start region=x ; bar()",
			code:    "foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comment, code, ok := ScanLine(tt.line)
			if ok != tt.match {
				t.Fatalf("ScanLine(%q) match = %v, want %v", tt.line, ok, tt.match)
			}
			if !tt.match {
				return
			}
			if comment.Syntax != tt.syntax {
				t.Errorf("syntax = %q, want %q", comment.Syntax, tt.syntax)
			}
			if comment.TagBody != tt.tagBody {
				t.Errorf("tagBody = %q, want %q", comment.TagBody, tt.tagBody)
			}
			if code != tt.code {
				t.Errorf("code = %q, want %q", code, tt.code)
			}
		})
	}
}

func TestSplitTag(t *testing.T) {
	tests := []struct {
		body string
		tag  Tag
		rest string
		ok   bool
	}{
		{"@start region=x", TagStart, "region=x", true},
		{"@end", TagEnd, "", true},
		{"@highlight substring='a' type=bold", TagHighlight, "substring='a' type=bold", true},
		{"@unknown foo", "", "", false},
		{"start region=x", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			tag, rest, ok := SplitTag(tt.body)
			if ok != tt.ok || tag != tt.tag || rest != tt.rest {
				t.Errorf("SplitTag(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.body, tag, rest, ok, tt.tag, tt.rest, tt.ok)
			}
		})
	}
}

func TestRegions(t *testing.T) {
	lines := []string{
		"a",
		"//@start region=first",
		"b //@start region=second",
		"//@start",
		"//@end region=second",
		"//@end region=first",
	}
	got := Regions(lines)
	want := []string{"first", "second"}
	if len(got) != len(want) {
		t.Fatalf("Regions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Regions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
