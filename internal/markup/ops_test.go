package markup

import (
	"strings"
	"testing"
)

// stubResolver maps targets to ids for tests
type stubResolver map[string]string

func (s stubResolver) ResolveLink(target, _ string) (string, bool) {
	id, ok := s[target]
	return id, ok
}

// stubStore collects stored reference ids
type stubStore struct {
	ids []string
}

func (s *stubStore) StoreRef(id string) {
	s.ids = append(s.ids, id)
}

func TestBuildHighlight(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		line  string
		want  string
	}{
		{
			name:  "whole line defaults to bold",
			attrs: Attributes{},
			line:  "foo bar",
			want:  "<b>foo bar</b>",
		},
		{
			name:  "explicit bold substring",
			attrs: Attributes{"type": "bold", "substring": "bar"},
			line:  "foo bar baz",
			want:  "foo <b>bar</b> baz",
		},
		{
			name:  "italic whole line",
			attrs: Attributes{"type": "italic"},
			line:  "foo",
			want:  "<i>foo</i>",
		},
		{
			name:  "highlighted regex",
			attrs: Attributes{"type": "highlighted", "regex": `\d+`},
			line:  "x = 42",
			want:  "x = <em>42</em>",
		},
		{
			name:  "substring repeats",
			attrs: Attributes{"substring": "a"},
			line:  "a b a",
			want:  "<b>a</b> b <b>a</b>",
		},
		{
			// Both matchers supplied: substring applies first, then the
			// regex also applies. Documented quirk, not a requirement.
			name:  "substring and regex apply in sequence",
			attrs: Attributes{"substring": "foo", "regex": "qux"},
			line:  "foo qux",
			want:  "<b>foo</b> <b>qux</b>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &Recorder{}
			op := buildHighlight(tt.attrs, rec)
			if op == nil {
				t.Fatalf("buildHighlight(%v) = nil, warnings %v", tt.attrs, rec.Warnings())
			}
			if got := op.Apply(tt.line); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestBuildHighlightUnknownType(t *testing.T) {
	rec := &Recorder{}
	if op := buildHighlight(Attributes{"type": "blinking"}, rec); op != nil {
		t.Fatal("expected nil operation for unknown type")
	}
	if len(rec.Warnings()) != 1 || !strings.Contains(rec.Warnings()[0], "blinking") {
		t.Errorf("expected warning naming the type, got %v", rec.Warnings())
	}
}

func TestBuildHighlightInvalidRegex(t *testing.T) {
	rec := &Recorder{}
	if op := buildHighlight(Attributes{"regex": "("}, rec); op != nil {
		t.Fatal("expected nil operation for invalid regex")
	}
	if len(rec.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %v", rec.Warnings())
	}
}

func TestBuildReplace(t *testing.T) {
	rec := &Recorder{}
	op := buildReplace(Attributes{"substring": "secret", "replacement": "xxx"}, rec)
	if op == nil {
		t.Fatalf("buildReplace = nil, warnings %v", rec.Warnings())
	}
	if got := op.Apply("pass=secret"); got != "pass=xxx" {
		t.Errorf("Apply = %q, want %q", got, "pass=xxx")
	}
}

func TestBuildReplaceWholeLine(t *testing.T) {
	rec := &Recorder{}
	op := buildReplace(Attributes{"replacement": "redacted"}, rec)
	if op == nil {
		t.Fatalf("buildReplace = nil, warnings %v", rec.Warnings())
	}
	if got := op.Apply("anything at all"); got != "redacted" {
		t.Errorf("Apply = %q, want %q", got, "redacted")
	}
}

func TestBuildReplaceEscapesReplacement(t *testing.T) {
	rec := &Recorder{}
	op := buildReplace(Attributes{"replacement": "<nil>"}, rec)
	if op == nil {
		t.Fatalf("buildReplace = nil, warnings %v", rec.Warnings())
	}
	if got := op.Apply("x"); got != "&lt;nil&gt;" {
		t.Errorf("Apply = %q, want %q", got, "&lt;nil&gt;")
	}
}

func TestBuildReplaceMissingReplacement(t *testing.T) {
	rec := &Recorder{}
	if op := buildReplace(Attributes{"substring": "x"}, rec); op != nil {
		t.Fatal("expected nil operation for missing replacement")
	}
	if len(rec.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %v", rec.Warnings())
	}
}

func TestBuildLink(t *testing.T) {
	rec := &Recorder{}
	store := &stubStore{}
	links := stubResolver{"Foo": "ref-1"}

	op := buildLink(Attributes{"target": "Foo", "substring": "Foo"}, "main.go", links, store, rec)
	if op == nil {
		t.Fatalf("buildLink = nil, warnings %v", rec.Warnings())
	}
	if got := op.Apply("see Foo here"); got != `see <a data-ref="ref-1">Foo</a> here` {
		t.Errorf("Apply = %q", got)
	}
	if len(store.ids) != 1 || store.ids[0] != "ref-1" {
		t.Errorf("store = %v, want [ref-1]", store.ids)
	}
}

func TestBuildLinkUnresolvedTarget(t *testing.T) {
	rec := &Recorder{}
	store := &stubStore{}

	if op := buildLink(Attributes{"target": "Missing"}, "", stubResolver{}, store, rec); op != nil {
		t.Fatal("expected nil operation for unresolved target")
	}
	if len(rec.Warnings()) != 1 || !strings.Contains(rec.Warnings()[0], "Missing") {
		t.Errorf("expected warning naming the target, got %v", rec.Warnings())
	}
	if len(store.ids) != 0 {
		t.Errorf("store should be empty, got %v", store.ids)
	}
}

func TestBuildLinkMissingTarget(t *testing.T) {
	rec := &Recorder{}
	if op := buildLink(Attributes{}, "", stubResolver{}, nil, rec); op != nil {
		t.Fatal("expected nil operation for missing target")
	}
	if len(rec.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %v", rec.Warnings())
	}
}

func TestBuildLinkEscapesRefID(t *testing.T) {
	rec := &Recorder{}
	links := stubResolver{"T": `id"with<chars>`}

	op := buildLink(Attributes{"target": "T"}, "", links, nil, rec)
	if op == nil {
		t.Fatalf("buildLink = nil, warnings %v", rec.Warnings())
	}
	want := `<a data-ref="id&#34;with&lt;chars&gt;">x</a>`
	if got := op.Apply("x"); got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}
