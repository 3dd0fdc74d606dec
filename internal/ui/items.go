package ui

import (
	"path/filepath"
	"strings"

	"snipmd/internal/markup"
	"snipmd/internal/refs"
	"snipmd/internal/source"
)

// snippetItem wraps a discovered snippet region with display metadata and
// a lazily computed preview
type snippetItem struct {
	entry  source.Entry
	folder string
	file   string

	processed bool
	body      string   // processed, still carrying the marker vocabulary
	warnings  []string // diagnostics collected while processing
}

// newSnippetItem creates a snippetItem from a discovered entry
func newSnippetItem(entry source.Entry) *snippetItem {
	return &snippetItem{
		entry:  entry,
		folder: filepath.Base(filepath.Dir(entry.File)),
		file:   filepath.Base(entry.File),
	}
}

// process runs the markup engine once and caches the result
func (item *snippetItem) process(links refs.TableResolver) {
	if item.processed {
		return
	}
	item.processed = true

	snippet, err := source.Resolve(source.Request{File: item.entry.File, Region: item.entry.Region})
	if err != nil {
		item.body = source.Placeholder
		return
	}

	rec := &markup.Recorder{}
	p := markup.NewProcessor(rec)
	p.Links = links
	p.Origin = snippet.Origin
	item.body = p.Process(snippet.Lines, snippet.Region)
	for _, d := range rec.Diagnostics() {
		item.warnings = append(item.warnings, d.Message)
	}
}

// matchesQuery checks if the item matches all search words,
// case-insensitive substring matching
func (item *snippetItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !item.containsWord(word) {
			return false
		}
	}
	return true
}

func (item *snippetItem) containsWord(word string) bool {
	if containsIgnoreCase(item.entry.Region, word) {
		return true
	}
	if containsIgnoreCase(item.file, word) {
		return true
	}
	return containsIgnoreCase(item.folder, word)
}

func containsIgnoreCase(s, substr string) bool {
	if len(substr) > len(s) {
		return false
	}
	return strings.Contains(strings.ToLower(s), substr)
}
