// Package source resolves which snippet body the markup engine parses:
// an inline text block, or lines read from an external file with an
// optional extraction region.
package source

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"snipmd/internal/markup"
)

// Placeholder is substituted for the snippet body when neither an inline
// body nor an external file can be resolved.
const Placeholder = "// snippet not resolved"

// ErrUnresolved signals that a request names no usable snippet source
var ErrUnresolved = errors.New("snippet source not resolved")

// Request names a snippet body to resolve. Body wins over File when both
// are set; Region only applies to external files.
type Request struct {
	Body   string
	File   string
	Region string
}

// Snippet is a resolved snippet body ready for processing
type Snippet struct {
	Lines  []string
	Region string // extraction target, "" for whole body
	Origin string // file path, "" for inline bodies
}

// Resolve turns a request into snippet lines. Inline bodies are split on
// newlines and never carry an extraction target.
func Resolve(req Request) (Snippet, error) {
	if req.Body != "" {
		return Snippet{Lines: strings.Split(req.Body, "\n")}, nil
	}
	if req.File != "" {
		lines, err := ReadLines(req.File)
		if err != nil {
			return Snippet{}, err
		}
		return Snippet{Lines: lines, Region: req.Region, Origin: req.File}, nil
	}
	return Snippet{}, ErrUnresolved
}

// ReadLines reads a file into a slice of lines
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Entry is one browsable snippet region discovered in a file tree
type Entry struct {
	File   string
	Region string // "" for a whole-file entry
}

// ScanDir walks dir and returns an entry for every named region opened by
// @start markup. Files that cannot be read are skipped. A plain file path
// yields its own regions.
func ScanDir(dir string) ([]Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return scanFile(dir), nil
	}

	var entries []Entry
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() {
			entries = append(entries, scanFile(path)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func scanFile(path string) []Entry {
	lines, err := ReadLines(path)
	if err != nil {
		return nil
	}
	var entries []Entry
	for _, region := range markup.Regions(lines) {
		entries = append(entries, Entry{File: path, Region: region})
	}
	return entries
}
