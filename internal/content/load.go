package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Content file names inside a content directory.
const (
	WordsFile    = "words.json"
	ReadingsFile = "readings.json"
	ListenFile   = "listen.json"
	ManifestFile = "manifest.json"
)

// Manifest describes a content directory.
type Manifest struct {
	Version string `json:"version"`
}

// LoadDir loads a catalog from dir. words.json is required; readings,
// listening material and the manifest are optional.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads a catalog from the root of fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	wf, err := fsys.Open(WordsFile)
	if err != nil {
		return nil, &LoadError{Source: WordsFile, Err: err}
	}
	books, err := LoadWords(wf)
	wf.Close()
	if err != nil {
		return nil, err
	}

	var readings []ReadingArticle
	if err := withOptional(fsys, ReadingsFile, func(r io.Reader) error {
		readings, err = LoadReadings(r)
		return err
	}); err != nil {
		return nil, err
	}

	var speeches []SpeechArticle
	if err := withOptional(fsys, ListenFile, func(r io.Reader) error {
		speeches, err = LoadSpeeches(r)
		return err
	}); err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := withOptional(fsys, ManifestFile, func(r io.Reader) error {
		manifest, err = loadManifest(r)
		return err
	}); err != nil {
		return nil, err
	}

	c, err := New(books, readings, speeches)
	if err != nil {
		return nil, &LoadError{Source: WordsFile, Err: err}
	}
	c.Version = manifest.Version
	return c, nil
}

func withOptional(fsys fs.FS, name string, fn func(io.Reader) error) error {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &LoadError{Source: name, Err: err}
	}
	defer f.Close()
	return fn(f)
}

// LoadWords decodes a words.json document after checking it against the
// embedded schema.
func LoadWords(r io.Reader) ([]WordBook, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: WordsFile, Err: err}
	}
	if err := validateWordsJSON(raw); err != nil {
		return nil, &LoadError{Source: WordsFile, Err: err}
	}
	var books []WordBook
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, &LoadError{Source: WordsFile, Err: err}
	}
	return books, nil
}

// LoadReadings accepts both {"readings": [...]} and a bare array.
func LoadReadings(r io.Reader) ([]ReadingArticle, error) {
	raw, err := readJSON(r)
	if err != nil {
		return nil, &LoadError{Source: ReadingsFile, Err: err}
	}

	var readings []ReadingArticle
	if raw[0] == '[' {
		err = json.Unmarshal(raw, &readings)
	} else {
		var wrapper struct {
			Readings []ReadingArticle `json:"readings"`
		}
		err = json.Unmarshal(raw, &wrapper)
		readings = wrapper.Readings
	}
	if err != nil {
		return nil, &LoadError{Source: ReadingsFile, Err: err}
	}
	return readings, nil
}

// SpeechBook groups the listening articles of one book, as written to
// listen.json.
type SpeechBook struct {
	Name     string          `json:"name"`
	BookName string          `json:"bookName,omitempty"`
	Speeches []SpeechArticle `json:"speeches"`
}

// LoadSpeeches accepts every listening layout produced over time:
// {"speeches": [...]}, {"books": [{name, speeches}]}, a bare array of
// such book groups, or a bare array of articles carrying bookName.
func LoadSpeeches(r io.Reader) ([]SpeechArticle, error) {
	raw, err := readJSON(r)
	if err != nil {
		return nil, &LoadError{Source: ListenFile, Err: err}
	}

	var items []json.RawMessage
	if raw[0] == '[' {
		err = json.Unmarshal(raw, &items)
	} else {
		var wrapper struct {
			Speeches []json.RawMessage `json:"speeches"`
			Books    []json.RawMessage `json:"books"`
		}
		err = json.Unmarshal(raw, &wrapper)
		items = append(wrapper.Speeches, wrapper.Books...)
	}
	if err != nil {
		return nil, &LoadError{Source: ListenFile, Err: err}
	}

	var out []SpeechArticle
	for i, item := range items {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(item, &probe); err != nil {
			return nil, &LoadError{Source: ListenFile, Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		if _, grouped := probe["speeches"]; grouped {
			var g SpeechBook
			if err := json.Unmarshal(item, &g); err != nil {
				return nil, &LoadError{Source: ListenFile, Err: fmt.Errorf("book %d: %w", i, err)}
			}
			book := g.Name
			if book == "" {
				book = g.BookName
			}
			for _, s := range g.Speeches {
				if s.BookName == "" {
					s.BookName = book
				}
				out = append(out, s)
			}
			continue
		}
		var s SpeechArticle
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, &LoadError{Source: ListenFile, Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		out = append(out, s)
	}
	return out, nil
}

func loadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return m, &LoadError{Source: ManifestFile, Err: err}
	}
	if m.Version != "" {
		v, ok := canonicalVersion(m.Version)
		if !ok {
			return m, &LoadError{Source: ManifestFile, Err: fmt.Errorf("invalid version %q", m.Version)}
		}
		m.Version = v
	}
	return m, nil
}

func readJSON(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("empty document")
	}
	if raw[0] != '[' && raw[0] != '{' {
		return nil, fmt.Errorf("expected a JSON object or array, got %q", string(raw[:1]))
	}
	return raw, nil
}

// WriteJSON writes v as indented JSON to path, creating parent
// directories as needed.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// DefaultBookIDs maps the textbook names used by the bundled content to
// their short IDs.
var DefaultBookIDs = map[string]string{
	"英语五年级上册": "grade5-upper",
	"英语六年级上册": "grade6-upper",
	"英语五年级下册": "grade5-lower",
	"英语六年级下册": "grade6-lower",
}

func bookIDFor(name string) string {
	if id, ok := DefaultBookIDs[strings.TrimSpace(name)]; ok {
		return id
	}
	return name
}
