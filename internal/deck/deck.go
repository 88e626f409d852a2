// Package deck loads the ordered list of sections a presentation is built
// from. A deck is immutable once loaded; a file change produces a new Deck.
package deck

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides for deck-level fields.
const EnvPrefix = "SCROLLFX_DECK_"

// ErrEmpty is returned when a deck has no sections.
var ErrEmpty = errors.New("deck has no sections")

// Section is one navigable unit of content.
type Section struct {
	Index      int       `koanf:"-"`
	Media      string    `koanf:"media"`
	Title      string    `koanf:"title"`
	LeftLabel  string    `koanf:"left"`
	RightLabel string    `koanf:"right"`
	Gallery    []Section `koanf:"gallery"`
}

// HasGallery reports whether the section opens an overlay gallery.
func (s Section) HasGallery() bool {
	return len(s.Gallery) > 0
}

// Words splits the title for progressive reveal.
func (s Section) Words() []string {
	return strings.Fields(s.Title)
}

// Deck is an ordered, immutable list of sections.
type Deck struct {
	Title    string    `koanf:"title"`
	Footer   string    `koanf:"footer"`
	Sections []Section `koanf:"sections"`

	Path string `koanf:"-"`
}

// Len returns the number of top-level sections.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Sections)
}

// At returns the section at i.
func (d *Deck) At(i int) (Section, bool) {
	if d == nil || i < 0 || i >= len(d.Sections) {
		return Section{}, false
	}
	return d.Sections[i], true
}

// MediaRefs returns the media reference of every section in order.
func MediaRefs(sections []Section) []string {
	refs := make([]string, len(sections))
	for i, s := range sections {
		refs[i] = s.Media
	}
	return refs
}

// Load reads a YAML deck from path, then overlays SCROLLFX_DECK_TITLE and
// SCROLLFX_DECK_FOOTER from the environment.
func Load(path string) (*Deck, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("deck path is required")
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading deck %s: %w", path, err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading deck env overrides: %w", err)
	}
	d := &Deck{}
	if err := k.Unmarshal("", d); err != nil {
		return nil, fmt.Errorf("decoding deck %s: %w", path, err)
	}
	d.Path = path
	d.normalize(filepath.Dir(path))
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck %s: %w", path, err)
	}
	return d, nil
}

// New builds a deck from in-memory sections, assigning indexes.
func New(title string, sections []Section) *Deck {
	d := &Deck{Title: title, Sections: sections}
	d.normalize("")
	return d
}

// Validate checks structural requirements.
func (d *Deck) Validate() error {
	if d == nil || len(d.Sections) == 0 {
		return ErrEmpty
	}
	for _, s := range d.Sections {
		if strings.TrimSpace(s.Media) == "" && strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("section %d: media or title is required", s.Index+1)
		}
		for _, g := range s.Gallery {
			if strings.TrimSpace(g.Media) == "" {
				return fmt.Errorf("section %d gallery item %d: media is required", s.Index+1, g.Index+1)
			}
		}
	}
	return nil
}

func (d *Deck) normalize(base string) {
	for i := range d.Sections {
		s := &d.Sections[i]
		s.Index = i
		s.Media = resolveMedia(base, s.Media)
		for j := range s.Gallery {
			g := &s.Gallery[j]
			g.Index = j
			g.Media = resolveMedia(base, g.Media)
			g.Gallery = nil
		}
	}
}

// resolveMedia makes relative file references absolute against the deck
// directory. URLs and absolute paths pass through.
func resolveMedia(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == "" {
		return ref
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Scheme != "file" {
		return ref
	}
	path := strings.TrimPrefix(ref, "file://")
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Exists reports whether path names a readable deck file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
