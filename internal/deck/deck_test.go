package deck

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/scrollfx/internal/testutil"
)

const sampleDeck = `
title: Selected Works
footer: Festival Vibes
sections:
  - media: images/cyber.png
    title: Cyber Future
    left: Neon
    right: 2021
  - media: https://example.com/city.jpg
    title: Neon City
    left: Night
    right: 2022
    gallery:
      - media: gallery/a.png
        title: First
      - media: /abs/b.png
  - media: retro.png
    left: Retro
    right: 2023
`

func TestLoadAssignsIndexesAndResolvesMedia(t *testing.T) {
	path := testutil.WriteDeck(t, sampleDeck)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Selected Works" || d.Footer != "Festival Vibes" {
		t.Fatalf("unexpected header/footer %q/%q", d.Title, d.Footer)
	}
	if d.Len() != 3 {
		t.Fatalf("expected 3 sections, got %d", d.Len())
	}
	base := filepath.Dir(path)
	for i, s := range d.Sections {
		if s.Index != i {
			t.Fatalf("expected index %d, got %d", i, s.Index)
		}
	}
	if got := d.Sections[0].Media; got != filepath.Join(base, "images/cyber.png") {
		t.Fatalf("expected relative media resolved, got %q", got)
	}
	if got := d.Sections[1].Media; got != "https://example.com/city.jpg" {
		t.Fatalf("expected URL untouched, got %q", got)
	}
	gallery := d.Sections[1].Gallery
	if len(gallery) != 2 || gallery[1].Index != 1 {
		t.Fatalf("unexpected gallery %#v", gallery)
	}
	if gallery[1].Media != "/abs/b.png" {
		t.Fatalf("expected absolute gallery path untouched, got %q", gallery[1].Media)
	}
	if !d.Sections[1].HasGallery() || d.Sections[0].HasGallery() {
		t.Fatalf("unexpected gallery flags")
	}
	if d.Sections[2].LeftLabel != "Retro" || d.Sections[2].RightLabel != "2023" {
		t.Fatalf("unexpected labels %#v", d.Sections[2])
	}
}

func TestLoadEnvOverridesTitle(t *testing.T) {
	t.Setenv("SCROLLFX_DECK_TITLE", "Override")
	path := testutil.WriteDeck(t, sampleDeck)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Title != "Override" {
		t.Fatalf("expected env override, got %q", d.Title)
	}
}

func TestLoadRejectsEmptyDeck(t *testing.T) {
	path := testutil.WriteDeck(t, "title: nothing\n")
	_, err := Load(path)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadRejectsGalleryWithoutMedia(t *testing.T) {
	path := testutil.WriteDeck(t, "sections:\n  - title: A\n    gallery:\n      - title: missing\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "gallery item 1") {
		t.Fatalf("expected gallery validation error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestMediaRefsAndWords(t *testing.T) {
	d := New("t", []Section{{Media: "a", Title: "Cyber  Future"}, {Media: "b"}})
	refs := MediaRefs(d.Sections)
	if len(refs) != 2 || refs[0] != "a" || refs[1] != "b" {
		t.Fatalf("unexpected refs %v", refs)
	}
	if words := d.Sections[0].Words(); len(words) != 2 || words[1] != "Future" {
		t.Fatalf("unexpected words %v", words)
	}
	if d.Sections[1].Index != 1 {
		t.Fatalf("expected index assigned by New")
	}
}
