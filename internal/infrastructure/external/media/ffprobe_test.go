package media

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

func TestParseDuration(t *testing.T) {
	good := map[string]float64{
		"75.000000\n":      75,
		" 3600.5 ":         3600.5,
		"12.25\n12.000000": 12.25,
	}
	for in, want := range good {
		got, err := parseDuration(in)
		if err != nil || got != want {
			t.Errorf("parseDuration(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	for _, in := range []string{"", "N/A", "abc", "0", "-3"} {
		if _, err := parseDuration(in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}

func TestDuration_MissingFile(t *testing.T) {
	p := NewProber("")
	_, err := p.Duration(context.Background(), filepath.Join(t.TempDir(), "nope.mp3"))
	if !errors.Is(err, entities.ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
}
