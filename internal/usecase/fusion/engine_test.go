package fusion

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

type fakeBackend struct {
	turns    []entities.SpeakerTurn
	err      error
	calls    int
	expected *int
}

func (f *fakeBackend) Diarize(ctx context.Context, audioPath string, expectedSpeakers *int) ([]entities.SpeakerTurn, error) {
	f.calls++
	f.expected = expectedSpeakers
	return f.turns, f.err
}

type fakeProber struct {
	duration float64
	err      error
}

func (f fakeProber) Duration(ctx context.Context, audioPath string) (float64, error) {
	return f.duration, f.err
}

func TestEngineDiarize_UsesBackend(t *testing.T) {
	backend := &fakeBackend{turns: []entities.SpeakerTurn{{Start: 0, End: 5, Label: "Speaker A"}}}
	engine := NewEngine(backend, fakeProber{duration: 100}, zaptest.NewLogger(t))

	two := 2
	turns := engine.Diarize(context.Background(), "meeting.wav", &two)
	if len(turns) != 1 || turns[0].Label != "Speaker A" {
		t.Fatalf("expected backend turns, got %+v", turns)
	}
	if backend.expected == nil || *backend.expected != 2 {
		t.Fatalf("expected speaker count to reach backend")
	}
}

func TestEngineDiarize_BackendErrorFallsBack(t *testing.T) {
	backend := &fakeBackend{err: errors.New("model unavailable")}
	engine := NewEngine(backend, fakeProber{duration: 61}, zaptest.NewLogger(t))

	turns := engine.Diarize(context.Background(), "meeting.wav", nil)
	if len(turns) != 3 {
		t.Fatalf("expected 3 fallback turns, got %d", len(turns))
	}
	if turns[2].End != 61 {
		t.Fatalf("expected last turn to end at 61, got %v", turns[2].End)
	}
}

func TestEngineDiarize_NoBackendFallsBack(t *testing.T) {
	engine := NewEngine(nil, fakeProber{duration: 45}, nil)
	turns := engine.Diarize(context.Background(), "meeting.wav", nil)
	if len(turns) != 2 || turns[1].Label != "Speaker 2" {
		t.Fatalf("unexpected fallback turns %+v", turns)
	}
}

func TestEngineDiarize_UnknownDurationYieldsNoTurns(t *testing.T) {
	engine := NewEngine(&fakeBackend{err: errors.New("boom")}, fakeProber{err: errors.New("ffprobe missing")}, nil)
	if turns := engine.Diarize(context.Background(), "meeting.wav", nil); len(turns) != 0 {
		t.Fatalf("expected no turns, got %d", len(turns))
	}

	engine = NewEngine(nil, nil, nil)
	if turns := engine.Diarize(context.Background(), "meeting.wav", nil); len(turns) != 0 {
		t.Fatalf("expected no turns without prober, got %d", len(turns))
	}
}

func TestEngineFuse_KeepsLabelsWhenNoTurns(t *testing.T) {
	engine := NewEngine(nil, fakeProber{err: errors.New("unknown")}, nil)
	in := []entities.TranscriptSegment{{Start: 0, End: 1, Text: "hi", Speaker: "Alice", Confidence: 1}}

	out := engine.Fuse(context.Background(), in, "meeting.wav", nil)
	if out[0].Speaker != "Alice" {
		t.Fatalf("expected label kept, got %s", out[0].Speaker)
	}
}
