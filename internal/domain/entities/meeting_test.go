package entities

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNewMeeting(t *testing.T) {
	blank := "  "
	m, err := NewMeeting(" Weekly sync ", time.Time{}, []string{"Ann", " ", "Ben "}, &blank)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Weekly sync" {
		t.Fatalf("expected trimmed title, got %q", m.Title)
	}
	if m.Date.IsZero() {
		t.Fatalf("expected date to default to now")
	}
	if !reflect.DeepEqual([]string(m.Participants), []string{"Ann", "Ben"}) {
		t.Fatalf("unexpected participants %v", m.Participants)
	}
	if m.Agenda != nil {
		t.Fatalf("expected blank agenda dropped")
	}

	if _, err := NewMeeting("", time.Now(), nil, nil); !errors.Is(err, ErrInvalidMeeting) {
		t.Fatalf("expected ErrInvalidMeeting, got %v", err)
	}
}

func TestMeetingSpeakersAndRename(t *testing.T) {
	m := &Meeting{Transcript: []TranscriptSegment{
		{Text: "a", Speaker: "Speaker 2"},
		{Text: "b", Speaker: "Speaker 1"},
		{Text: "c", Speaker: "Speaker 2"},
	}}
	if got := m.Speakers(); !reflect.DeepEqual(got, []string{"Speaker 2", "Speaker 1"}) {
		t.Fatalf("unexpected speakers %v", got)
	}

	changed := m.RenameSpeakers(map[string]string{"Speaker 2": "Alice", "Speaker 1": " "})
	if changed != 2 {
		t.Fatalf("expected 2 segments changed, got %d", changed)
	}
	if m.Transcript[0].Speaker != "Alice" || m.Transcript[1].Speaker != "Speaker 1" {
		t.Fatalf("unexpected labels after rename: %+v", m.Transcript)
	}
}

func TestMinutesOrEmpty(t *testing.T) {
	m := &Meeting{}
	if got := m.MinutesOrEmpty(); got == nil || !got.IsEmpty() {
		t.Fatalf("expected empty minutes")
	}
}
