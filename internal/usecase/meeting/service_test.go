package meeting

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
)

type harness struct {
	svc         *MeetingService
	repo        *fakeRepo
	transcriber *fakeTranscriber
	summarizer  *fakeSummarizer
	store       *fakeStore
	locker      *cache.MemoryLocker
	uploadDir   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	due := "2026-03-10"
	h := &harness{
		repo: newFakeRepo(),
		transcriber: &fakeTranscriber{result: &entities.Transcription{
			Segments: []entities.TranscriptSegment{
				{Start: 0, End: 3, Text: "Welcome everyone.", Speaker: entities.DefaultSpeaker, Confidence: 0.95},
				{Start: 3, End: 7, Text: "Thanks, let's review the launch.", Speaker: entities.DefaultSpeaker, Confidence: 0.95},
			},
			Language: "en",
			Duration: 7,
			Model:    "whisper-base",
		}},
		summarizer: &fakeSummarizer{minutes: &entities.MeetingMinutes{
			Summary:     []string{"Launch reviewed"},
			Decisions:   []string{},
			ActionItems: []entities.ActionItem{entities.NewActionItem("Bob", "Send checklist", &due)},
			Risks:       []string{},
		}},
		store:     newFakeStore(),
		locker:    cache.NewMemoryLocker(nil),
		uploadDir: t.TempDir(),
	}
	h.svc = NewMeetingService(Dependencies{
		Repo:        h.repo,
		Transcriber: h.transcriber,
		Fuser:       alternatingFuser{},
		Summarizer:  h.summarizer,
		Locker:      h.locker,
		Store:       h.store,
		Logger:      zaptest.NewLogger(t),
	}, Options{
		Language:         "en",
		SupportedFormats: []string{".wav", ".mp3"},
		MaxFileSizeBytes: 1024,
		LockTTL:          time.Minute,
		PresignExpiry:    time.Hour,
		UploadDir:        h.uploadDir,
	})
	return h
}

func writeAudio(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

// upload places a recording inside the service's upload directory
func (h *harness) upload(t *testing.T, name string) string {
	t.Helper()
	dir, err := os.MkdirTemp(h.uploadDir, "rec")
	if err != nil {
		t.Fatalf("upload dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, 16), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func (h *harness) process(t *testing.T) *entities.Meeting {
	t.Helper()
	return h.processFile(t, h.upload(t, "sync.WAV"))
}

func (h *harness) processFile(t *testing.T, path string) *entities.Meeting {
	t.Helper()
	agenda := "Launch readiness"
	m, err := h.svc.Process(context.Background(), ProcessInput{
		Title:        "Weekly sync",
		Date:         time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Participants: []string{"Alice", " Bob "},
		Agenda:       &agenda,
		AudioPath:    path,
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return m
}

func TestProcess_StoresFusedMeeting(t *testing.T) {
	h := newHarness(t)
	m := h.process(t)

	if h.summarizer.context != "Launch readiness" {
		t.Errorf("expected agenda as meeting context, got %q", h.summarizer.context)
	}
	if h.transcriber.language != "en" {
		t.Errorf("expected configured language, got %q", h.transcriber.language)
	}
	if got := m.Speakers(); len(got) != 2 || got[0] != "Speaker 1" || got[1] != "Speaker 2" {
		t.Errorf("expected fused speakers, got %v", got)
	}
	if len(m.Participants) != 2 || m.Participants[1] != "Bob" {
		t.Errorf("participants not cleaned: %v", m.Participants)
	}
	if m.DurationSeconds != 7 || m.TranscriptionModel != "whisper-base" || m.Language != "en" {
		t.Errorf("transcription metadata not copied: %+v", m)
	}
	if m.AudioObjectKey == nil || *m.AudioObjectKey != "audio/"+m.ID.String()+".wav" {
		t.Fatalf("unexpected audio object key %v", m.AudioObjectKey)
	}
	if _, ok := h.store.objects[*m.AudioObjectKey]; !ok {
		t.Errorf("audio was not archived")
	}

	stored, err := h.svc.Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(stored.Minutes.ActionItems) != 1 || stored.Minutes.ActionItems[0].Status != "Open" {
		t.Errorf("unexpected stored minutes %+v", stored.Minutes)
	}
}

func TestProcess_RejectsBadInput(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name  string
		input ProcessInput
		want  error
	}{
		{"missing title", ProcessInput{Title: "  ", AudioPath: writeAudio(t, "a.wav", 1)}, entities.ErrInvalidMeeting},
		{"missing audio", ProcessInput{Title: "x", AudioPath: filepath.Join(t.TempDir(), "nope.wav")}, entities.ErrAudioNotFound},
		{"unsupported", ProcessInput{Title: "x", AudioPath: writeAudio(t, "a.txt", 1)}, entities.ErrUnsupportedAudio},
		{"too large", ProcessInput{Title: "x", AudioPath: writeAudio(t, "big.mp3", 2048)}, entities.ErrAudioTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Process(context.Background(), tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if h.transcriber.calls != 0 {
		t.Errorf("transcriber must not run for rejected input")
	}
}

func TestProcess_TranscriptionFailure(t *testing.T) {
	h := newHarness(t)
	h.transcriber.err = errors.New("decoder rejected file")

	_, err := h.svc.Process(context.Background(), ProcessInput{Title: "x", AudioPath: writeAudio(t, "a.wav", 1)})
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_AI_TRANSCRIPTION_FAILED {
		t.Fatalf("expected transcription app error, got %v", err)
	}
	if len(h.repo.meetings) != 0 {
		t.Errorf("failed meeting must not be stored")
	}
}

func TestProcess_StructuralErrorIsNotStored(t *testing.T) {
	h := newHarness(t)
	h.summarizer.err = &entities.StructuralError{Index: 0, Field: "task"}

	_, err := h.svc.Process(context.Background(), ProcessInput{Title: "x", AudioPath: writeAudio(t, "a.wav", 1)})
	if !errors.Is(err, entities.ErrStructuralValidation) {
		t.Fatalf("expected structural validation error, got %v", err)
	}
	if len(h.repo.meetings) != 0 || len(h.store.objects) != 0 {
		t.Errorf("nothing should be stored after a structural failure")
	}
}

func TestProcess_BusyAudio(t *testing.T) {
	h := newHarness(t)
	path := writeAudio(t, "a.wav", 1)
	abs, _ := filepath.Abs(path)
	if _, ok, _ := h.locker.TryLock(context.Background(), "audio:"+abs, time.Minute); !ok {
		t.Fatal("could not take lock")
	}

	_, err := h.svc.Process(context.Background(), ProcessInput{Title: "x", AudioPath: path})
	if !errors.Is(err, entities.ErrMeetingBusy) {
		t.Fatalf("expected ErrMeetingBusy, got %v", err)
	}
}

func TestProcess_ArchiveFailureStillSaves(t *testing.T) {
	h := newHarness(t)
	h.store.uploadErr = errors.New("bucket offline")

	m := h.process(t)
	if m.AudioObjectKey != nil {
		t.Errorf("object key must stay empty when archiving fails")
	}
	if _, err := h.svc.Get(context.Background(), m.ID); err != nil {
		t.Fatalf("meeting should be stored: %v", err)
	}
}

func TestProcess_SaveFailureRemovesArchive(t *testing.T) {
	h := newHarness(t)
	h.repo.failOn = "create"

	_, err := h.svc.Process(context.Background(), ProcessInput{Title: "x", AudioPath: writeAudio(t, "a.wav", 1)})
	if err == nil || !strings.Contains(err.Error(), "failed to save meeting") {
		t.Fatalf("expected save error, got %v", err)
	}
	if len(h.store.objects) != 0 {
		t.Errorf("archived audio should be removed after a failed save")
	}
}

func TestUpdateMinutes(t *testing.T) {
	h := newHarness(t)
	m := h.process(t)

	bad := &entities.MeetingMinutes{ActionItems: []entities.ActionItem{{Owner: "Ann", Confidence: 1, Status: "Open"}}}
	if _, err := h.svc.UpdateMinutes(context.Background(), m.ID, bad); !errors.Is(err, entities.ErrStructuralValidation) {
		t.Fatalf("expected structural error, got %v", err)
	}

	long := &entities.MeetingMinutes{}
	for i := 0; i < 12; i++ {
		long.Summary = append(long.Summary, "point")
	}
	updated, err := h.svc.UpdateMinutes(context.Background(), m.ID, long)
	if err != nil {
		t.Fatalf("UpdateMinutes: %v", err)
	}
	if len(updated.Minutes.Summary) != entities.MaxSummaryItems || len(long.Summary) != 12 {
		t.Errorf("expected normalized copy, got %d (input %d)", len(updated.Minutes.Summary), len(long.Summary))
	}

	if _, err := h.svc.UpdateMinutes(context.Background(), uuid.New(), long); !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestRenameSpeakers(t *testing.T) {
	h := newHarness(t)
	m := h.process(t)

	updated, changed, err := h.svc.RenameSpeakers(context.Background(), m.ID, map[string]string{"Speaker 1": "Alice", "Speaker 9": "Nobody"})
	if err != nil {
		t.Fatalf("RenameSpeakers: %v", err)
	}
	if changed != 1 || updated.Transcript[0].Speaker != "Alice" || updated.Transcript[1].Speaker != "Speaker 2" {
		t.Fatalf("unexpected rename result %d %+v", changed, updated.Transcript)
	}
	stored, _ := h.svc.Get(context.Background(), m.ID)
	if stored.Transcript[0].Speaker != "Alice" {
		t.Errorf("rename was not persisted")
	}
}

func TestRegenerate(t *testing.T) {
	h := newHarness(t)
	m := h.process(t)
	h.summarizer.minutes = entities.EmptyMinutes()

	updated, err := h.svc.Regenerate(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if !updated.Minutes.IsEmpty() || h.summarizer.calls != 2 {
		t.Fatalf("expected regenerated minutes, got %+v", updated.Minutes)
	}

	if _, ok, _ := h.locker.TryLock(context.Background(), "meeting:"+m.ID.String(), time.Minute); !ok {
		t.Fatal("lock should be released after regenerate")
	}
	if _, err := h.svc.Regenerate(context.Background(), m.ID); !errors.Is(err, entities.ErrMeetingBusy) {
		t.Fatalf("expected ErrMeetingBusy, got %v", err)
	}
}

func TestDeleteRemovesAudio(t *testing.T) {
	h := newHarness(t)
	m := h.process(t)

	if err := h.svc.Delete(context.Background(), m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(*m.AudioPath); !os.IsNotExist(err) {
		t.Errorf("local audio should be removed")
	}
	if len(h.store.removed) != 1 {
		t.Errorf("archived audio should be removed")
	}
	if err := h.svc.Delete(context.Background(), m.ID); !errors.Is(err, entities.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}

func TestRemoveAudio_KeepsRecordingsOutsideUploadDir(t *testing.T) {
	h := newHarness(t)
	original := writeAudio(t, "board.wav", 16)
	kept := h.processFile(t, original)
	deleted := h.processFile(t, writeAudio(t, "standup.wav", 16))

	h.repo.meetings[kept.ID].CreatedAt = time.Now().Add(-8 * 24 * time.Hour)
	n, err := h.svc.CleanupExpiredAudio(context.Background(), 7)
	if err != nil || n != 1 {
		t.Fatalf("CleanupExpiredAudio: n=%d err=%v", n, err)
	}
	if _, err := os.Stat(original); err != nil {
		t.Fatalf("the caller's recording must survive cleanup: %v", err)
	}

	standup := *deleted.AudioPath
	if err := h.svc.Delete(context.Background(), deleted.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(standup); err != nil {
		t.Errorf("the caller's recording must survive delete: %v", err)
	}
}

func TestOwnsAudio(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		path string
		want bool
	}{
		{filepath.Join(h.uploadDir, "a.wav"), true},
		{filepath.Join(h.uploadDir, "nested", "b.wav"), true},
		{h.uploadDir, false},
		{filepath.Join(h.uploadDir, "..", "c.wav"), false},
		{h.uploadDir + "-other/d.wav", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := h.svc.ownsAudio(tt.path); got != tt.want {
			t.Errorf("ownsAudio(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	h.svc.opts.UploadDir = ""
	if h.svc.ownsAudio(filepath.Join(h.uploadDir, "a.wav")) {
		t.Errorf("without an upload dir no local file is owned")
	}
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	m := h.process(t)

	res, err := h.svc.Export(context.Background(), m.ID, ExportInput{Options: export.DefaultOptions("markdown"), Publish: true})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.HasPrefix(res.ObjectKey, "exports/"+m.ID.String()+"/") || !strings.HasSuffix(res.ObjectKey, ".md") {
		t.Errorf("unexpected object key %q", res.ObjectKey)
	}
	if !strings.Contains(res.URL, "expires=3600") {
		t.Errorf("unexpected url %q", res.URL)
	}
	if string(h.store.objects[res.ObjectKey]) != string(res.Document.Data) {
		t.Errorf("published object differs from document")
	}

	_, err = h.svc.Export(context.Background(), m.ID, ExportInput{Options: export.Options{Format: "pdf"}})
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_EXPORT_UNSUPPORTED_FORMAT {
		t.Fatalf("expected unsupported format app error, got %v", err)
	}
}

func TestCleanupExpiredAudio(t *testing.T) {
	h := newHarness(t)
	old := h.process(t)
	fresh := h.process(t)
	h.repo.meetings[old.ID].CreatedAt = time.Now().Add(-10 * 24 * time.Hour)

	n, err := h.svc.CleanupExpiredAudio(context.Background(), 7)
	if err != nil {
		t.Fatalf("CleanupExpiredAudio: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 cleaned meeting, got %d", n)
	}
	if h.repo.meetings[old.ID].AudioPath != nil || h.repo.meetings[fresh.ID].AudioPath == nil {
		t.Errorf("only the old meeting should lose its audio")
	}

	if n, _ := h.svc.CleanupExpiredAudio(context.Background(), 0); n != 0 {
		t.Errorf("zero retention keeps all audio")
	}
}

func TestListAndStatistics(t *testing.T) {
	h := newHarness(t)
	h.process(t)
	h.process(t)

	meetings, total, err := h.svc.List(context.Background(), repositories.MeetingFilters{Search: "weekly"})
	if err != nil || total != 2 || len(meetings) != 2 {
		t.Fatalf("unexpected list %d %v", total, err)
	}
	stats, err := h.svc.Statistics(context.Background())
	if err != nil || stats.TotalMeetings != 2 || stats.TotalDuration != 14 {
		t.Fatalf("unexpected stats %+v %v", stats, err)
	}
}

func TestProcess_Preprocessor(t *testing.T) {
	cleaned := writeAudio(t, "clean.wav", 16)

	h := newHarness(t)
	h.svc.preprocess = fakePreprocessor{out: cleaned}
	m := h.process(t)
	if h.transcriber.path != cleaned {
		t.Errorf("expected the preprocessed file to be transcribed, got %q", h.transcriber.path)
	}
	if m.AudioPath == nil || *m.AudioPath == cleaned {
		t.Errorf("the meeting should keep the original recording path")
	}

	h = newHarness(t)
	h.svc.preprocess = fakePreprocessor{err: errors.New("sox missing")}
	m = h.process(t)
	if h.transcriber.path != *m.AudioPath {
		t.Errorf("a failing hook should fall back to the original file, got %q", h.transcriber.path)
	}
}

func TestProcess_SaveFailureLogsArchiveCleanup(t *testing.T) {
	h := newHarness(t)
	core, logs := observer.New(zapcore.WarnLevel)
	h.svc.logger = zap.New(core)
	h.repo.failOn = "create"
	h.store.removeErr = errors.New("bucket unreachable")

	_, err := h.svc.Process(context.Background(), ProcessInput{Title: "x", AudioPath: h.upload(t, "a.wav")})
	if err == nil {
		t.Fatal("expected save failure")
	}
	entries := logs.FilterMessage("⚠️ Failed to remove archived audio").All()
	if len(entries) != 1 {
		t.Fatalf("expected the orphaned object to be logged, got %v", logs.All())
	}
	if entries[0].ContextMap()["error"] != "bucket unreachable" {
		t.Errorf("unexpected log fields %v", entries[0].ContextMap())
	}
}
