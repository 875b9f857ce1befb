package meeting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

type fakeRepo struct {
	mu       sync.Mutex
	meetings map[uuid.UUID]*entities.Meeting
	failOn   string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
}

func (r *fakeRepo) fail(op string) error {
	if r.failOn == op {
		return fmt.Errorf("%s: connection lost", op)
	}
	return nil
}

func (r *fakeRepo) Create(_ context.Context, m *entities.Meeting) error {
	if err := r.fail("create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return nil, entities.ErrMeetingNotFound
	}
	cp := *m
	cp.Transcript = append([]entities.TranscriptSegment(nil), m.Transcript...)
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, m *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeRepo) UpdateMinutes(_ context.Context, id uuid.UUID, minutes *entities.MeetingMinutes) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return entities.ErrMeetingNotFound
	}
	m.Minutes = minutes
	return nil
}

func (r *fakeRepo) UpdateTranscript(_ context.Context, id uuid.UUID, transcript []entities.TranscriptSegment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return entities.ErrMeetingNotFound
	}
	m.Transcript = transcript
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[id]; !ok {
		return entities.ErrMeetingNotFound
	}
	delete(r.meetings, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, f repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Meeting, 0, len(r.meetings))
	for _, m := range r.meetings {
		if f.Search == "" || strings.Contains(strings.ToLower(m.Title), strings.ToLower(f.Search)) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

func (r *fakeRepo) Statistics(_ context.Context) (*repositories.MeetingStatistics, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repositories.MeetingStatistics{TotalMeetings: int64(len(r.meetings))}
	for _, m := range r.meetings {
		stats.TotalDuration += m.DurationSeconds
	}
	return stats, nil
}

func (r *fakeRepo) FindAudioOlderThan(_ context.Context, cutoff time.Time) ([]*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.CreatedAt.Before(cutoff) && (m.AudioPath != nil || m.AudioObjectKey != nil) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) ClearAudio(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meetings[id]
	if !ok {
		return entities.ErrMeetingNotFound
	}
	m.AudioPath = nil
	m.AudioObjectKey = nil
	return nil
}

type fakeTranscriber struct {
	result   *entities.Transcription
	err      error
	calls    int
	path     string
	language string
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string, language string, _ *int) (*entities.Transcription, error) {
	f.calls++
	f.path = path
	f.language = language
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// alternatingFuser labels even segments Speaker 1 and odd ones Speaker 2
type alternatingFuser struct{}

func (alternatingFuser) Fuse(_ context.Context, segments []entities.TranscriptSegment, _ string, _ *int) []entities.TranscriptSegment {
	out := make([]entities.TranscriptSegment, len(segments))
	for i, s := range segments {
		s.Speaker = fmt.Sprintf("Speaker %d", i%2+1)
		out[i] = s
	}
	return out
}

type fakeSummarizer struct {
	minutes *entities.MeetingMinutes
	err     error
	context string
	calls   int
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ []entities.TranscriptSegment, meetingContext string) (*entities.MeetingMinutes, error) {
	f.calls++
	f.context = meetingContext
	if f.err != nil {
		return nil, f.err
	}
	return f.minutes.Clone(), nil
}

type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	removeErr error
	removed   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) UploadFile(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = data
	return nil
}

func (s *fakeStore) UploadLocalFile(_ context.Context, name, path, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = []byte(path)
	return nil
}

func (s *fakeStore) RemoveFile(_ context.Context, name string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[name]; !ok {
		return errors.New("no such object")
	}
	delete(s.objects, name)
	s.removed = append(s.removed, name)
	return nil
}

func (s *fakeStore) GetFileURL(_ context.Context, name string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://files.example.test/%s?expires=%d", name, int(expiry.Seconds())), nil
}

type fakePreprocessor struct {
	out string
	err error
}

func (f fakePreprocessor) Preprocess(context.Context, string) (string, error) {
	return f.out, f.err
}
