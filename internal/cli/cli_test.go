package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/export"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

type fakeService struct {
	meeting     *entities.Meeting
	processed   meeting.ProcessInput
	listFilters repositories.MeetingFilters
	exportInput meeting.ExportInput
	renamed     map[string]string
	cleanupDays int
}

func (f *fakeService) find(id uuid.UUID) (*entities.Meeting, error) {
	if f.meeting == nil || f.meeting.ID != id {
		return nil, entities.ErrMeetingNotFound
	}
	return f.meeting, nil
}

func (f *fakeService) Process(_ context.Context, in meeting.ProcessInput) (*entities.Meeting, error) {
	f.processed = in
	m, err := entities.NewMeeting(in.Title, in.Date, in.Participants, in.Agenda)
	if err != nil {
		return nil, err
	}
	m.ID = uuid.New()
	m.Transcript = []entities.TranscriptSegment{{Start: 0, End: 4, Speaker: "Speaker 1", Text: "Kickoff"}}
	m.Minutes = entities.EmptyMinutes()
	f.meeting = m
	return m, nil
}

func (f *fakeService) Get(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return f.find(id)
}

func (f *fakeService) List(_ context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	f.listFilters = filters
	if f.meeting == nil {
		return nil, 0, nil
	}
	return []*entities.Meeting{f.meeting}, 1, nil
}

func (f *fakeService) Statistics(context.Context) (*repositories.MeetingStatistics, error) {
	return &repositories.MeetingStatistics{}, nil
}

func (f *fakeService) Delete(_ context.Context, id uuid.UUID) error {
	_, err := f.find(id)
	return err
}

func (f *fakeService) RenameSpeakers(_ context.Context, id uuid.UUID, mapping map[string]string) (*entities.Meeting, int, error) {
	m, err := f.find(id)
	if err != nil {
		return nil, 0, err
	}
	f.renamed = mapping
	return m, m.RenameSpeakers(mapping), nil
}

func (f *fakeService) UpdateMinutes(_ context.Context, id uuid.UUID, minutes *entities.MeetingMinutes) (*entities.Meeting, error) {
	m, err := f.find(id)
	if err != nil {
		return nil, err
	}
	m.Minutes = minutes
	return m, nil
}

func (f *fakeService) Regenerate(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return f.find(id)
}

func (f *fakeService) Export(_ context.Context, id uuid.UUID, in meeting.ExportInput) (*meeting.ExportResult, error) {
	m, err := f.find(id)
	if err != nil {
		return nil, err
	}
	f.exportInput = in
	doc, err := export.NewExporter().Export(m, in.Options)
	if err != nil {
		return nil, err
	}
	result := &meeting.ExportResult{Document: doc}
	if in.Publish {
		result.ObjectKey = "exports/" + id.String() + "/" + doc.Filename
		result.URL = "http://minio.local/" + result.ObjectKey
	}
	return result, nil
}

func (f *fakeService) CleanupExpiredAudio(_ context.Context, days int) (int, error) {
	f.cleanupDays = days
	return 2, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-secret"
	cfg.JWT.AccessExpiry = 15 * time.Minute
	cfg.JWT.Issuer = "meeting-minutes"
	cfg.Pipeline.AudioRetentionDays = 7
	return cfg
}

func execute(t *testing.T, deps *Dependencies, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(deps)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProcessCmd(t *testing.T) {
	svc := &fakeService{}
	deps := &Dependencies{Config: testConfig(), Meetings: svc}
	dir := t.TempDir()

	out, err := execute(t, deps, "process", filepath.Join(dir, "standup-0310.m4a"),
		"--date", "2026-03-10",
		"--participants", "Ana,Bo",
		"--agenda", "Release plan",
		"--speakers", "2",
		"--export", "markdown",
	)
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	in := svc.processed
	if in.Title != "standup-0310" {
		t.Errorf("expected title from file name, got %q", in.Title)
	}
	if in.Date.Format("2006-01-02") != "2026-03-10" {
		t.Errorf("unexpected date %v", in.Date)
	}
	if len(in.Participants) != 2 || in.Participants[1] != "Bo" {
		t.Errorf("unexpected participants %v", in.Participants)
	}
	if in.Agenda == nil || *in.Agenda != "Release plan" {
		t.Errorf("unexpected agenda %v", in.Agenda)
	}
	if in.ExpectedSpeakers == nil || *in.ExpectedSpeakers != 2 {
		t.Errorf("unexpected expected speakers %v", in.ExpectedSpeakers)
	}
	if !strings.Contains(out, "Meeting saved") {
		t.Errorf("missing saved line:\n%s", out)
	}

	files, _ := filepath.Glob(filepath.Join(dir, "*.md"))
	if len(files) != 1 {
		t.Fatalf("expected one markdown export next to the recording, got %v", files)
	}
	data, _ := os.ReadFile(files[0])
	if !strings.Contains(string(data), "Kickoff") {
		t.Errorf("export missing transcript:\n%s", data)
	}
}

func TestProcessCmd_RejectsBadDate(t *testing.T) {
	svc := &fakeService{}
	deps := &Dependencies{Config: testConfig(), Meetings: svc}
	if _, err := execute(t, deps, "process", "a.wav", "--date", "next tuesday"); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if svc.processed.AudioPath != "" {
		t.Errorf("service should not run on bad input")
	}
}

func TestListCmd(t *testing.T) {
	svc := &fakeService{}
	deps := &Dependencies{Config: testConfig(), Meetings: svc}

	out, err := execute(t, deps, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No meetings found") {
		t.Errorf("expected empty message, got %q", out)
	}

	svc.Process(context.Background(), meeting.ProcessInput{Title: "Retro", Date: time.Now()})
	out, err = execute(t, deps, "list", "-q", "retro", "-n", "5", "--from", "2026-01-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if svc.listFilters.Search != "retro" || svc.listFilters.Limit != 5 || svc.listFilters.From == nil {
		t.Errorf("unexpected filters %+v", svc.listFilters)
	}
	if !strings.Contains(out, "Retro") || !strings.Contains(out, "Meetings (1)") {
		t.Errorf("unexpected list output:\n%s", out)
	}
}

func TestExportCmd(t *testing.T) {
	svc := &fakeService{}
	deps := &Dependencies{Config: testConfig(), Meetings: svc}
	m, _ := svc.Process(context.Background(), meeting.ProcessInput{Title: "Planning", Date: time.Now()})
	dir := t.TempDir()

	out, err := execute(t, deps, "export", m.ID.String(), "-f", "json", "-o", dir, "--no-timestamps")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	opts := svc.exportInput.Options
	if opts.Format != "json" || opts.IncludeTimestamps || !opts.IncludeTranscript || !opts.IncludeSpeakerLabels {
		t.Errorf("unexpected options %+v", opts)
	}
	if !strings.Contains(out, "Export saved") {
		t.Errorf("missing saved line:\n%s", out)
	}
	if files, _ := filepath.Glob(filepath.Join(dir, "*.json")); len(files) != 1 {
		t.Errorf("expected one json file, got %v", files)
	}

	out, err = execute(t, deps, "export", m.ID.String(), "--publish")
	if err != nil {
		t.Fatalf("export publish: %v", err)
	}
	if !svc.exportInput.Publish || !strings.Contains(out, "http://minio.local/exports/") {
		t.Errorf("unexpected publish output:\n%s", out)
	}

	if _, err := execute(t, deps, "export", "not-a-uuid"); err == nil {
		t.Errorf("expected invalid id error")
	}
}

func TestRenameCmd(t *testing.T) {
	svc := &fakeService{}
	deps := &Dependencies{Config: testConfig(), Meetings: svc}
	m, _ := svc.Process(context.Background(), meeting.ProcessInput{Title: "Sync", Date: time.Now()})

	out, err := execute(t, deps, "rename", m.ID.String(), "Speaker 1=Ana")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if svc.renamed["Speaker 1"] != "Ana" {
		t.Errorf("unexpected mapping %v", svc.renamed)
	}
	if !strings.Contains(out, "Renamed 1 segments") {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := execute(t, deps, "rename", m.ID.String(), "Speaker 2"); err == nil {
		t.Errorf("expected malformed mapping error")
	}
}

func TestCleanupCmd_UsesConfiguredRetention(t *testing.T) {
	svc := &fakeService{}
	deps := &Dependencies{Config: testConfig(), Meetings: svc}

	if _, err := execute(t, deps, "cleanup"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if svc.cleanupDays != 7 {
		t.Errorf("expected configured retention, got %d", svc.cleanupDays)
	}
	if _, err := execute(t, deps, "cleanup", "--days", "30"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if svc.cleanupDays != 30 {
		t.Errorf("expected flag override, got %d", svc.cleanupDays)
	}
}

func TestTokenCmd(t *testing.T) {
	deps := &Dependencies{Config: testConfig()}

	out, err := execute(t, deps, "token", "--subject", "ana", "--role", jwt.RoleViewer)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	token := lines[len(lines)-1]

	cfg := deps.Config.JWT
	claims, err := jwt.NewManager(cfg.AccessSecret, cfg.AccessExpiry, cfg.Issuer).ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if claims.Subject != "ana" || claims.CanWrite() {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := execute(t, deps, "token", "--role", "admin"); err == nil {
		t.Errorf("expected unknown role error")
	}
}

func TestServiceRequiresOpen(t *testing.T) {
	deps := &Dependencies{Config: testConfig()}
	if _, err := deps.Service(context.Background()); err == nil {
		t.Fatalf("expected error without Open")
	}
	if err := deps.Close(); err != nil {
		t.Fatalf("Close without app: %v", err)
	}
}

func TestMigrateCmd_ValidatesDirection(t *testing.T) {
	deps := &Dependencies{Config: testConfig()}
	if _, err := execute(t, deps, "migrate", "sideways"); err == nil {
		t.Fatalf("expected invalid direction error")
	}
}
