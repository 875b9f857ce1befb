package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create stores a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting, returning entities.ErrMeetingNotFound when absent
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// Update saves every field of an existing meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// UpdateMinutes replaces only the minutes column
	UpdateMinutes(ctx context.Context, id uuid.UUID, minutes *entities.MeetingMinutes) error

	// UpdateTranscript replaces only the transcript column
	UpdateTranscript(ctx context.Context, id uuid.UUID, transcript []entities.TranscriptSegment) error

	// Delete removes a meeting
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves meetings newest first with search and pagination
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// Statistics summarizes the stored meetings
	Statistics(ctx context.Context) (*MeetingStatistics, error)

	// FindAudioOlderThan lists meetings whose audio was recorded before cutoff
	FindAudioOlderThan(ctx context.Context, cutoff time.Time) ([]*entities.Meeting, error)

	// ClearAudio forgets the stored audio references of a meeting
	ClearAudio(ctx context.Context, id uuid.UUID) error
}

// MeetingFilters represents filter options for listing meetings
type MeetingFilters struct {
	Search    string // Search in title and participants
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
	SortBy    string // "date", "created_at", "title"
	SortOrder string // "asc", "desc"
}

// MeetingStatistics is the aggregate view over all meetings
type MeetingStatistics struct {
	TotalMeetings    int64      `json:"total_meetings"`
	MostRecentDate   *time.Time `json:"most_recent_date,omitempty"`
	TotalDuration    float64    `json:"total_duration_seconds"`
	WithMinutes      int64      `json:"with_minutes"`
	TotalActionItems int64      `json:"total_action_items"`
}
