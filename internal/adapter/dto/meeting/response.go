package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID                 string                       `json:"id"`
	Title              string                       `json:"title"`
	Date               time.Time                    `json:"date"`
	Participants       []string                     `json:"participants"`
	Agenda             *string                      `json:"agenda,omitempty"`
	Language           string                       `json:"language,omitempty"`
	DurationSeconds    float64                      `json:"duration_seconds"`
	TranscriptionModel string                       `json:"transcription_model,omitempty"`
	Speakers           []string                     `json:"speakers"`
	Transcript         []entities.TranscriptSegment `json:"transcript"`
	Minutes            *entities.MeetingMinutes     `json:"minutes"`
	HasAudio           bool                         `json:"has_audio"`
	CreatedAt          time.Time                    `json:"created_at"`
	UpdatedAt          time.Time                    `json:"updated_at"`
}

// MeetingListItem is the compact form used by list endpoints
type MeetingListItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	Participants    []string  `json:"participants"`
	DurationSeconds float64   `json:"duration_seconds"`
	ActionItems     int       `json:"action_items"`
	HasMinutes      bool      `json:"has_minutes"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListMeetingsResponse represents a page of meetings
type ListMeetingsResponse struct {
	Meetings   []*MeetingListItem         `json:"meetings"`
	Pagination *common.PaginationResponse `json:"pagination"`
}

// RenameSpeakersResponse reports how many segments were relabelled
type RenameSpeakersResponse struct {
	Changed int              `json:"changed"`
	Meeting *MeetingResponse `json:"meeting"`
}

// ExportResponse describes a published export
type ExportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	ObjectKey   string `json:"object_key"`
	URL         string `json:"url"`
}

// StatisticsResponse aggregates stored meetings
type StatisticsResponse struct {
	TotalMeetings    int64      `json:"total_meetings"`
	MostRecentDate   *time.Time `json:"most_recent_date,omitempty"`
	TotalDuration    float64    `json:"total_duration_seconds"`
	WithMinutes      int64      `json:"with_minutes"`
	TotalActionItems int64      `json:"total_action_items"`
}
