package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Meeting is the stored aggregate: metadata, fused transcript and minutes
type Meeting struct {
	ID                 uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title              string                      `json:"title" gorm:"type:varchar(255);not null;index"`
	Date               time.Time                   `json:"date" gorm:"not null;index"`
	Participants       datatypes.JSONSlice[string] `json:"participants" gorm:"type:jsonb;default:'[]'"`
	Agenda             *string                     `json:"agenda,omitempty" gorm:"type:text"`
	Transcript         []TranscriptSegment         `json:"transcript" gorm:"type:jsonb;serializer:json"`
	Minutes            *MeetingMinutes             `json:"minutes,omitempty" gorm:"type:jsonb;serializer:json"`
	AudioPath          *string                     `json:"audio_path,omitempty" gorm:"type:varchar(1024)"`
	AudioObjectKey     *string                     `json:"audio_object_key,omitempty" gorm:"type:varchar(1024)"`
	Language           string                      `json:"language,omitempty" gorm:"type:varchar(20)"`
	DurationSeconds    float64                     `json:"duration_seconds,omitempty"`
	TranscriptionModel string                      `json:"transcription_model,omitempty" gorm:"type:varchar(100)"`
	CreatedAt          time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new meeting with a fresh ID
func NewMeeting(title string, date time.Time, participants []string, agenda *string) (*Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidMeeting
	}
	if date.IsZero() {
		date = time.Now()
	}
	cleaned := make([]string, 0, len(participants))
	for _, p := range participants {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if agenda != nil && strings.TrimSpace(*agenda) == "" {
		agenda = nil
	}

	now := time.Now()
	return &Meeting{
		ID:           uuid.New(),
		Title:        title,
		Date:         date,
		Participants: cleaned,
		Agenda:       agenda,
		Transcript:   []TranscriptSegment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Speakers returns the distinct speaker labels in order of first appearance
func (m *Meeting) Speakers() []string {
	seen := make(map[string]struct{})
	speakers := make([]string, 0)
	for _, seg := range m.Transcript {
		if _, ok := seen[seg.Speaker]; ok {
			continue
		}
		seen[seg.Speaker] = struct{}{}
		speakers = append(speakers, seg.Speaker)
	}
	return speakers
}

// RenameSpeakers relabels transcript segments using old->new label pairs.
// Blank targets are ignored. Returns the number of segments changed.
func (m *Meeting) RenameSpeakers(mapping map[string]string) int {
	changed := 0
	for i, seg := range m.Transcript {
		to, ok := mapping[seg.Speaker]
		if !ok {
			continue
		}
		to = strings.TrimSpace(to)
		if to == "" || to == seg.Speaker {
			continue
		}
		m.Transcript[i].Speaker = to
		changed++
	}
	return changed
}

// MinutesOrEmpty never returns nil
func (m *Meeting) MinutesOrEmpty() *MeetingMinutes {
	if m.Minutes == nil {
		return EmptyMinutes()
	}
	return m.Minutes
}

// AgendaText returns the agenda or an empty string
func (m *Meeting) AgendaText() string {
	if m.Agenda == nil {
		return ""
	}
	return *m.Agenda
}
