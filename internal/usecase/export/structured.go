package export

import (
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// record is the machine-readable shape shared by the JSON and YAML exports
type record struct {
	ID           string                       `json:"id" yaml:"id"`
	Title        string                       `json:"title" yaml:"title"`
	Date         time.Time                    `json:"date" yaml:"date"`
	Participants []string                     `json:"participants" yaml:"participants"`
	Agenda       *string                      `json:"agenda" yaml:"agenda"`
	Duration     float64                      `json:"duration_seconds" yaml:"duration_seconds"`
	Minutes      *entities.MeetingMinutes     `json:"minutes" yaml:"minutes"`
	Transcript   []entities.TranscriptSegment `json:"transcript,omitempty" yaml:"transcript,omitempty"`
	GeneratedAt  time.Time                    `json:"generated_at" yaml:"generated_at"`
}

func (e *Exporter) toRecord(m *entities.Meeting, opts Options) record {
	participants := []string(m.Participants)
	if participants == nil {
		participants = []string{}
	}
	r := record{
		ID:           m.ID.String(),
		Title:        m.Title,
		Date:         m.Date,
		Participants: participants,
		Agenda:       m.Agenda,
		Duration:     m.DurationSeconds,
		Minutes:      m.MinutesOrEmpty(),
		GeneratedAt:  e.now(),
	}
	if opts.IncludeTranscript {
		r.Transcript = make([]entities.TranscriptSegment, len(m.Transcript))
		copy(r.Transcript, m.Transcript)
		if !opts.IncludeSpeakerLabels {
			for i := range r.Transcript {
				r.Transcript[i].Speaker = ""
			}
		}
	}
	return r
}

func (e *Exporter) json(m *entities.Meeting, opts Options) ([]byte, error) {
	return json.MarshalIndent(e.toRecord(m, opts), "", "  ")
}

func (e *Exporter) yaml(m *entities.Meeting, opts Options) ([]byte, error) {
	return yaml.Marshal(e.toRecord(m, opts))
}
