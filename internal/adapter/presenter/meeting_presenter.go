package presenter

import (
	"github.com/johnquangdev/meeting-minutes/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

func participants(m *entities.Meeting) []string {
	if m.Participants == nil {
		return []string{}
	}
	return []string(m.Participants)
}

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	transcript := m.Transcript
	if transcript == nil {
		transcript = []entities.TranscriptSegment{}
	}

	return &meeting.MeetingResponse{
		ID:                 m.ID.String(),
		Title:              m.Title,
		Date:               m.Date,
		Participants:       participants(m),
		Agenda:             m.Agenda,
		Language:           m.Language,
		DurationSeconds:    m.DurationSeconds,
		TranscriptionModel: m.TranscriptionModel,
		Speakers:           m.Speakers(),
		Transcript:         transcript,
		Minutes:            m.MinutesOrEmpty(),
		HasAudio:           m.AudioPath != nil || m.AudioObjectKey != nil,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ToMeetingListItem converts a Meeting entity to its compact list form
func ToMeetingListItem(m *entities.Meeting) *meeting.MeetingListItem {
	if m == nil {
		return nil
	}
	return &meeting.MeetingListItem{
		ID:              m.ID.String(),
		Title:           m.Title,
		Date:            m.Date,
		Participants:    participants(m),
		DurationSeconds: m.DurationSeconds,
		ActionItems:     len(m.MinutesOrEmpty().ActionItems),
		HasMinutes:      m.Minutes != nil && !m.Minutes.IsEmpty(),
		CreatedAt:       m.CreatedAt,
	}
}

// ToMeetingListItems converts a slice of meetings
func ToMeetingListItems(meetings []*entities.Meeting) []*meeting.MeetingListItem {
	items := make([]*meeting.MeetingListItem, 0, len(meetings))
	for _, m := range meetings {
		items = append(items, ToMeetingListItem(m))
	}
	return items
}

// ToStatisticsResponse converts repository statistics to the response DTO
func ToStatisticsResponse(s *repositories.MeetingStatistics) *meeting.StatisticsResponse {
	if s == nil {
		return &meeting.StatisticsResponse{}
	}
	return &meeting.StatisticsResponse{
		TotalMeetings:    s.TotalMeetings,
		MostRecentDate:   s.MostRecentDate,
		TotalDuration:    s.TotalDuration,
		WithMinutes:      s.WithMinutes,
		TotalActionItems: s.TotalActionItems,
	}
}

// ToMinutes converts an edit request into domain minutes
func ToMinutes(req *meeting.UpdateMinutesRequest) *entities.MeetingMinutes {
	m := &entities.MeetingMinutes{
		Summary:     req.Summary,
		Decisions:   req.Decisions,
		ActionItems: make([]entities.ActionItem, 0, len(req.ActionItems)),
		Risks:       req.Risks,
		Notes:       req.Notes,
	}
	for _, a := range req.ActionItems {
		item := entities.NewActionItem(a.Owner, a.Task, a.DueDate)
		if a.Confidence != nil {
			item.Confidence = *a.Confidence
		}
		if a.Status != "" {
			item.Status = a.Status
		}
		m.ActionItems = append(m.ActionItems, item)
	}
	return m
}
