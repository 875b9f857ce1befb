package meeting

// CreateMeetingRequest is the multipart form accompanying an uploaded recording.
// The audio itself arrives in the "audio" file field.
type CreateMeetingRequest struct {
	Title string `form:"title" json:"title" validate:"required,max=255"`
	// Date accepts RFC 3339 or YYYY-MM-DD; empty means now
	Date string `form:"date" json:"date"`
	// Participants is a comma separated list of names
	Participants string `form:"participants" json:"participants"`
	Agenda       string `form:"agenda" json:"agenda"`
	// ExpectedSpeakers of zero lets diarization decide
	ExpectedSpeakers int    `form:"expected_speakers" json:"expected_speakers" validate:"omitempty,min=1,max=20"`
	Language         string `form:"language" json:"language" validate:"omitempty,max=10"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Search    string `query:"search" json:"search"`
	From      string `query:"from" json:"from"`
	To        string `query:"to" json:"to"`
	Page      int    `query:"page" json:"page" validate:"min=1"`
	PageSize  int    `query:"page_size" json:"page_size" validate:"min=1,max=200"`
	SortBy    string `query:"sort_by" json:"sort_by" validate:"omitempty,oneof=date created_at title"`
	SortOrder string `query:"sort_order" json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// ActionItemRequest is an edited action item. Owner and task are checked by the
// minutes contract so a missing one comes back as 422 with the offending index.
type ActionItemRequest struct {
	Owner      string   `json:"owner"`
	Task       string   `json:"task"`
	DueDate    *string  `json:"due_date,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Status     string   `json:"status,omitempty"`
}

// UpdateMinutesRequest replaces the minutes of a meeting
type UpdateMinutesRequest struct {
	Summary     []string            `json:"summary"`
	Decisions   []string            `json:"decisions"`
	ActionItems []ActionItemRequest `json:"action_items"`
	Risks       []string            `json:"risks"`
	Notes       *string             `json:"notes,omitempty"`
}

// RenameSpeakersRequest maps current speaker labels to new ones
type RenameSpeakersRequest struct {
	Mapping map[string]string `json:"mapping" validate:"required,min=1"`
}

// ExportRequest represents query parameters for exporting a meeting
type ExportRequest struct {
	Format               string `query:"format" json:"format" validate:"required"`
	IncludeTranscript    bool   `query:"include_transcript" json:"include_transcript"`
	IncludeTimestamps    bool   `query:"include_timestamps" json:"include_timestamps"`
	IncludeSpeakerLabels bool   `query:"include_speaker_labels" json:"include_speaker_labels"`
	Publish              bool   `query:"publish" json:"publish"`
}
