package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Input errors, rejected before any backend is called
	ErrEmptySegmentText    = errors.New("segment text cannot be empty")
	ErrInvalidSegmentRange = errors.New("invalid segment range")
	ErrAudioNotFound       = errors.New("audio file not found")
	ErrUnsupportedAudio    = errors.New("unsupported audio format")
	ErrAudioTooLarge       = errors.New("audio file too large")
	ErrInvalidMeeting      = errors.New("invalid meeting")

	// Backend returned syntactically valid minutes that break the contract
	ErrStructuralValidation = errors.New("structural validation failed")

	// Meeting errors
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMeetingBusy     = errors.New("meeting is being processed")
)

// StructuralError points at the action item that broke the minutes contract
type StructuralError struct {
	Index int
	Field string
	Err   error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: action_items[%d] missing or invalid %s", ErrStructuralValidation, e.Index, e.Field)
}

// Unwrap lets errors.Is match ErrStructuralValidation
func (e *StructuralError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStructuralValidation}
	}
	return []error{ErrStructuralValidation, e.Err}
}
