package minutes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// ParseStage names which attempt produced a parse result
type ParseStage string

const (
	StageDirect ParseStage = "direct"
	StageFenced ParseStage = "fenced"
	StageRaw    ParseStage = "raw"
	StageFailed ParseStage = "failed"
)

var errNoFence = errors.New("no fenced code block")

// ParseResult is the outcome of Parse. Minutes is set only when Stage is not StageFailed.
type ParseResult struct {
	Stage    ParseStage
	Minutes  *entities.MeetingMinutes
	Attempts []ParseAttempt
}

// ParseAttempt records why a stage did not succeed
type ParseAttempt struct {
	Stage ParseStage
	Err   error
}

// OK reports whether one of the stages decoded the response
func (r ParseResult) OK() bool {
	return r.Stage != StageFailed && r.Minutes != nil
}

// Err joins the errors of every failed attempt
func (r ParseResult) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, 0, len(r.Attempts))
	for _, a := range r.Attempts {
		errs = append(errs, fmt.Errorf("%s: %w", a.Stage, a.Err))
	}
	return errors.Join(errs...)
}

// wireMinutes mirrors the backend JSON; pointers tell absent from zero
type wireMinutes struct {
	Summary     []string         `json:"summary"`
	Decisions   []string         `json:"decisions"`
	ActionItems []wireActionItem `json:"action_items"`
	Risks       []string         `json:"risks"`
	Notes       *string          `json:"notes"`
}

type wireActionItem struct {
	Owner      string   `json:"owner"`
	Task       string   `json:"task"`
	DueDate    *string  `json:"due_date"`
	Confidence *float64 `json:"confidence"`
	Status     string   `json:"status"`
}

// Parse decodes backend output into minutes in three stages: the text as-is, the
// first fenced code block (```json or ```), and finally the trimmed raw text.
// Decoding never validates action items; see Extractor.Summarize.
func Parse(response string) ParseResult {
	result := ParseResult{Stage: StageFailed}

	m, err := decode(response)
	if err == nil {
		result.Stage, result.Minutes = StageDirect, m
		return result
	}
	result.Attempts = append(result.Attempts, ParseAttempt{Stage: StageDirect, Err: err})

	if block, ok := fencedBlock(response); ok {
		if m, err = decode(block); err == nil {
			result.Stage, result.Minutes = StageFenced, m
			return result
		}
		result.Attempts = append(result.Attempts, ParseAttempt{Stage: StageFenced, Err: err})
		return result
	}
	result.Attempts = append(result.Attempts, ParseAttempt{Stage: StageFenced, Err: errNoFence})

	if m, err = decode(strings.TrimSpace(response)); err == nil {
		result.Stage, result.Minutes = StageRaw, m
		return result
	}
	result.Attempts = append(result.Attempts, ParseAttempt{Stage: StageRaw, Err: err})
	return result
}

func decode(text string) (*entities.MeetingMinutes, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("response is not a JSON object")
	}

	var w wireMinutes
	if err := json.Unmarshal(trimmed, &w); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	m := &entities.MeetingMinutes{
		Summary:     w.Summary,
		Decisions:   w.Decisions,
		ActionItems: make([]entities.ActionItem, 0, len(w.ActionItems)),
		Risks:       w.Risks,
		Notes:       w.Notes,
	}
	for _, item := range w.ActionItems {
		ai := entities.NewActionItem(item.Owner, item.Task, item.DueDate)
		if item.Confidence != nil {
			ai.Confidence = *item.Confidence
		}
		if item.Status != "" {
			ai.Status = item.Status
		}
		m.ActionItems = append(m.ActionItems, ai)
	}
	return m, nil
}

// fencedBlock returns the content of the first ```json block, or else the first ``` block
func fencedBlock(text string) (string, bool) {
	if start := strings.Index(text, "```json"); start != -1 {
		return closeFence(text, start+len("```json"))
	}
	if start := strings.Index(text, "```"); start != -1 {
		return closeFence(text, start+len("```"))
	}
	return "", false
}

func closeFence(text string, from int) (string, bool) {
	rest := text[from:]
	end := strings.Index(rest, "```")
	if end == -1 {
		// unterminated fence, take the remainder
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}
