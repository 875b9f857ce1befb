package entities

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxSummaryItems caps the executive summary; longer lists are truncated, never rejected
	MaxSummaryItems = 8

	// ActionItemStatusOpen is the status every extracted action item starts with
	ActionItemStatusOpen = "Open"
)

var minutesValidator = validator.New()

// ActionItem is a task assigned to an owner during the meeting.
// DueDate is free text as spoken ("next Friday"), never parsed.
type ActionItem struct {
	Owner      string  `json:"owner" yaml:"owner" validate:"required"`
	Task       string  `json:"task" yaml:"task" validate:"required"`
	DueDate    *string `json:"due_date" yaml:"due_date"`
	Confidence float64 `json:"confidence" yaml:"confidence" validate:"gte=0,lte=1"`
	Status     string  `json:"status" yaml:"status"`
}

// NewActionItem creates an open action item with full confidence
func NewActionItem(owner, task string, dueDate *string) ActionItem {
	return ActionItem{
		Owner:      owner,
		Task:       task,
		DueDate:    dueDate,
		Confidence: 1.0,
		Status:     ActionItemStatusOpen,
	}
}

// MeetingMinutes is the structured record extracted from a transcript
type MeetingMinutes struct {
	Summary     []string     `json:"summary" yaml:"summary"`
	Decisions   []string     `json:"decisions" yaml:"decisions"`
	ActionItems []ActionItem `json:"action_items" yaml:"action_items"`
	Risks       []string     `json:"risks" yaml:"risks"`
	Notes       *string      `json:"notes" yaml:"notes"`
}

// EmptyMinutes returns minutes with every section empty and no notes
func EmptyMinutes() *MeetingMinutes {
	return &MeetingMinutes{
		Summary:     []string{},
		Decisions:   []string{},
		ActionItems: []ActionItem{},
		Risks:       []string{},
	}
}

// IsEmpty reports whether no section carries content
func (m *MeetingMinutes) IsEmpty() bool {
	if m == nil {
		return true
	}
	return len(m.Summary) == 0 && len(m.Decisions) == 0 && len(m.ActionItems) == 0 &&
		len(m.Risks) == 0 && (m.Notes == nil || *m.Notes == "")
}

// Normalize replaces nil sections with empty ones, fills action item defaults and
// truncates the summary. It returns how many summary entries were dropped.
func (m *MeetingMinutes) Normalize() int {
	if m.Summary == nil {
		m.Summary = []string{}
	}
	if m.Decisions == nil {
		m.Decisions = []string{}
	}
	if m.ActionItems == nil {
		m.ActionItems = []ActionItem{}
	}
	if m.Risks == nil {
		m.Risks = []string{}
	}
	for i := range m.ActionItems {
		if m.ActionItems[i].Status == "" {
			m.ActionItems[i].Status = ActionItemStatusOpen
		}
		m.ActionItems[i].Confidence = clamp01(m.ActionItems[i].Confidence)
	}

	dropped := 0
	if len(m.Summary) > MaxSummaryItems {
		dropped = len(m.Summary) - MaxSummaryItems
		m.Summary = m.Summary[:MaxSummaryItems]
	}
	return dropped
}

// Validate rejects action items without an owner or a task
func (m *MeetingMinutes) Validate() error {
	for i, item := range m.ActionItems {
		if err := minutesValidator.Struct(item); err != nil {
			field := "action_item"
			if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
				field = strings.ToLower(verrs[0].Field())
			}
			return &StructuralError{Index: i, Field: field, Err: err}
		}
	}
	return nil
}

// SetSummary replaces the summary from free text, one entry per non-blank line
func (m *MeetingMinutes) SetSummary(text string) {
	m.Summary = splitLines(text)
	m.Normalize()
}

// SetDecisions replaces the decisions from free text, one entry per non-blank line
func (m *MeetingMinutes) SetDecisions(text string) {
	m.Decisions = splitLines(text)
}

// SetRisks replaces the risks from free text, one entry per non-blank line
func (m *MeetingMinutes) SetRisks(text string) {
	m.Risks = splitLines(text)
}

// AddActionItem appends an open action item after validating it
func (m *MeetingMinutes) AddActionItem(item ActionItem) error {
	if item.Status == "" {
		item.Status = ActionItemStatusOpen
	}
	if err := minutesValidator.Struct(item); err != nil {
		return &StructuralError{Index: len(m.ActionItems), Field: "action_item", Err: err}
	}
	m.ActionItems = append(m.ActionItems, item)
	return nil
}

// RemoveActionItem deletes the action item at index i
func (m *MeetingMinutes) RemoveActionItem(i int) error {
	if i < 0 || i >= len(m.ActionItems) {
		return fmt.Errorf("action item index %d out of range [0,%d)", i, len(m.ActionItems))
	}
	m.ActionItems = append(m.ActionItems[:i:i], m.ActionItems[i+1:]...)
	return nil
}

// Clone returns a deep copy
func (m *MeetingMinutes) Clone() *MeetingMinutes {
	if m == nil {
		return nil
	}
	out := &MeetingMinutes{
		Summary:     append([]string{}, m.Summary...),
		Decisions:   append([]string{}, m.Decisions...),
		ActionItems: make([]ActionItem, len(m.ActionItems)),
		Risks:       append([]string{}, m.Risks...),
	}
	for i, item := range m.ActionItems {
		if item.DueDate != nil {
			due := *item.DueDate
			item.DueDate = &due
		}
		out.ActionItems[i] = item
	}
	if m.Notes != nil {
		notes := *m.Notes
		out.Notes = &notes
	}
	return out
}

func splitLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
