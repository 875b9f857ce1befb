package minutes

import (
	"fmt"
	"strings"
)

// SystemContract is the instruction every text generation backend receives
const SystemContract = `You are a professional meeting minutes assistant. Your task is to analyze meeting transcripts and extract structured information.

Return a single JSON object with exactly these keys:
{
    "summary": ["bullet point 1", "bullet point 2"],
    "decisions": ["decision 1", "decision 2"],
    "action_items": [
        {
            "owner": "person name",
            "task": "clear task description",
            "due_date": "date if mentioned, null otherwise",
            "confidence": 0.9
        }
    ],
    "risks": ["risk or open question 1"]
}

Guidelines:
- summary: key outcomes and topics discussed, at most 8 short bullets
- decisions: clear decisions made during the meeting
- action_items: every item must have an owner and a task; copy the due date as spoken if one is mentioned; set confidence from 0 to 1 based on how clearly it was assigned
- risks: important concerns, blockers or open questions raised
- Be concise and professional
- If a section has no content, return an empty list for it, never null and never omit the key`

// BuildUserPrompt wraps a formatted transcript with optional meeting context
func BuildUserPrompt(transcript, meetingContext string) string {
	prompt := "Meeting Transcript:\n\n" + transcript
	if strings.TrimSpace(meetingContext) != "" {
		prompt = fmt.Sprintf("Meeting Context: %s\n\n%s", meetingContext, prompt)
	}
	return prompt
}
