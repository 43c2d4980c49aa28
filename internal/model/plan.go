package model

import "time"

// Plan is the structured decision object parsed from a model reply.
type Plan struct {
	Understood            string     `json:"understood"`
	ResponseVoice         string     `json:"response_voice"`
	ToolsToCall           []ToolCall `json:"tools_to_call"`
	NeedsClarification    bool       `json:"needs_clarification"`
	ClarificationQuestion string     `json:"clarification_question,omitempty"`
	Confidence            float64    `json:"confidence"`
}

// ToolCall names one tool invocation requested by the plan.
type ToolCall struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
	Reason string                 `json:"reason,omitempty"`
}

// ToolResult records the outcome of a single tool invocation within a turn.
// Failures are values, not exceptions: one tool failing does not cancel
// the rest of the plan.
type ToolResult struct {
	Tool    string      `json:"tool"`
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TurnResult is what one completed voice interaction produces.
type TurnResult struct {
	Transcript            string       `json:"transcript"`
	Understood            string       `json:"understood"`
	ResponseVoice         string       `json:"responseVoice"`
	Confidence            float64      `json:"confidence"`
	NeedsClarification    bool         `json:"needsClarification"`
	ClarificationQuestion string       `json:"clarificationQuestion,omitempty"`
	ToolResults           []ToolResult `json:"toolResults"`
	// AutoDismissAfter hints the UI to drop the visual summary if the
	// user has not dismissed it.
	AutoDismissAfter time.Duration `json:"autoDismissAfterNs"`
}

// MemorySnapshot is the immutable profile view captured once at turn start
// and embedded in the prompt; tool side effects during the turn cannot
// change what the model saw.
type MemorySnapshot struct {
	Name         string         `json:"name"`
	Contacts     []Contact      `json:"contacts"`
	Medications  []Medication   `json:"medications"`
	Appointments []Appointment  `json:"appointments"`
	History      []HistoryEntry `json:"history"`
	Preferences  Preferences    `json:"preferences"`
}
