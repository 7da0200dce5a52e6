package models

import "time"

// ChatRole identifies who produced a transcript entry.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of a conversation transcript.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// StepDone marks a diagnosis session as terminal: input is disabled and the
// "get solution" call-to-action is revealed.
const StepDone = 100

// DiagnosisSession is the state of one diagnosis chat: a step counter driving
// the scripted flow and the in-memory transcript. Pending guards against
// overlapping turns; at most one is in flight per session.
type DiagnosisSession struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Step       int           `json:"step"`
	Transcript []ChatMessage `json:"transcript"`
	Pending    bool          `json:"pending"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Done reports whether the session has reached the terminal step.
func (s *DiagnosisSession) Done() bool {
	return s.Step >= StepDone
}

// DiagnosisIssue is a preset issue used to seed the scripted branch of the
// diagnosis chat: selecting one routes its canned user text in as the first
// utterance.
type DiagnosisIssue struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	UserText string `json:"user_text"`
	AIReply  string `json:"ai_reply"`
}
