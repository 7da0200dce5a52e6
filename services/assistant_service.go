package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"coachhub/config"
	"coachhub/models"
	"coachhub/repository"
)

// ErrAssistantBusy rejects an overlapping question: at most one turn may be
// in flight per (user, lesson) session.
var ErrAssistantBusy = errors.New("a reply is already pending for this lesson")

const offlineAssistantReply = "（离线模式）AI助手暂时不可用。您可以先浏览课程字幕和重点标记，稍后再试。"

// TimelineEntry is one parsed "label|seconds" line from an LLM timeline
// response.
type TimelineEntry struct {
	Label   string
	Seconds int
}

// ParseTimeline parses the strict delimited line format the one-shot prompts
// ask the model for. Any line that does not yield a non-empty label and an
// integer time is discarded.
func ParseTimeline(raw string) []TimelineEntry {
	var entries []TimelineEntry
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			continue
		}
		label := strings.TrimSpace(parts[0])
		seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if label == "" || err != nil {
			continue
		}
		entries = append(entries, TimelineEntry{Label: label, Seconds: seconds})
	}
	return entries
}

// Hardcoded example payloads substituted when an LLM timeline response yields
// zero parseable lines.
func fallbackHighlights() []models.Highlight {
	return []models.Highlight{
		{Label: "课程要点", Time: 10, Color: "blue"},
		{Label: "案例讲解", Time: 60, Color: "green"},
		{Label: "行动建议", Time: 120, Color: "amber"},
	}
}

func fallbackTranscript() []models.TranscriptLine {
	return []models.TranscriptLine{
		{Time: 0, Text: "本节课程介绍核心概念与学习目标。"},
		{Time: 60, Text: "通过实际案例演示方法的应用。"},
		{Time: 120, Text: "总结要点并给出课后行动建议。"},
	}
}

// AssistantService backs the lesson viewer's AI features: per-lesson Q&A plus
// the one-shot transcript and highlight generators.
type AssistantService interface {
	Ask(ctx context.Context, userID, lessonID, question string) (string, error)
	GenerateTranscript(ctx context.Context, lessonID string) ([]models.TranscriptLine, error)
	ExtractHighlights(ctx context.Context, lessonID string) ([]models.Highlight, error)
}

type assistantService struct {
	lessons repository.LessonRepository
	gateway Gateway

	// One accumulated gateway session per (user, lesson) pair, so follow-up
	// questions keep their context. busy marks sessions with a turn in
	// flight; the gateway call itself runs outside the lock.
	mu       sync.Mutex
	sessions map[string]*Session
	busy     map[string]bool
}

// NewAssistantService creates an AssistantService.
func NewAssistantService(lessons repository.LessonRepository, gateway Gateway) AssistantService {
	return &assistantService{
		lessons:  lessons,
		gateway:  gateway,
		sessions: make(map[string]*Session),
		busy:     make(map[string]bool),
	}
}

// lessonPersona primes a session with the course context: the configured
// persona plus the lesson title and its transcript text.
func lessonPersona(lesson *models.Lesson) string {
	var sb strings.Builder
	sb.WriteString(config.AppConfig.LLM.Persona)
	sb.WriteString("\n你正在辅导用户学习课程《")
	sb.WriteString(lesson.Title)
	sb.WriteString("》。课程字幕如下：\n")
	for _, line := range lesson.Transcript {
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	sb.WriteString("回答问题时优先引用课程内容。")
	return sb.String()
}

// Ask relays one question in the context of the user's session for this
// lesson. Without a gateway credential it degrades to a canned reply.
func (s *assistantService) Ask(ctx context.Context, userID, lessonID, question string) (string, error) {
	lesson, err := s.lessons.GetByID(lessonID)
	if err != nil {
		return "", err
	}
	if lesson == nil {
		return "", fmt.Errorf("lesson '%s' not found", lessonID)
	}

	s.mu.Lock()
	sessionKey := userID + "/" + lessonID
	if s.busy[sessionKey] {
		s.mu.Unlock()
		return "", ErrAssistantBusy
	}
	gwSession, exists := s.sessions[sessionKey]
	if !exists {
		var ok bool
		gwSession, ok = s.gateway.CreateSession(lessonPersona(lesson))
		if !ok {
			s.mu.Unlock()
			log.Printf("INFO: [AssistantService] Gateway unavailable; serving canned reply for lesson '%s'.", lessonID)
			return offlineAssistantReply, nil
		}
		s.sessions[sessionKey] = gwSession
	}
	s.busy[sessionKey] = true
	s.mu.Unlock()

	reply := s.gateway.Send(ctx, gwSession, question)

	s.mu.Lock()
	delete(s.busy, sessionKey)
	s.mu.Unlock()
	return reply, nil
}

// GenerateTranscript asks the model for caption lines in "文字|秒数" format
// and parses them defensively. Zero parseable lines falls back to the example
// payload.
func (s *assistantService) GenerateTranscript(ctx context.Context, lessonID string) ([]models.TranscriptLine, error) {
	lesson, err := s.lessons.GetByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson '%s' not found", lessonID)
	}

	gwSession, ok := s.gateway.CreateSession(config.AppConfig.LLM.Persona)
	if !ok {
		return fallbackTranscript(), nil
	}

	prompt := fmt.Sprintf(
		"为时长%d秒的课程《%s》生成一份中文字幕大纲。每行一个条目，严格使用“文字|秒数”格式，秒数为整数，不要输出其他内容。",
		lesson.DurationSeconds, lesson.Title)
	raw := s.gateway.Send(ctx, gwSession, prompt)

	entries := ParseTimeline(raw)
	if len(entries) == 0 {
		log.Printf("WARN: [AssistantService] Transcript response for lesson '%s' had no parseable lines; using fallback payload.", lessonID)
		return fallbackTranscript(), nil
	}
	lines := make([]models.TranscriptLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, models.TranscriptLine{Time: e.Seconds, Text: e.Label})
	}
	return lines, nil
}

// ExtractHighlights asks the model for highlight markers in "标签|秒数" format.
func (s *assistantService) ExtractHighlights(ctx context.Context, lessonID string) ([]models.Highlight, error) {
	lesson, err := s.lessons.GetByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("lesson '%s' not found", lessonID)
	}

	gwSession, ok := s.gateway.CreateSession(config.AppConfig.LLM.Persona)
	if !ok {
		return fallbackHighlights(), nil
	}

	var sb strings.Builder
	sb.WriteString("根据下面的课程字幕，提取3到5个值得标记的重点时间点。每行一个，严格使用“标签|秒数”格式，秒数为整数，不要输出其他内容。\n")
	for _, line := range lesson.Transcript {
		sb.WriteString(fmt.Sprintf("%d %s\n", line.Time, line.Text))
	}
	raw := s.gateway.Send(ctx, gwSession, sb.String())

	entries := ParseTimeline(raw)
	if len(entries) == 0 {
		log.Printf("WARN: [AssistantService] Highlight response for lesson '%s' had no parseable lines; using fallback payload.", lessonID)
		return fallbackHighlights(), nil
	}
	highlights := make([]models.Highlight, 0, len(entries))
	for _, e := range entries {
		highlights = append(highlights, models.Highlight{Label: e.Label, Time: e.Seconds})
	}
	return highlights, nil
}
