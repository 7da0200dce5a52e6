package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"coachhub/config"
	"coachhub/models"
	"coachhub/repository"

	"github.com/google/uuid"
)

// Sentinel errors for rejected turns. Handlers branch on these; they are not
// surfaced as server faults.
var (
	ErrSessionNotFound = errors.New("diagnosis session not found")
	ErrSessionFinished = errors.New("diagnosis session is finished")
	ErrTurnPending     = errors.New("a reply is already pending for this session")
	ErrTooFewTurns     = errors.New("not enough conversation to summarize")
)

const greeting = "您好，我是您的运营诊断助手。请描述一下您客服中心目前最困扰您的问题，或从常见问题中选择一个开始。"

const closingReply = "感谢您的详细描述。根据我们的对话，您的问题已经有了初步画像。点击下方按钮获取针对性的解决方案，我们的顾问也会为您准备一份诊断建议。"

const clarifyingReply = "明白了。能再补充一下：这个问题大概持续了多久？您之前尝试过哪些改进措施，效果如何？"

const offlineSummary = "（离线摘要）本次对话主要围绕您描述的运营问题展开，建议结合KPI看板数据做进一步定位，并预约顾问进行深入诊断。"

// responseRule maps a keyword set to a response template. Rules are evaluated
// in declaration order; the first rule with any matching keyword wins.
type responseRule struct {
	name     string
	keywords []string
	reply    string
}

var openingRules = []responseRule{
	{
		name:     "salary",
		keywords: []string{"薪", "工资", "薪酬"},
		reply:    "薪酬问题通常要先看结构再看总量：固定与绩效的配比、夜班与技能津贴是否和同业对齐。您目前坐席的固定薪资占比大概是多少？",
	},
	{
		name:     "attrition",
		keywords: []string{"流失", "离职"},
		reply:    "流失问题建议按工龄分段定位：一个月内流失多是招聘与预期问题，三个月内多是带教与排班问题。您的流失集中在哪个阶段？",
	},
	{
		name:     "management",
		keywords: []string{"管理"},
		reply:    "现场管理问题常见于班组长带教能力与一对一沟通频率。您的班组长平均带多少人？多久做一次一对一？",
	},
	{
		name:     "forecast",
		keywords: []string{"预测", "话务"},
		reply:    "话务预测偏差大多源于输入维度不足：活动日历、渠道迁移、节假日都要进模型。您目前的预测口径是怎样的？",
	},
	{
		name:     "profile",
		keywords: []string{"画像"},
		reply:    "建立坐席或客户画像，关键是先定义要回答的业务问题，再反推需要的标签。您想用画像解决什么决策？",
	},
}

const openingFallback = "收到。为了帮您更准确地定位问题，能否具体说说：这个问题影响到了哪些指标？比如流失率、服务水平或质检成绩。"

// matchOpeningReply selects the step-0 response by substring keyword match,
// in rule priority order, with a generic fallback.
func matchOpeningReply(utterance string) string {
	for _, rule := range openingRules {
		for _, kw := range rule.keywords {
			if strings.Contains(utterance, kw) {
				log.Printf("INFO: [DiagnosisService] Opening utterance matched rule '%s'.", rule.name)
				return rule.reply
			}
		}
	}
	return openingFallback
}

// DiagnosisService drives the scripted diagnosis chat: a linear step counter
// with a keyword-matched opening, a clarifying turn, and a terminal closing
// that reveals the solution call-to-action.
type DiagnosisService interface {
	StartSession(user *models.User, presetIssueID string) (*models.DiagnosisSession, error)
	SendMessage(sessionID string, text string) (*models.DiagnosisSession, error)
	Restart(sessionID string) (*models.DiagnosisSession, error)
	Summarize(ctx context.Context, sessionID string) (*models.DiagnosisSession, error)
}

type diagnosisService struct {
	sessions repository.SessionRepository
	issues   repository.IssueRepository
	gateway  Gateway
	mu       sync.Mutex
}

// NewDiagnosisService creates a DiagnosisService.
func NewDiagnosisService(sessions repository.SessionRepository, issues repository.IssueRepository, gateway Gateway) DiagnosisService {
	return &diagnosisService{sessions: sessions, issues: issues, gateway: gateway}
}

// StartSession opens a new session with the greeting. A preset issue routes
// its canned user text in as the first utterance and answers it with the
// issue's canned reply.
func (s *diagnosisService) StartSession(user *models.User, presetIssueID string) (*models.DiagnosisSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := &models.DiagnosisSession{
		ID:        uuid.NewString(),
		Step:      0,
		CreatedAt: time.Now(),
		Transcript: []models.ChatMessage{
			{Role: models.ChatRoleAssistant, Content: greeting, Timestamp: time.Now()},
		},
	}
	if user != nil {
		session.UserID = user.ID
	}

	if presetIssueID != "" {
		issue, err := s.issues.GetByID(presetIssueID)
		if err != nil {
			return nil, fmt.Errorf("failed to load preset issue '%s': %w", presetIssueID, err)
		}
		if issue == nil {
			log.Printf("WARN: [DiagnosisService] Preset issue '%s' not found; starting a blank session.", presetIssueID)
		} else {
			now := time.Now()
			session.Transcript = append(session.Transcript,
				models.ChatMessage{Role: models.ChatRoleUser, Content: issue.UserText, Timestamp: now},
				models.ChatMessage{Role: models.ChatRoleAssistant, Content: issue.AIReply, Timestamp: now},
			)
			session.Step = 1
		}
	}

	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SendMessage advances the state machine by one turn. The user message is
// appended before the reply is resolved; a terminal session rejects input
// without touching the transcript.
func (s *diagnosisService) SendMessage(sessionID string, text string) (*models.DiagnosisSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Done() {
		return nil, ErrSessionFinished
	}
	if session.Pending {
		return nil, ErrTurnPending
	}

	now := time.Now()
	session.Transcript = append(session.Transcript, models.ChatMessage{
		Role: models.ChatRoleUser, Content: text, Timestamp: now,
	})

	var reply string
	switch session.Step {
	case 0:
		reply = matchOpeningReply(text)
		session.Step = 1
	case 1:
		reply = clarifyingReply
		session.Step = 2
	default:
		reply = closingReply
		session.Step = models.StepDone
	}

	session.Transcript = append(session.Transcript, models.ChatMessage{
		Role: models.ChatRoleAssistant, Content: reply, Timestamp: now,
	})
	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Restart resets the counter and clears the transcript back to the greeting.
// A finished session stays finished.
func (s *diagnosisService) Restart(sessionID string) (*models.DiagnosisSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Done() {
		return nil, ErrSessionFinished
	}
	// A summary turn owns the transcript until it returns; clearing it out
	// from under the gateway call would splice the summary into the fresh
	// transcript.
	if session.Pending {
		return nil, ErrTurnPending
	}

	session.Step = 0
	session.Transcript = []models.ChatMessage{
		{Role: models.ChatRoleAssistant, Content: greeting, Timestamp: time.Now()},
	}
	if err := s.sessions.Update(session); err != nil {
		return nil, err
	}
	log.Printf("INFO: [DiagnosisService] Session %s restarted.", sessionID)
	return session, nil
}

// Summarize sends the transcript so far to the LLM gateway and appends the
// result as an extra assistant turn. The step counter is untouched. Available
// once the transcript has at least two entries and the session is not
// terminal; without a gateway credential a deterministic offline summary is
// substituted.
func (s *diagnosisService) Summarize(ctx context.Context, sessionID string) (*models.DiagnosisSession, error) {
	s.mu.Lock()
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if session == nil {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.Done() {
		s.mu.Unlock()
		return nil, ErrSessionFinished
	}
	if session.Pending {
		s.mu.Unlock()
		return nil, ErrTurnPending
	}
	if len(session.Transcript) < 2 {
		s.mu.Unlock()
		return nil, ErrTooFewTurns
	}

	var sb strings.Builder
	sb.WriteString("请用三句话以内总结下面这段运营诊断对话，指出用户的核心问题和下一步建议：\n")
	for _, msg := range session.Transcript {
		if msg.Role == models.ChatRoleUser {
			sb.WriteString("用户：")
		} else {
			sb.WriteString("助手：")
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}

	summary := offlineSummary
	gwSession, ok := s.gateway.CreateSession(config.AppConfig.LLM.Persona)
	if ok {
		// Only one outstanding turn per session: the pending flag blocks
		// further input while the gateway call is in flight.
		session.Pending = true
		s.mu.Unlock()
		summary = s.gateway.Send(ctx, gwSession, sb.String())
		s.mu.Lock()
		session.Pending = false
	}

	session.Transcript = append(session.Transcript, models.ChatMessage{
		Role: models.ChatRoleAssistant, Content: summary, Timestamp: time.Now(),
	})
	err = s.sessions.Update(session)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return session, nil
}
