package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"coachhub/config"

	openai "github.com/sashabaranov/go-openai"
)

// Fallback replies substituted for provider failures. Conversations continue
// as though a (low-value) reply was received; no error ever reaches the user.
const (
	FallbackEmptyReply = "无法生成回答，请重试。"
	FallbackNoConnect  = "抱歉，我现在无法连接到服务器。"
)

// Session is one primed conversation with the LLM provider: a fixed persona
// instruction plus the accumulated turn history.
type Session struct {
	persona string
	history []openai.ChatCompletionMessage
}

// Gateway is the capability boundary to the hosted LLM. CreateSession returns
// ok=false when no credential is configured; callers degrade to canned
// replies. Send never returns an error: failures come back as fallback reply
// strings. No retry, no backoff, no timeout of its own.
type Gateway interface {
	CreateSession(persona string) (*Session, bool)
	Send(ctx context.Context, session *Session, prompt string) string
}

type openaiGateway struct {
	client        *openai.Client
	model         string
	maxReplyChars int
}

// NewGateway builds a Gateway from the application config. Without an API key
// it returns the null gateway, whose CreateSession always reports absent.
func NewGateway(cfg config.LLMConfig) Gateway {
	if cfg.APIKey == "" {
		log.Println("WARN: [Gateway] No LLM API key configured. Using null gateway; AI features degrade to canned replies.")
		return nullGateway{}
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openaiGateway{
		client:        openai.NewClientWithConfig(clientConfig),
		model:         cfg.Model,
		maxReplyChars: cfg.MaxReplyChars,
	}
}

func (g *openaiGateway) CreateSession(persona string) (*Session, bool) {
	instruction := persona
	if g.maxReplyChars > 0 {
		instruction = fmt.Sprintf("%s\n回答不要超过%d个字。", persona, g.maxReplyChars)
	}
	return &Session{persona: instruction}, true
}

func (g *openaiGateway) Send(ctx context.Context, session *Session, prompt string) string {
	if session == nil {
		return FallbackNoConnect
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(session.history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: session.persona,
	})
	messages = append(messages, session.history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil {
		log.Printf("ERROR: [Gateway] Chat completion failed: %v", err)
		return FallbackNoConnect
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Printf("WARN: [Gateway] Provider returned an empty or malformed response for model %s.", g.model)
		return FallbackEmptyReply
	}

	reply := resp.Choices[0].Message.Content
	session.history = append(session.history,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
	)
	return reply
}

// nullGateway is used when no credential is configured.
type nullGateway struct{}

func (nullGateway) CreateSession(string) (*Session, bool) { return nil, false }

func (nullGateway) Send(context.Context, *Session, string) string { return FallbackNoConnect }
