package services

import (
	"context"
	"testing"

	"coachhub/config"

	"github.com/stretchr/testify/assert"
)

func TestNewGateway(t *testing.T) {
	t.Run("Missing API key yields the null gateway", func(t *testing.T) {
		gateway := NewGateway(config.LLMConfig{})

		session, ok := gateway.CreateSession("你是一位运营顾问。")
		assert.False(t, ok)
		assert.Nil(t, session)
		assert.Equal(t, FallbackNoConnect, gateway.Send(context.Background(), session, "你好"))
	})

	t.Run("Configured gateway primes sessions with the reply limit", func(t *testing.T) {
		gateway := NewGateway(config.LLMConfig{APIKey: "test-key", Model: "gpt-4o-mini", MaxReplyChars: 150})

		session, ok := gateway.CreateSession("你是一位运营顾问。")
		assert.True(t, ok)
		assert.Contains(t, session.persona, "150")
	})

	t.Run("Nil session gets the transport fallback", func(t *testing.T) {
		gateway := NewGateway(config.LLMConfig{APIKey: "test-key"})

		assert.Equal(t, FallbackNoConnect, gateway.Send(context.Background(), nil, "你好"))
	})
}
