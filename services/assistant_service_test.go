package services

import (
	"context"
	"testing"

	"coachhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLessonRepository is a mock type for the LessonRepository interface
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) GetAll() ([]models.Lesson, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) GetByID(id string) (*models.Lesson, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Save(lesson models.Lesson) error {
	args := m.Called(lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// scriptedGateway replays a fixed response, recording the prompt it was sent.
type scriptedGateway struct {
	response   string
	lastPrompt string
}

func (g *scriptedGateway) CreateSession(persona string) (*Session, bool) {
	return &Session{persona: persona}, true
}

func (g *scriptedGateway) Send(_ context.Context, _ *Session, prompt string) string {
	g.lastPrompt = prompt
	return g.response
}

// blockingGateway parks inside Send until released, signalling entry so a
// test can interleave a second call.
type blockingGateway struct {
	entered chan struct{}
	release chan struct{}
}

func (g *blockingGateway) CreateSession(persona string) (*Session, bool) {
	return &Session{persona: persona}, true
}

func (g *blockingGateway) Send(_ context.Context, _ *Session, _ string) string {
	g.entered <- struct{}{}
	<-g.release
	return "第一条回答。"
}

func sampleLesson() *models.Lesson {
	return &models.Lesson{
		ID:              "3001",
		Title:           "班组长的一对一沟通",
		DurationSeconds: 750,
		Transcript: []models.TranscriptLine{
			{Time: 0, Text: "这节课讲一对一沟通。"},
			{Time: 120, Text: "第一个工具是开放式提问。"},
		},
	}
}

func TestParseTimeline(t *testing.T) {
	t.Run("Well-formed lines parse in order", func(t *testing.T) {
		entries := ParseTimeline("团队管理|15\n沟通技巧|42")

		assert.Len(t, entries, 2)
		assert.Equal(t, TimelineEntry{Label: "团队管理", Seconds: 15}, entries[0])
		assert.Equal(t, TimelineEntry{Label: "沟通技巧", Seconds: 42}, entries[1])
	})

	t.Run("Malformed lines are discarded, valid ones kept", func(t *testing.T) {
		raw := "团队管理|15\n这行没有分隔符\n|30\n标签|abc\n沟通技巧| 42 \n"

		entries := ParseTimeline(raw)

		assert.Len(t, entries, 2)
		assert.Equal(t, "团队管理", entries[0].Label)
		assert.Equal(t, 42, entries[1].Seconds)
	})

	t.Run("Extra pipes stay in the time field and are discarded", func(t *testing.T) {
		entries := ParseTimeline("标签|15|备注")
		assert.Empty(t, entries)
	})

	t.Run("Empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, ParseTimeline(""))
		assert.Empty(t, ParseTimeline("\n\n  \n"))
	})
}

func TestAssistantService_Ask(t *testing.T) {
	t.Run("Without a gateway the canned reply is served", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Once()
		service := NewAssistantService(mockLessons, nullGateway{})

		reply, err := service.Ask(context.Background(), "u1", "3001", "这节课的重点是什么？")

		assert.NoError(t, err)
		assert.Equal(t, offlineAssistantReply, reply)
		mockLessons.AssertExpectations(t)
	})

	t.Run("Unknown lesson is an error", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "missing").Return(nil, nil).Once()
		service := NewAssistantService(mockLessons, nullGateway{})

		_, err := service.Ask(context.Background(), "u1", "missing", "你好")

		assert.Error(t, err)
		mockLessons.AssertExpectations(t)
	})

	t.Run("With a gateway the question is relayed", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Twice()
		gateway := &scriptedGateway{response: "重点是开放式提问。"}
		service := NewAssistantService(mockLessons, gateway)

		reply, err := service.Ask(context.Background(), "u1", "3001", "这节课的重点是什么？")
		assert.NoError(t, err)
		assert.Equal(t, "重点是开放式提问。", reply)
		assert.Equal(t, "这节课的重点是什么？", gateway.lastPrompt)

		// Follow-up questions reuse the same primed session.
		_, err = service.Ask(context.Background(), "u1", "3001", "再展开讲讲？")
		assert.NoError(t, err)
		mockLessons.AssertExpectations(t)
	})

	t.Run("Overlapping questions on one session are rejected", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Times(3)
		gateway := &blockingGateway{entered: make(chan struct{}, 2), release: make(chan struct{})}
		service := NewAssistantService(mockLessons, gateway)

		first := make(chan string, 1)
		go func() {
			reply, err := service.Ask(context.Background(), "u1", "3001", "第一个问题")
			assert.NoError(t, err)
			first <- reply
		}()
		<-gateway.entered

		// At most one turn in flight per (user, lesson) session.
		_, err := service.Ask(context.Background(), "u1", "3001", "第二个问题")
		assert.ErrorIs(t, err, ErrAssistantBusy)

		close(gateway.release)
		assert.Equal(t, "第一条回答。", <-first)

		// Once the turn returns, the session accepts questions again.
		reply, err := service.Ask(context.Background(), "u1", "3001", "第三个问题")
		assert.NoError(t, err)
		assert.Equal(t, "第一条回答。", reply)
		mockLessons.AssertExpectations(t)
	})
}

func TestAssistantService_GenerateTranscript(t *testing.T) {
	t.Run("Parseable response becomes caption lines", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Once()
		gateway := &scriptedGateway{response: "课程开场|0\n核心工具讲解|120\n课后练习|600"}
		service := NewAssistantService(mockLessons, gateway)

		lines, err := service.GenerateTranscript(context.Background(), "3001")

		assert.NoError(t, err)
		assert.Len(t, lines, 3)
		assert.Equal(t, models.TranscriptLine{Time: 120, Text: "核心工具讲解"}, lines[1])
		assert.Contains(t, gateway.lastPrompt, "750")
		mockLessons.AssertExpectations(t)
	})

	t.Run("Unparseable response falls back to the example payload", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Once()
		gateway := &scriptedGateway{response: "好的，以下是字幕大纲：第一部分……"}
		service := NewAssistantService(mockLessons, gateway)

		lines, err := service.GenerateTranscript(context.Background(), "3001")

		assert.NoError(t, err)
		assert.Equal(t, fallbackTranscript(), lines)
	})

	t.Run("Without a gateway the example payload is returned", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Once()
		service := NewAssistantService(mockLessons, nullGateway{})

		lines, err := service.GenerateTranscript(context.Background(), "3001")

		assert.NoError(t, err)
		assert.Equal(t, fallbackTranscript(), lines)
	})
}

func TestAssistantService_ExtractHighlights(t *testing.T) {
	t.Run("Parseable response becomes highlight markers", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Once()
		gateway := &scriptedGateway{response: "开放式提问|120\n行动承诺|600"}
		service := NewAssistantService(mockLessons, gateway)

		highlights, err := service.ExtractHighlights(context.Background(), "3001")

		assert.NoError(t, err)
		assert.Len(t, highlights, 2)
		assert.Equal(t, "开放式提问", highlights[0].Label)
		assert.Equal(t, 120, highlights[0].Time)
		// The transcript is included in the prompt.
		assert.Contains(t, gateway.lastPrompt, "开放式提问")
		mockLessons.AssertExpectations(t)
	})

	t.Run("Gateway transport failure falls back to the example payload", func(t *testing.T) {
		mockLessons := new(MockLessonRepository)
		mockLessons.On("GetByID", "3001").Return(sampleLesson(), nil).Once()
		gateway := &scriptedGateway{response: FallbackNoConnect}
		service := NewAssistantService(mockLessons, gateway)

		highlights, err := service.ExtractHighlights(context.Background(), "3001")

		assert.NoError(t, err)
		assert.Equal(t, fallbackHighlights(), highlights)
	})
}
