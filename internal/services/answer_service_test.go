package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vadimgribanov.com/holomentor/internal/models"
)

type fakeCompletionClient struct {
	registered bool
	reply      string
	err        error
	requests   []openai.ChatCompletionRequest
}

func (f *fakeCompletionClient) IsClientRegistered(string) bool { return f.registered }

func (f *fakeCompletionClient) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, request)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.reply}},
		},
	}, nil
}

func memoryWith(total int64, questions ...string) *models.Memory {
	memory := models.EmptyMemory("Ali")
	memory.TotalInteractions = total
	for _, q := range questions {
		memory.RecentInteractions = append(memory.RecentInteractions, models.Exchange{
			Question:  q,
			Answer:    "answer to " + q,
			Timestamp: time.Now(),
		})
	}
	return &memory
}

func TestBuildContextNewConversation(t *testing.T) {
	assert.Equal(t, "This is a new conversation with Ali.", BuildContext("Ali", nil))
	assert.Equal(t, "This is a new conversation with Ali.", BuildContext("Ali", memoryWith(4)))
}

func TestBuildContextKeepsThreeMostRecent(t *testing.T) {
	got := BuildContext("Ali", memoryWith(7, "q1", "q2", "q3", "q4"))

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "I've spoken with Ali 7 times before.", lines[0])
	assert.Equal(t, "Q: q1", lines[1])
	assert.Equal(t, "A: answer to q1", lines[2])
	assert.Equal(t, "Q: q3", lines[5])
	assert.NotContains(t, got, "q4")
}

func TestGenerateAnswerFallbackWhenUnconfigured(t *testing.T) {
	svc := NewAnswerService(&fakeCompletionClient{}, "llama3-8b-8192", 0.7, 500)
	assert.False(t, svc.Configured())

	got := svc.GenerateAnswer(context.Background(), "what's 2+2?", "Ali", nil)
	assert.Equal(t, "(Fallback mode) Hi Ali, I see your question: 'what's 2+2?'. Memory: This is a new conversation with Ali....", got)
}

func TestGenerateAnswerNilClient(t *testing.T) {
	svc := NewAnswerService(nil, "llama3-8b-8192", 0.7, 500)

	got := svc.GenerateAnswer(context.Background(), "hi", "Ali", nil)
	assert.True(t, strings.HasPrefix(got, FallbackMarker))
}

func TestFallbackAnswerTruncatesContext(t *testing.T) {
	memoryContext := strings.Repeat("é", 150)

	got := FallbackAnswer("q", "Ali", memoryContext)
	assert.Equal(t, "(Fallback mode) Hi Ali, I see your question: 'q'. Memory: "+strings.Repeat("é", 100)+"...", got)
}

func TestGenerateAnswerUsesLLM(t *testing.T) {
	client := &fakeCompletionClient{registered: true, reply: "  Four.  "}
	svc := NewAnswerService(client, "llama3-8b-8192", 0.7, 500)

	got := svc.GenerateAnswer(context.Background(), "what's 2+2?", "Ali", memoryWith(1, "hello"))
	assert.Equal(t, "Four.", got)

	require.Len(t, client.requests, 1)
	request := client.requests[0]
	assert.Equal(t, "llama3-8b-8192", request.Model)
	assert.Equal(t, float32(0.7), request.Temperature)
	assert.Equal(t, 500, request.MaxTokens)
	require.Len(t, request.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, request.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, request.Messages[1].Role)
	assert.Contains(t, request.Messages[1].Content, "what's 2+2?")
	assert.Contains(t, request.Messages[1].Content, "Q: hello")
}

func TestGenerateAnswerLLMError(t *testing.T) {
	client := &fakeCompletionClient{registered: true, err: errors.New("429 too many requests")}
	svc := NewAnswerService(client, "llama3-8b-8192", 0.7, 500)

	got := svc.GenerateAnswer(context.Background(), "hi", "Ali", nil)
	assert.Equal(t, ConnectionTroubleAnswer, got)
}
