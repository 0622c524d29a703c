package services

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

const answerSystemPrompt = "You are HoloMentor, a helpful AI assistant."

const answerUserPrompt = `You are HoloMentor, an intelligent AI assistant. You provide helpful, accurate, and engaging responses.

User ID: {user_id}
Current Question: {question}

Context from previous conversations:
{context}

Instructions:
- Greet the user
- Use past memory context
- Respond clearly and informatively
- Be friendly and conversational

Please respond:`

var answerTemplate = prompt.FromMessages(
	schema.FString,
	schema.SystemMessage(answerSystemPrompt),
	schema.UserMessage(answerUserPrompt),
)

// renderPrompt fills the answer template and converts it to chat completion messages.
func renderPrompt(ctx context.Context, userID, question, memoryContext string) ([]openai.ChatCompletionMessage, error) {
	messages, err := answerTemplate.Format(ctx, map[string]any{
		"user_id":  userID,
		"question": question,
		"context":  memoryContext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}

	completionMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		completionMessages = append(completionMessages, openai.ChatCompletionMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}
	return completionMessages, nil
}
