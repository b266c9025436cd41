package main

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Fixed request shape for the exam Q&A proxy.
const (
	answerPromptPrefix = "Answer the following exam question in detail: "
	answerModel        = openai.GPT3Dot5Turbo
	answerMaxTokens    = 250
	answerTemperature  = 0.7
	answerTimeout      = 30 * time.Second
)

// CompletionClient answers a free-text exam question.
type CompletionClient interface {
	Ask(ctx context.Context, query string) (string, error)
}

type openAIClient struct {
	client *openai.Client
}

func newOpenAIClient(apiKey string) *openAIClient {
	return &openAIClient{client: openai.NewClient(apiKey)}
}

// Ask wraps the query in the instructional prompt and returns the trimmed
// completion text. One shot, no retry.
func (o *openAIClient) Ask(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: answerModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: answerPromptPrefix + query},
		},
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
