package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiResponder implements Responder using Google's Gemini API.
type GeminiResponder struct {
	client  *genai.Client
	modelID string
}

var _ Responder = (*GeminiResponder)(nil)

// NewGeminiResponder creates a new Gemini-backed responder.
func NewGeminiResponder(ctx context.Context, apiKey, modelID string) (*GeminiResponder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chatbot: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("chatbot: failed to create gemini client: %w", err)
	}

	return &GeminiResponder{
		client:  client,
		modelID: modelID,
	}, nil
}

// Reply sends the conversation to Gemini and returns the assistant's text.
func (r *GeminiResponder) Reply(ctx context.Context, history []Message, forceJSON bool) (string, error) {
	model := r.client.GenerativeModel(r.modelID)
	model.SetTemperature(0.4)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemPrompt))

	messages := make([]Message, 0, len(fewShots)+len(history)+1)
	messages = append(messages, fewShots...)
	messages = append(messages, history...)
	if forceJSON {
		messages = append(messages, Message{Role: "user", Content: forceJSONInstruction})
	}
	if len(messages) == 0 {
		return "", errors.New("chatbot: gemini requires at least one message")
	}

	cs := model.StartChat()
	for _, msg := range messages[:len(messages)-1] {
		content := strings.TrimSpace(msg.Content)
		if content == "" || msg.Role == "system" {
			continue
		}

		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}

		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	last := messages[len(messages)-1]
	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("chatbot: gemini completion failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("chatbot: gemini returned no candidates")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("chatbot: gemini returned empty content")
	}

	var reply strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}

	return strings.TrimSpace(reply.String()), nil
}

// Close releases resources held by the Gemini client.
func (r *GeminiResponder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
