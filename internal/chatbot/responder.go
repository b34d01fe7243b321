package chatbot

import "context"

// Message is one turn of the widget conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Responder produces the assistant's next reply for a conversation.
// When forceJSON is set the responder is asked to emit only the
// lead-capture JSON object instead of conversational text.
type Responder interface {
	Reply(ctx context.Context, history []Message, forceJSON bool) (string, error)
}
