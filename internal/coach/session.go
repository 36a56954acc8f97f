package coach

import (
	"context"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ChatSession is one conversation with the coach. It owns the system
// instruction and the turn history sent with every request.
type ChatSession struct {
	mu      sync.Mutex
	model   model.BaseChatModel
	system  string
	history []*schema.Message
	closed  bool
}

// NewChatSession starts an empty conversation.
func NewChatSession(m model.BaseChatModel, systemInstruction string) *ChatSession {
	return &ChatSession{model: m, system: systemInstruction}
}

// Send sends one user turn and returns the reply text. A failed turn is not
// added to the history.
func (s *ChatSession) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", errSessionClosed
	}

	msgs := make([]*schema.Message, 0, len(s.history)+2)
	if s.system != "" {
		msgs = append(msgs, schema.SystemMessage(s.system))
	}
	msgs = append(msgs, s.history...)
	user := schema.UserMessage(text)
	msgs = append(msgs, user)

	resp, err := s.model.Generate(ctx, msgs)
	if err != nil {
		return "", err
	}

	reply := ""
	if resp != nil {
		reply = strings.TrimSpace(resp.Content)
	}
	s.history = append(s.history, user, schema.AssistantMessage(reply, nil))
	return reply, nil
}

// Turns returns the number of completed exchanges.
func (s *ChatSession) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history) / 2
}

// History returns a copy of the conversation so far.
func (s *ChatSession) History() []*schema.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*schema.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Close discards the history. A closed session rejects further turns.
func (s *ChatSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.closed = true
}
