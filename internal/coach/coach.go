// Package coach is the boundary to the generative AI productivity coach.
//
// Every call returns usable text. When no provider is configured, or the
// provider fails, a fixed fallback is returned and the failure is logged at
// WARN. Callers never see an error from this package.
package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	boosterrors "github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/logging"
)

// Coach is the set of requests the rest of Boost makes to the AI coach.
type Coach interface {
	// Chat sends one conversational turn and returns the reply.
	Chat(ctx context.Context, message string) string
	// SuggestTasks returns up to three short task titles.
	SuggestTasks(ctx context.Context) []string
	// Insight returns one encouraging sentence about metrics.
	Insight(ctx context.Context, metrics any) string
	// Tips returns up to three improvement tips.
	Tips(ctx context.Context) []string
}

// MaxItems caps suggestion and tip lists.
const MaxItems = 3

// SystemInstruction sets the coach persona for chat sessions.
const SystemInstruction = `You are Jake.0, an energetic, motivational, and highly practical productivity AI coach.
You help users track their tasks, build habits, and stay focused.
Keep your responses concise, encouraging, and action-oriented.
If the user asks about productivity tips, give specific, actionable advice (like Pomodoro, time-blocking).
Use emojis occasionally to keep the tone friendly.`

// Prompts for the one-shot requests.
const (
	suggestPrompt = "Generate 3 short, specific, and actionable productivity tasks for a software developer or professional. Return ONLY the 3 tasks separated by commas, no numbering or other text."
	tipsPrompt    = "Give me 3 short, distinct, bullet-point style tips to strictly improve productivity based on general best practices. Return only the tips separated by pipes '|'."
	insightPrompt = "Analyze this productivity data: %s. Give a single, short (max 15 words), encouraging sentence about the user's performance."
)

// Fallback replies.
const (
	ChatNoKeyReply   = "I'm sorry, but the API key is missing. Please configure it to chat."
	ChatEmptyReply   = "I'm having a bit of trouble thinking right now. Try again?"
	ChatErrorReply   = "Sorry, I couldn't connect to the server. Please check your connection."
	InsightNoKey     = "Great consistency! Try to maintain this momentum tomorrow."
	InsightEmpty     = "You're doing great! Keep pushing forward."
	InsightErrorText = "Consistency is key to long-term success!"
)

// Fallback lists. Callers receive copies.
var (
	suggestionsNoKey = []string{"Review daily goals", "Clear email inbox", "Take a 5 min stretch"}
	suggestionsError = []string{"Plan tomorrow's agenda", "Organize workspace", "Update documentation"}
	tipsNoKey        = []string{
		"Use the Pomodoro technique to manage fatigue.",
		"Break large tasks into smaller sub-tasks.",
		"Block distractions during deep work sessions.",
	}
	tipsError = []string{"Prioritize your top 3 tasks daily.", "Eliminate multitasking.", "Review your goals weekly."}
)

var errSessionClosed = errors.New("chat session closed")

// Client implements Coach over an eino chat model. A Client without a
// model answers every request with the unconfigured fallbacks.
type Client struct {
	model    model.BaseChatModel
	provider Provider
	timeout  time.Duration

	mu      sync.Mutex
	session *ChatSession
}

var _ Coach = (*Client)(nil)

// New builds a Client from cfg. Configuration problems are logged and
// produce an unconfigured Client.
func New(ctx context.Context, cfg Config) *Client {
	c := &Client{provider: cfg.Provider, timeout: cfg.Timeout}

	if cfg.Provider.RequiresAPIKey() && cfg.APIKey == "" {
		logging.FromContext(ctx).Debug("coach not configured", logging.KeyProvider, cfg.Provider)
		return c
	}

	m, err := NewChatModel(ctx, cfg)
	if err != nil {
		logging.FromContext(ctx).Warn("coach provider unavailable",
			logging.KeyProvider, cfg.Provider,
			logging.KeyModel, cfg.Model,
			logging.KeyError, err)
		return c
	}
	c.model = m
	return c
}

// NewWithModel wraps an existing chat model.
func NewWithModel(m model.BaseChatModel, timeout time.Duration) *Client {
	return &Client{model: m, timeout: timeout}
}

// Configured reports whether the client can reach a provider.
func (c *Client) Configured() bool {
	return c.model != nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Client) warn(ctx context.Context, op string, err error) {
	logging.FromContext(ctx).Warn("coach request failed, using fallback",
		logging.KeyOperation, op,
		logging.KeyProvider, c.provider,
		logging.KeyCategory, boosterrors.Classify(err).String(),
		logging.KeyError, err)
}

// generate sends a single stateless prompt.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return strings.TrimSpace(resp.Content), nil
}

// Session returns the current chat session, creating it on first use.
func (c *Client) Session() *ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil && c.model != nil {
		c.session = NewChatSession(c.model, SystemInstruction)
	}
	return c.session
}

// Reset discards the conversation. The next Chat starts a new session.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.session.Close()
		c.session = nil
	}
}

// Close releases the chat session.
func (c *Client) Close() error {
	c.Reset()
	return nil
}

// Chat implements Coach.
func (c *Client) Chat(ctx context.Context, message string) string {
	if c.model == nil {
		return ChatNoKeyReply
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	reply, err := c.Session().Send(ctx, message)
	if err != nil {
		c.warn(ctx, "chat", err)
		return ChatErrorReply
	}
	if reply == "" {
		return ChatEmptyReply
	}
	return reply
}

// SuggestTasks implements Coach.
func (c *Client) SuggestTasks(ctx context.Context) []string {
	if c.model == nil {
		return clone(suggestionsNoKey)
	}
	text, err := c.generate(ctx, suggestPrompt)
	if err != nil {
		c.warn(ctx, "suggest", err)
		return clone(suggestionsError)
	}
	return SplitList(text, ",")
}

// Insight implements Coach.
func (c *Client) Insight(ctx context.Context, metrics any) string {
	if c.model == nil {
		return InsightNoKey
	}
	data, err := json.Marshal(metrics)
	if err != nil {
		c.warn(ctx, "insight", err)
		return InsightErrorText
	}
	text, err := c.generate(ctx, fmt.Sprintf(insightPrompt, data))
	if err != nil {
		c.warn(ctx, "insight", err)
		return InsightErrorText
	}
	if text == "" {
		return InsightEmpty
	}
	return text
}

// Tips implements Coach.
func (c *Client) Tips(ctx context.Context) []string {
	if c.model == nil {
		return clone(tipsNoKey)
	}
	text, err := c.generate(ctx, tipsPrompt)
	if err != nil {
		c.warn(ctx, "tips", err)
		return clone(tipsError)
	}
	return SplitList(text, "|")
}

// SplitList splits a model reply on sep, trims each item, drops empties
// and keeps at most MaxItems.
func SplitList(text, sep string) []string {
	items := []string{}
	for _, part := range strings.Split(text, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
		if len(items) == MaxItems {
			break
		}
	}
	return items
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
