// Package chat keeps the Krishi Guru conversation of one browser.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"agrifields/internal/domain"
	"agrifields/internal/i18n"
	"agrifields/internal/providers/gemini"
)

// ErrBusy is returned while a previous message is still awaiting its reply.
var ErrBusy = errors.New("chat: a reply is still pending")

// Advisor produces tutor replies.
type Advisor interface {
	Chat(ctx context.Context, message string, lang domain.Language, history []gemini.Turn) string
}

// Conversation is an append-only message list seeded with the localized
// greeting.
type Conversation struct {
	advisor Advisor
	now     func() time.Time

	mu       sync.Mutex
	messages []domain.Message
	language domain.Language
	busy     bool
	// generation changes on Reset so a reply in flight is dropped.
	generation int
}

func NewConversation(advisor Advisor, lang domain.Language) *Conversation {
	c := &Conversation{advisor: advisor, now: time.Now, language: lang.OrDefault()}
	c.messages = []domain.Message{c.intro()}
	return c
}

func (c *Conversation) intro() domain.Message {
	return domain.Message{
		ID:        uuid.NewString(),
		Text:      i18n.For(c.language).T("teacher.intro"),
		Sender:    domain.SenderAI,
		Timestamp: c.now().UTC(),
	}
}

// Localize follows a language change. While the greeting is the only
// message it is replaced by the greeting in the new language.
func (c *Conversation) Localize(lang domain.Language) {
	lang = lang.OrDefault()
	c.mu.Lock()
	defer c.mu.Unlock()
	if lang == c.language {
		return
	}
	c.language = lang
	if len(c.messages) == 1 && c.messages[0].Sender == domain.SenderAI {
		c.messages[0] = c.intro()
	}
}

// Send appends text as a user message, asks the advisor with the prior
// history and appends the reply. It returns the whole conversation.
func (c *Conversation) Send(ctx context.Context, text string) ([]domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.Invalid("text", "is required")
	}

	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.busy = true
	history := make([]gemini.Turn, 0, len(c.messages))
	for _, m := range c.messages {
		history = append(history, gemini.Turn{Sender: m.Sender, Text: m.Text})
	}
	c.messages = append(c.messages, domain.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    domain.SenderUser,
		Timestamp: c.now().UTC(),
	})
	lang := c.language
	generation := c.generation
	c.mu.Unlock()

	reply := c.advisor.Chat(ctx, text, lang, history)

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return c.copyLocked(), nil
	}
	c.messages = append(c.messages, domain.Message{
		ID:        uuid.NewString(),
		Text:      reply,
		Sender:    domain.SenderAI,
		Timestamp: c.now().UTC(),
	})
	c.busy = false
	return c.copyLocked(), nil
}

// Reset starts over with the greeting in lang, as after a sign-out.
func (c *Conversation) Reset(lang domain.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang.OrDefault()
	c.messages = []domain.Message{c.intro()}
	c.busy = false
	c.generation++
}

func (c *Conversation) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked()
}

// Busy reports whether a reply is pending.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Conversation) copyLocked() []domain.Message {
	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}
