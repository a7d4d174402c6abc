// Package conversation implements the in-memory chat log shared by the
// assistant widget and the assistant client.
package conversation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/diogo/folio/internal/clock"
	"github.com/diogo/folio/internal/models"
)

// Conversation is an append-only ordered log of chat messages.
// It is not safe for concurrent use; the owning widget serialises access.
type Conversation struct {
	messages []models.ChatMessage
	clock    clock.Clock
}

// New creates a conversation seeded with a single assistant greeting
func New(greeting string, c clock.Clock) *Conversation {
	if c == nil {
		c = clock.Real{}
	}
	conv := &Conversation{clock: c}
	conv.messages = append(conv.messages, conv.stamp(models.RoleAssistant, greeting))
	return conv
}

// stamp builds a message timestamped no earlier than the last one
func (c *Conversation) stamp(role models.Role, content string) models.ChatMessage {
	now := c.clock.Now()
	if n := len(c.messages); n > 0 && now.Before(c.messages[n-1].Timestamp) {
		now = c.messages[n-1].Timestamp
	}
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
}

// Append adds a message at the end and returns a copy of the updated log
func (c *Conversation) Append(role models.Role, content string) ([]models.ChatMessage, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if role == models.RoleUser && strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("user message cannot be empty")
	}

	c.messages = append(c.messages, c.stamp(role, content))
	return c.Messages(), nil
}

// Messages returns a copy of the log, oldest first
func (c *Conversation) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the newest message
func (c *Conversation) Last() models.ChatMessage {
	return c.messages[len(c.messages)-1]
}

// ToRequestHistory projects the log to role/text pairs in order, greeting
// included. Nothing is truncated or summarised.
func (c *Conversation) ToRequestHistory() []models.Turn {
	turns := make([]models.Turn, len(c.messages))
	for i, m := range c.messages {
		turns[i] = models.Turn{Role: m.Role, Text: m.Content}
	}
	return turns
}
