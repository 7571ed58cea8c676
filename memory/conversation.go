package memory

import (
	"slices"

	"github.com/anthropics/anthropic-sdk-go"
)

// Conversation is an append-only, ordered list of turns.
// The zero value is an empty conversation ready to use.
type Conversation struct {
	msgs []anthropic.MessageParam
}

// Append adds turns to the end of the history.
func (c *Conversation) Append(msgs ...anthropic.MessageParam) {
	c.msgs = append(c.msgs, msgs...)
}

// Messages returns the history oldest first. The slice is clipped so appending
// to it never writes into the conversation's backing array.
func (c *Conversation) Messages() []anthropic.MessageParam {
	return slices.Clip(c.msgs)
}

// Len reports the number of turns.
func (c *Conversation) Len() int { return len(c.msgs) }
