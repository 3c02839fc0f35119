package chat

import "context"

// Message is one inbound text message tagged with its conversation.
type Message struct {
	ChatID int64
	Text   string
}

// Reply is an outbound text, optionally paired with a one-time reply
// keyboard. Keyboard labels are matched back as plain text.
type Reply struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
}

// Sender delivers replies to the chat transport.
type Sender interface {
	Send(ctx context.Context, chatID int64, reply Reply) error
}
