// Package telegram is a minimal Bot API client covering what the bot needs:
// parsing webhook updates, sending replies with one-time reply keyboards and
// registering the webhook itself.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tranvq/shiftlog/internal/domain/chat"
)

const defaultBaseURL = "https://api.telegram.org"

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(token string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// Update is the subset of a webhook payload the bot reacts to.
type Update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
}

// ParseUpdate reads a webhook body and extracts the inbound message, if any.
// Updates without a text message (edits, stickers, joins) report ok=false.
func ParseUpdate(body io.Reader) (chat.Message, bool, error) {
	var update Update
	if err := json.NewDecoder(body).Decode(&update); err != nil {
		return chat.Message{}, false, fmt.Errorf("failed to decode update: %w", err)
	}
	if update.Message == nil || update.Message.Text == "" {
		return chat.Message{}, false, nil
	}
	return chat.Message{
		ChatID: update.Message.Chat.ID,
		Text:   update.Message.Text,
	}, true, nil
}

type replyKeyboardMarkup struct {
	Keyboard        [][]keyboardButton `json:"keyboard"`
	OneTimeKeyboard bool               `json:"one_time_keyboard"`
	ResizeKeyboard  bool               `json:"resize_keyboard"`
}

type keyboardButton struct {
	Text string `json:"text"`
}

type replyKeyboardRemove struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

type sendMessageRequest struct {
	ChatID      int64  `json:"chat_id"`
	Text        string `json:"text"`
	ReplyMarkup any    `json:"reply_markup,omitempty"`
}

// Send implements chat.Sender via the sendMessage method.
func (c *Client) Send(ctx context.Context, chatID int64, reply chat.Reply) error {
	req := sendMessageRequest{ChatID: chatID, Text: reply.Text}
	switch {
	case len(reply.Keyboard) > 0:
		markup := replyKeyboardMarkup{OneTimeKeyboard: true, ResizeKeyboard: true}
		for _, row := range reply.Keyboard {
			buttons := make([]keyboardButton, 0, len(row))
			for _, label := range row {
				buttons = append(buttons, keyboardButton{Text: label})
			}
			markup.Keyboard = append(markup.Keyboard, buttons)
		}
		req.ReplyMarkup = markup
	case reply.RemoveKeyboard:
		req.ReplyMarkup = replyKeyboardRemove{RemoveKeyboard: true}
	}
	return c.call(ctx, "sendMessage", req)
}

type setWebhookRequest struct {
	URL         string `json:"url"`
	SecretToken string `json:"secret_token,omitempty"`
}

// SetWebhook points the bot at the given public webhook URL.
func (c *Client) SetWebhook(ctx context.Context, webhookURL, secretToken string) error {
	return c.call(ctx, "setWebhook", setWebhookRequest{URL: webhookURL, SecretToken: secretToken})
}

func (c *Client) call(ctx context.Context, method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: unexpected status %d", method, resp.StatusCode)
	}
	return nil
}
