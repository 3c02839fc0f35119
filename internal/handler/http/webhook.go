package http

import (
	"log/slog"
	"net/http"

	"github.com/tranvq/shiftlog/internal/domain/chat"
	"github.com/tranvq/shiftlog/internal/handler/http/response"
	"github.com/tranvq/shiftlog/internal/pkg/telegram"
	"github.com/tranvq/shiftlog/internal/service/session"
)

type WebhookHandler interface {
	Receive(w http.ResponseWriter, r *http.Request)
}

type webhookHandlerImpl struct {
	sessions *session.Manager
	sender   chat.Sender
	allowed  map[int64]struct{}
}

// NewWebhookHandler routes inbound Telegram updates into the session
// manager. An empty allow-list accepts every chat.
func NewWebhookHandler(sessions *session.Manager, sender chat.Sender, allowedChatIDs []int64) WebhookHandler {
	allowed := make(map[int64]struct{}, len(allowedChatIDs))
	for _, id := range allowedChatIDs {
		allowed[id] = struct{}{}
	}
	return &webhookHandlerImpl{
		sessions: sessions,
		sender:   sender,
		allowed:  allowed,
	}
}

// Receive implements WebhookHandler. It always answers 200 once the update
// is parsed; reply delivery failures are logged, not surfaced, so Telegram
// does not redeliver a message the state machine already consumed.
func (h *webhookHandlerImpl) Receive(w http.ResponseWriter, r *http.Request) {
	msg, ok, err := telegram.ParseUpdate(r.Body)
	if err != nil {
		slog.Error("failed to parse webhook update", "error", err)
		response.BadRequest(w, "Invalid update payload")
		return
	}
	if !ok {
		response.Success(w, nil)
		return
	}

	if !h.isAllowed(msg.ChatID) {
		slog.Warn("unauthorized chat", "chat_id", msg.ChatID)
		h.reply(r, msg.ChatID, chat.Reply{Text: "Xin lỗi, bot này chỉ dành cho chủ sở hữu."})
		response.Success(w, nil)
		return
	}

	for _, reply := range h.sessions.HandleMessage(r.Context(), msg) {
		h.reply(r, msg.ChatID, reply)
	}
	response.Success(w, nil)
}

func (h *webhookHandlerImpl) isAllowed(chatID int64) bool {
	if len(h.allowed) == 0 {
		return true
	}
	_, ok := h.allowed[chatID]
	return ok
}

func (h *webhookHandlerImpl) reply(r *http.Request, chatID int64, reply chat.Reply) {
	if err := h.sender.Send(r.Context(), chatID, reply); err != nil {
		slog.Error("failed to send reply", "chat_id", chatID, "error", err)
	}
}
