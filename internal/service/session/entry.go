package session

import (
	"context"
	"log/slog"

	"github.com/tranvq/shiftlog/internal/domain/chat"
	"github.com/tranvq/shiftlog/internal/domain/shift"
	"github.com/tranvq/shiftlog/internal/pkg/validator"
)

// handleEntryFlow advances the create-one-record dialogue. Invalid input
// re-prompts the same state without touching the draft.
func (m *Manager) handleEntryFlow(ctx context.Context, chatID int64, s *session, text string) []chat.Reply {
	switch s.state {
	case stateCollectDate:
		date, ok := validator.ParseDate(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadDate})
		}
		s.draft.Date = date
		s.state = stateCollectVenue
		return replies(chat.Reply{Text: msgAskVenue})

	case stateCollectVenue:
		if validator.IsEmpty(text) {
			return replies(chat.Reply{Text: msgBadVenue})
		}
		s.draft.Venue = text
		s.state = stateCollectEventType
		return replies(chat.Reply{Text: msgAskEvent, Keyboard: eventKeyboard(m.catalog)})

	case stateCollectEventType:
		event, ok := m.catalog.ByLabel(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadEvent, Keyboard: eventKeyboard(m.catalog)})
		}
		s.draft.EventKey = event.Key
		s.state = stateCollectPerformer
		return replies(chat.Reply{
			Text:     msgAskPerformer,
			Keyboard: [][]string{{labelPerformerSelf, labelPerformerOutsourced}},
		})

	case stateCollectPerformer:
		switch text {
		case labelPerformerSelf:
			s.draft.PerformedBy = shift.PerformerSelf
			s.state = stateCollectActualEnd
			return replies(chat.Reply{Text: msgAskActualEnd, RemoveKeyboard: true})
		case labelPerformerOutsourced:
			s.draft.PerformedBy = shift.PerformerOutsourced
			s.state = stateCollectWorkerPayment
			return replies(chat.Reply{Text: msgAskWorkerPay, Keyboard: tierKeyboard(m.tiers)})
		default:
			return replies(chat.Reply{Text: msgBadPerformer})
		}

	case stateCollectWorkerPayment:
		amount, ok := m.parseTier(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadWorkerPay, Keyboard: tierKeyboard(m.tiers)})
		}
		s.draft.WorkerPayment = amount
		s.state = stateCollectActualEnd
		return replies(chat.Reply{Text: msgAskActualEnd, RemoveKeyboard: true})

	case stateCollectActualEnd:
		end, ok := validator.ParseClock(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadActualEnd})
		}
		s.draft.ActualEnd = end
		return m.save(ctx, chatID, s)

	case statePostSaveChoice:
		return m.handlePostSave(ctx, chatID, s, text)
	}
	return replies(chat.Reply{Text: msgIdleHint})
}

// save computes the record and appends it. A store failure terminates the
// flow and discards the draft; nothing partial ever persists.
func (m *Manager) save(ctx context.Context, chatID int64, s *session) []chat.Reply {
	record, err := m.engine.Compute(s.draft)
	if err != nil {
		slog.Error("failed to compute shift", "error", err)
		m.end(chatID)
		return replies(chat.Reply{Text: msgConfigError, RemoveKeyboard: true})
	}

	row := record.Row()
	if err := m.records.Append(ctx, row); err != nil {
		slog.Error("failed to append shift", "error", err)
		m.end(chatID)
		return replies(chat.Reply{Text: msgRemoteError, RemoveKeyboard: true})
	}

	s.lastSaved = row
	s.state = statePostSaveChoice
	return replies(chat.Reply{
		Text:     summary(record),
		Keyboard: [][]string{{labelAnotherEntry}, {labelUndoSave}, {labelDone}},
	})
}

func (m *Manager) handlePostSave(ctx context.Context, chatID int64, s *session, text string) []chat.Reply {
	switch text {
	case labelAnotherEntry:
		s.draft = shift.Draft{}
		s.state = stateCollectDate
		return replies(chat.Reply{Text: msgAskDate, RemoveKeyboard: true})

	case labelUndoSave:
		found, err := m.records.Delete(ctx, s.lastSaved, nil)
		m.end(chatID)
		if err != nil {
			slog.Error("failed to undo shift save", "error", err)
			return replies(chat.Reply{Text: msgRemoteError, RemoveKeyboard: true})
		}
		if !found {
			return replies(chat.Reply{Text: msgNotFound, RemoveKeyboard: true})
		}
		return replies(chat.Reply{Text: msgUndone, RemoveKeyboard: true})

	case labelDone:
		m.end(chatID)
		return replies(chat.Reply{Text: msgGoodbye, RemoveKeyboard: true})

	default:
		return replies(chat.Reply{
			Text:     msgIdleHint,
			Keyboard: [][]string{{labelAnotherEntry}, {labelUndoSave}, {labelDone}},
		})
	}
}

func (m *Manager) parseTier(text string) (int, bool) {
	amount, ok := validator.ParseAmount(text)
	if !ok {
		return 0, false
	}
	for _, tier := range m.tiers {
		if amount == tier {
			return amount, true
		}
	}
	return 0, false
}
