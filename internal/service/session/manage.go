package session

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/tranvq/shiftlog/internal/domain/chat"
	"github.com/tranvq/shiftlog/internal/domain/shift"
	"github.com/tranvq/shiftlog/internal/pkg/validator"
)

// listRecent refreshes the materialized entry list from the store and shows
// it, newest first. A fetch failure terminates the flow.
func (m *Manager) listRecent(ctx context.Context, chatID int64, s *session, prefix []chat.Reply) []chat.Reply {
	_, rows, err := m.records.ReadAll(ctx)
	if err != nil {
		slog.Error("failed to read shifts", "error", err)
		m.end(chatID)
		return append(prefix, chat.Reply{Text: msgRemoteError, RemoveKeyboard: true})
	}
	if len(rows) == 0 {
		m.end(chatID)
		return append(prefix, chat.Reply{Text: msgEmptyList, RemoveKeyboard: true})
	}

	start := len(rows) - m.pageSize
	if start < 0 {
		start = 0
	}
	s.entries = s.entries[:0]
	for i := len(rows) - 1; i >= start; i-- {
		s.entries = append(s.entries, entry{row: rows[i], index: i})
	}
	s.state = stateSelectEntry
	return append(prefix, chat.Reply{
		Text:     listing(s.entries),
		Keyboard: selectionKeyboard(len(s.entries)),
	})
}

func (m *Manager) handleManageFlow(ctx context.Context, chatID int64, s *session, text string) []chat.Reply {
	switch s.state {
	case stateSelectEntry:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 || n > len(s.entries) {
			return replies(chat.Reply{Text: msgBadSelection, Keyboard: selectionKeyboard(len(s.entries))})
		}
		s.selected = n - 1
		return m.showDetail(s)

	case stateDetail:
		switch text {
		case labelEdit:
			draft, err := shift.DraftFromRow(s.entries[s.selected].row, m.catalog)
			if err != nil {
				slog.Warn("refusing to edit malformed row", "error", err)
				return m.listRecent(ctx, chatID, s, replies(chat.Reply{Text: msgCannotEdit}))
			}
			s.editDraft = draft
			s.state = stateEditChooseField
			return replies(chat.Reply{Text: "Sửa trường nào?", Keyboard: fieldKeyboard()})
		case labelDelete:
			s.state = stateDeleteConfirmFirst
			return replies(chat.Reply{
				Text:     msgDeleteConfirmFirst + "\n" + listingLine(s.selected, s.entries[s.selected].row),
				Keyboard: [][]string{{labelDeleteStep1, labelKeep}},
			})
		case labelBack:
			return m.listRecent(ctx, chatID, s, nil)
		default:
			return m.showDetail(s)
		}

	case stateEditChooseField:
		return m.chooseField(s, text)

	case stateEditCollectValue:
		return m.collectFieldValue(chatID, s, text)

	case stateEditConfirm:
		switch text {
		case labelConfirm:
			e := s.entries[s.selected]
			hint := e.index
			found, err := m.records.Update(ctx, e.row, s.pending.Row(), &hint)
			if err != nil {
				slog.Error("failed to update shift", "error", err)
				m.end(chatID)
				return replies(chat.Reply{Text: msgRemoteError, RemoveKeyboard: true})
			}
			if !found {
				m.end(chatID)
				return replies(chat.Reply{Text: msgNotFound, RemoveKeyboard: true})
			}
			return m.listRecent(ctx, chatID, s, replies(chat.Reply{Text: msgUpdated}))
		case labelDecline:
			s.pending = shift.Record{}
			return m.showDetail(s)
		default:
			return replies(chat.Reply{
				Text:     editDiff(s.entries[s.selected].row, s.pending),
				Keyboard: [][]string{{labelConfirm, labelDecline}},
			})
		}

	case stateDeleteConfirmFirst:
		if text == labelDeleteStep1 {
			s.state = stateDeleteConfirmFinal
			return replies(chat.Reply{
				Text:     msgDeleteConfirmFinal,
				Keyboard: [][]string{{labelDeleteForever, labelKeep}},
			})
		}
		return m.showDetail(s)

	case stateDeleteConfirmFinal:
		if text != labelDeleteForever {
			return m.showDetail(s)
		}
		e := s.entries[s.selected]
		hint := e.index
		found, err := m.records.Delete(ctx, e.row, &hint)
		if err != nil {
			slog.Error("failed to delete shift", "error", err)
			m.end(chatID)
			return replies(chat.Reply{Text: msgRemoteError, RemoveKeyboard: true})
		}
		if !found {
			m.end(chatID)
			return replies(chat.Reply{Text: msgNotFound, RemoveKeyboard: true})
		}
		return m.listRecent(ctx, chatID, s, replies(chat.Reply{Text: msgDeleted}))
	}
	return replies(chat.Reply{Text: msgIdleHint})
}

func (m *Manager) showDetail(s *session) []chat.Reply {
	s.state = stateDetail
	return replies(chat.Reply{
		Text:     detail(s.entries[s.selected].row),
		Keyboard: [][]string{{labelEdit, labelDelete}, {labelBack, labelExit}},
	})
}

func fieldKeyboard() [][]string {
	return [][]string{
		{labelFieldDate, labelFieldVenue},
		{labelFieldEvent, labelFieldPerformer},
		{labelFieldActualEnd, labelFieldWorkerPay},
		{labelExit},
	}
}

func (m *Manager) chooseField(s *session, text string) []chat.Reply {
	prompts := map[string]struct {
		field editField
		reply chat.Reply
	}{
		labelFieldDate:      {fieldDate, chat.Reply{Text: msgAskDate, RemoveKeyboard: true}},
		labelFieldVenue:     {fieldVenue, chat.Reply{Text: msgAskVenue, RemoveKeyboard: true}},
		labelFieldEvent:     {fieldEventType, chat.Reply{Text: msgAskEvent, Keyboard: eventKeyboard(m.catalog)}},
		labelFieldPerformer: {fieldPerformer, chat.Reply{Text: msgAskPerformer, Keyboard: [][]string{{labelPerformerSelf, labelPerformerOutsourced}}}},
		labelFieldActualEnd: {fieldActualEnd, chat.Reply{Text: msgAskActualEnd, RemoveKeyboard: true}},
		labelFieldWorkerPay: {fieldWorkerPayment, chat.Reply{Text: msgAskWorkerPay, Keyboard: tierKeyboard(m.tiers)}},
	}
	p, ok := prompts[text]
	if !ok {
		return replies(chat.Reply{Text: "Sửa trường nào?", Keyboard: fieldKeyboard()})
	}
	s.editing = p.field
	s.state = stateEditCollectValue
	return replies(p.reply)
}

// collectFieldValue applies one edited value to the draft, recomputes the
// record and asks for confirmation against a before/after view.
func (m *Manager) collectFieldValue(chatID int64, s *session, text string) []chat.Reply {
	switch s.editing {
	case fieldDate:
		date, ok := validator.ParseDate(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadDate})
		}
		s.editDraft.Date = date
	case fieldVenue:
		if validator.IsEmpty(text) {
			return replies(chat.Reply{Text: msgBadVenue})
		}
		s.editDraft.Venue = text
	case fieldEventType:
		event, ok := m.catalog.ByLabel(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadEvent, Keyboard: eventKeyboard(m.catalog)})
		}
		s.editDraft.EventKey = event.Key
	case fieldPerformer:
		switch text {
		case labelPerformerSelf:
			s.editDraft.PerformedBy = shift.PerformerSelf
		case labelPerformerOutsourced:
			s.editDraft.PerformedBy = shift.PerformerOutsourced
		default:
			return replies(chat.Reply{Text: msgBadPerformer})
		}
	case fieldActualEnd:
		end, ok := validator.ParseClock(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadActualEnd})
		}
		s.editDraft.ActualEnd = end
	case fieldWorkerPayment:
		amount, ok := m.parseTier(text)
		if !ok {
			return replies(chat.Reply{Text: msgBadWorkerPay, Keyboard: tierKeyboard(m.tiers)})
		}
		s.editDraft.WorkerPayment = amount
	}

	record, err := m.engine.Compute(s.editDraft)
	if err != nil {
		slog.Error("failed to recompute shift", "error", err)
		m.end(chatID)
		return replies(chat.Reply{Text: msgConfigError, RemoveKeyboard: true})
	}
	s.pending = record
	s.state = stateEditConfirm
	return replies(chat.Reply{
		Text:     editDiff(s.entries[s.selected].row, s.pending),
		Keyboard: [][]string{{labelConfirm, labelDecline}},
	})
}
