// Package session drives the per-chat data-entry dialogue. Each chat owns at
// most one Session; a session progresses one inbound message at a time, so
// state transitions never race within a chat.
package session

import (
	"context"
	"sync"

	"github.com/tranvq/shiftlog/internal/domain/chat"
	"github.com/tranvq/shiftlog/internal/domain/shift"
	"github.com/tranvq/shiftlog/internal/service/payroll"
)

type state int

const (
	stateIdle state = iota

	// Entry flow
	stateCollectDate
	stateCollectVenue
	stateCollectEventType
	stateCollectPerformer
	stateCollectWorkerPayment
	stateCollectActualEnd
	statePostSaveChoice

	// Browse/manage flow
	stateSelectEntry
	stateDetail
	stateEditChooseField
	stateEditCollectValue
	stateEditConfirm
	stateDeleteConfirmFirst
	stateDeleteConfirmFinal
)

type editField int

const (
	fieldDate editField = iota
	fieldVenue
	fieldEventType
	fieldPerformer
	fieldActualEnd
	fieldWorkerPayment
)

// entry pairs a listed row's fingerprint with its position hint at listing
// time. The hint is a fast path only; matching falls back to a newest-first
// scan when concurrent writes shifted the indices.
type entry struct {
	row   shift.Row
	index int
}

type session struct {
	state state

	// Entry flow
	draft     shift.Draft
	lastSaved shift.Row

	// Browse/manage flow
	entries   []entry
	selected  int
	editDraft shift.Draft
	editing   editField
	pending   shift.Record
}

// Manager owns all live sessions and routes inbound messages through the
// state machine.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*session

	engine   *payroll.Engine
	records  shift.RecordRepository
	catalog  shift.Catalog
	pageSize int
	tiers    []int
}

// OutsourcedPayTiers are the supported flat payments for an outsourced
// performer, in VND.
var OutsourcedPayTiers = []int{300_000, 500_000, 600_000}

func NewManager(engine *payroll.Engine, records shift.RecordRepository, catalog shift.Catalog, pageSize int) *Manager {
	return &Manager{
		sessions: make(map[int64]*session),
		engine:   engine,
		records:  records,
		catalog:  catalog,
		pageSize: pageSize,
		tiers:    OutsourcedPayTiers,
	}
}

// HandleMessage advances the chat's session with one inbound message and
// returns the replies to deliver.
func (m *Manager) HandleMessage(ctx context.Context, msg chat.Message) []chat.Reply {
	m.mu.Lock()
	defer m.mu.Unlock()

	if msg.Text == cmdCancel || msg.Text == labelExit {
		delete(m.sessions, msg.ChatID)
		return replies(chat.Reply{Text: msgCancelled, RemoveKeyboard: true})
	}

	switch msg.Text {
	case cmdStart:
		return replies(chat.Reply{Text: greeting(m.catalog), RemoveKeyboard: true})
	case cmdNewShift:
		s := &session{state: stateCollectDate}
		m.sessions[msg.ChatID] = s
		return replies(chat.Reply{Text: msgAskDate, RemoveKeyboard: true})
	case cmdShifts:
		s := &session{}
		m.sessions[msg.ChatID] = s
		return m.listRecent(ctx, msg.ChatID, s, nil)
	}

	s, ok := m.sessions[msg.ChatID]
	if !ok {
		return replies(chat.Reply{Text: msgIdleHint})
	}

	switch s.state {
	case stateCollectDate, stateCollectVenue, stateCollectEventType,
		stateCollectPerformer, stateCollectWorkerPayment, stateCollectActualEnd,
		statePostSaveChoice:
		return m.handleEntryFlow(ctx, msg.ChatID, s, msg.Text)
	case stateSelectEntry, stateDetail, stateEditChooseField,
		stateEditCollectValue, stateEditConfirm, stateDeleteConfirmFirst,
		stateDeleteConfirmFinal:
		return m.handleManageFlow(ctx, msg.ChatID, s, msg.Text)
	default:
		delete(m.sessions, msg.ChatID)
		return replies(chat.Reply{Text: msgIdleHint})
	}
}

// end discards the chat's session.
func (m *Manager) end(chatID int64) {
	delete(m.sessions, chatID)
}

func replies(rs ...chat.Reply) []chat.Reply {
	return rs
}
