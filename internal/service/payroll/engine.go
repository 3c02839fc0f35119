// Package payroll computes the pay breakdown for one shift.
package payroll

import (
	"fmt"

	"github.com/tranvq/shiftlog/internal/domain/shift"
)

// Engine turns a completed draft into a computed record. It is pure: the
// only failure mode is a draft referencing an event type outside the
// catalog, which is a configuration error.
type Engine struct {
	catalog      shift.Catalog
	blockMinutes int
	blockPay     int
}

func NewEngine(catalog shift.Catalog, blockMinutes, blockPay int) *Engine {
	return &Engine{
		catalog:      catalog,
		blockMinutes: blockMinutes,
		blockPay:     blockPay,
	}
}

// Compute derives overtime and pay totals from the draft.
//
// The actual end instant is taken on the shift date; when it lands before
// the scheduled start it is rolled forward one calendar day, since shifts
// never run backward. Overtime is rounded up to whole blocks and priced at a
// flat rate per block.
func (e *Engine) Compute(draft shift.Draft) (shift.Record, error) {
	event, ok := e.catalog.ByKey(draft.EventKey)
	if !ok {
		return shift.Record{}, fmt.Errorf("%w: %q", shift.ErrUnknownEventType, draft.EventKey)
	}

	scheduledStart := event.StartTime.On(draft.Date)
	scheduledEnd := event.ScheduledEnd.On(draft.Date)
	actualEnd := draft.ActualEnd.On(draft.Date)
	if actualEnd.Before(scheduledStart) {
		actualEnd = actualEnd.AddDate(0, 0, 1)
	}

	otMinutes := 0
	if overage := actualEnd.Sub(scheduledEnd); overage > 0 {
		minutes := int(overage.Minutes())
		blocks := (minutes + e.blockMinutes - 1) / e.blockMinutes
		otMinutes = blocks * e.blockMinutes
	}

	otPay := 0
	if otMinutes > 0 {
		otPay = (otMinutes / e.blockMinutes) * e.blockPay
	}

	workerPayment := 0
	if draft.PerformedBy == shift.PerformerOutsourced {
		workerPayment = draft.WorkerPayment
	}

	totalPay := event.BasePay + otPay
	return shift.Record{
		Date:          draft.Date,
		Venue:         draft.Venue,
		EventKey:      event.Key,
		EventLabel:    event.Label,
		PerformedBy:   draft.PerformedBy,
		StartTime:     event.StartTime,
		ScheduledEnd:  event.ScheduledEnd,
		ActualEnd:     draft.ActualEnd,
		BasePay:       event.BasePay,
		OTMinutes:     otMinutes,
		OTPay:         otPay,
		TotalPay:      totalPay,
		WorkerPayment: workerPayment,
		NetIncome:     totalPay - workerPayment,
	}, nil
}
