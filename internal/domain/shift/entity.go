package shift

import (
	"fmt"
	"strconv"
	"time"
)

// Columns is the CSV column contract. Downstream consumers (the public
// dashboard exports) depend on these exact names and this exact order.
var Columns = []string{
	"date",
	"venue",
	"event_type",
	"performed_by",
	"start_time",
	"scheduled_end_time",
	"actual_end_time",
	"base_pay",
	"ot_minutes",
	"ot_pay",
	"total_pay",
	"worker_payment",
	"net_income",
}

// Row is one persisted CSV row, keyed by column name.
type Row = map[string]string

type Performer string

const (
	PerformerSelf       Performer = "self"
	PerformerOutsourced Performer = "outsourced"
)

// Display returns the localized value stored in the performed_by column.
func (p Performer) Display() string {
	if p == PerformerOutsourced {
		return "Thuê ngoài"
	}
	return "Tự làm"
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On combines the clock time with a calendar date into an absolute instant.
func (c Clock) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// Draft is the session-scoped, partially filled user input. Fields are set
// incrementally as the dialogue progresses; Compute turns it into a Record.
type Draft struct {
	Date          time.Time
	Venue         string
	EventKey      string
	PerformedBy   Performer
	ActualEnd     Clock
	WorkerPayment int
}

// Record is a fully computed shift, ready to be persisted.
type Record struct {
	Date          time.Time
	Venue         string
	EventKey      string
	EventLabel    string
	PerformedBy   Performer
	StartTime     Clock
	ScheduledEnd  Clock
	ActualEnd     Clock
	BasePay       int
	OTMinutes     int
	OTPay         int
	TotalPay      int
	WorkerPayment int
	NetIncome     int
}

// Row serializes the record into the persisted column set.
func (r Record) Row() Row {
	return Row{
		"date":               r.Date.Format("2006-01-02"),
		"venue":              r.Venue,
		"event_type":         r.EventLabel,
		"performed_by":       r.PerformedBy.Display(),
		"start_time":         r.StartTime.String(),
		"scheduled_end_time": r.ScheduledEnd.String(),
		"actual_end_time":    r.ActualEnd.String(),
		"base_pay":           strconv.Itoa(r.BasePay),
		"ot_minutes":         strconv.Itoa(r.OTMinutes),
		"ot_pay":             strconv.Itoa(r.OTPay),
		"total_pay":          strconv.Itoa(r.TotalPay),
		"worker_payment":     strconv.Itoa(r.WorkerPayment),
		"net_income":         strconv.Itoa(r.NetIncome),
	}
}

// DraftFromRow parses a persisted row back into an editable draft. It fails
// with ErrMalformedRow when the stored date/time/amount values cannot be
// parsed, or when the stored event type is no longer in the catalog.
func DraftFromRow(row Row, catalog Catalog) (Draft, error) {
	date, err := time.Parse("2006-01-02", row["date"])
	if err != nil {
		return Draft{}, fmt.Errorf("%w: invalid date %q", ErrMalformedRow, row["date"])
	}

	event, ok := catalog.ByLabel(row["event_type"])
	if !ok {
		return Draft{}, fmt.Errorf("%w: unknown event type %q", ErrMalformedRow, row["event_type"])
	}

	actualEnd, err := parseClock(row["actual_end_time"])
	if err != nil {
		return Draft{}, fmt.Errorf("%w: invalid actual_end_time %q", ErrMalformedRow, row["actual_end_time"])
	}

	performer := PerformerSelf
	if row["performed_by"] == PerformerOutsourced.Display() {
		performer = PerformerOutsourced
	}

	workerPayment := 0
	if raw := row["worker_payment"]; raw != "" {
		workerPayment, err = strconv.Atoi(raw)
		if err != nil {
			return Draft{}, fmt.Errorf("%w: invalid worker_payment %q", ErrMalformedRow, raw)
		}
	}

	return Draft{
		Date:          date,
		Venue:         row["venue"],
		EventKey:      event.Key,
		PerformedBy:   performer,
		ActualEnd:     actualEnd,
		WorkerPayment: workerPayment,
	}, nil
}

func parseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, err
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}
