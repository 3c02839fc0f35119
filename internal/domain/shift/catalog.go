package shift

// EventType describes one entry of the shift catalog: its display label,
// scheduled timing and flat base pay.
type EventType struct {
	Key          string
	Label        string
	StartTime    Clock
	ScheduledEnd Clock
	BasePay      int
}

// Catalog is the ordered set of supported event types. It is passed into the
// payroll engine and the session manager at construction so tests can
// substitute their own catalogs.
type Catalog struct {
	events []EventType
}

func NewCatalog(events ...EventType) Catalog {
	return Catalog{events: events}
}

// DefaultCatalog returns the production shift catalog.
func DefaultCatalog() Catalog {
	return NewCatalog(
		EventType{
			Key:          "dem_nhac",
			Label:        "Đêm nhạc",
			StartTime:    Clock{Hour: 19, Minute: 30},
			ScheduledEnd: Clock{Hour: 23, Minute: 0},
			BasePay:      600_000,
		},
		EventType{
			Key:          "openmic",
			Label:        "Openmic",
			StartTime:    Clock{Hour: 20, Minute: 0},
			ScheduledEnd: Clock{Hour: 22, Minute: 30},
			BasePay:      500_000,
		},
	)
}

func (c Catalog) ByKey(key string) (EventType, bool) {
	for _, e := range c.events {
		if e.Key == key {
			return e, true
		}
	}
	return EventType{}, false
}

func (c Catalog) ByLabel(label string) (EventType, bool) {
	for _, e := range c.events {
		if e.Label == label {
			return e, true
		}
	}
	return EventType{}, false
}

// Labels returns the display labels in catalog order, used to build the
// event-type reply keyboard.
func (c Catalog) Labels() []string {
	labels := make([]string, 0, len(c.events))
	for _, e := range c.events {
		labels = append(labels, e.Label)
	}
	return labels
}
