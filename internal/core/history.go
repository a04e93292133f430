package core

// History keeps chat records per room key for replay to late joiners.
// Records outlive room membership and are never trimmed.
type History struct {
	records map[string][]ChatRecord
}

// NewHistory constructs an empty history store.
func NewHistory() *History {
	return &History{records: make(map[string][]ChatRecord)}
}

// Append adds rec to the end of the room's history.
func (h *History) Append(room string, rec ChatRecord) {
	h.records[room] = append(h.records[room], rec)
}

// Records returns a copy of the room's history in arrival order.
func (h *History) Records(room string) []ChatRecord {
	recs := h.records[room]
	if len(recs) == 0 {
		return nil
	}
	out := make([]ChatRecord, len(recs))
	copy(out, recs)
	return out
}

// Len returns the number of records stored for room.
func (h *History) Len(room string) int {
	return len(h.records[room])
}
