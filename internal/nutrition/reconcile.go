package nutrition

// FoodLog is the ordered set of committed food records. Records are unique by
// FdcID and keep the order they were first committed in.
type FoodLog struct {
	items []FoodRecord
	index map[FoodID]int
}

// NewFoodLog builds a log from records, dropping later duplicates.
func NewFoodLog(records ...FoodRecord) FoodLog {
	return FoodLog{}.merge(records)
}

// Items returns a copy of the records in insertion order.
func (l FoodLog) Items() []FoodRecord {
	out := make([]FoodRecord, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of records in the log.
func (l FoodLog) Len() int {
	return len(l.items)
}

// Contains reports whether a record with id is in the log.
func (l FoodLog) Contains(id FoodID) bool {
	_, ok := l.index[id]
	return ok
}

func (l FoodLog) merge(records []FoodRecord) FoodLog {
	next := FoodLog{
		items: make([]FoodRecord, len(l.items), len(l.items)+len(records)),
		index: make(map[FoodID]int, len(l.items)+len(records)),
	}
	copy(next.items, l.items)
	for i, r := range next.items {
		next.index[r.FdcID] = i
	}
	for _, r := range records {
		if _, ok := next.index[r.FdcID]; ok {
			continue
		}
		next.index[r.FdcID] = len(next.items)
		next.items = append(next.items, r)
	}
	return next
}

// MergeSelections returns the union of log and selected. Records whose FdcID
// is already logged are skipped, so merging the same selection twice gives
// the same log as merging it once. The input log is not modified.
func MergeSelections(log FoodLog, selected []FoodRecord) FoodLog {
	return log.merge(selected)
}

// ToggleSelection flips item in the staging set. A staged item is removed
// unless it is already committed to log; committed items stay staged until
// they are removed from the log itself. Anything else is appended.
func ToggleSelection(selected []FoodRecord, log FoodLog, item FoodRecord) []FoodRecord {
	pos := -1
	for i, r := range selected {
		if r.FdcID == item.FdcID {
			pos = i
			break
		}
	}

	if pos >= 0 && log.Contains(item.FdcID) {
		return selected
	}

	out := make([]FoodRecord, 0, len(selected)+1)
	if pos >= 0 {
		out = append(out, selected[:pos]...)
		return append(out, selected[pos+1:]...)
	}
	out = append(out, selected...)
	return append(out, item)
}

// RemoveFromLog returns log without the record identified by id.
func RemoveFromLog(log FoodLog, id FoodID) FoodLog {
	if !log.Contains(id) {
		return log
	}
	kept := make([]FoodRecord, 0, log.Len()-1)
	for _, r := range log.items {
		if r.FdcID != id {
			kept = append(kept, r)
		}
	}
	return NewFoodLog(kept...)
}
