package model

// Item is the domain model for a todo entry.
// ID is assigned by the store and never reused.
type Item struct {
	ID   int    `json:"id" toml:"id"`
	Text string `json:"text" toml:"text"`
	Done bool   `json:"done" toml:"done"`
}

// Counts returns how many items are done and how many are still active.
func Counts(items []Item) (done, active int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			active++
		}
	}
	return
}

// Clone returns a copy of items that shares no backing array with the input.
func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
