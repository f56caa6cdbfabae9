package models

// HistoryItem pairs a submitted video URL with its summary. Timestamp is the
// ISO-8601 string stored by the backend; it is not parsed on receipt.
type HistoryItem struct {
	URL       string `json:"url"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
}

// Key identifies the item in rendered lists. URLs are not unique: the same
// video submitted twice yields two items with the same key.
func (h HistoryItem) Key() string {
	return h.URL
}
