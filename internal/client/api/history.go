package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ytsummarizer/internal/client/models"
	"github.com/tidwall/gjson"
)

// historyOffset is the fixed offset (UTC+05:30) of the wall clock the backend
// expects in history timestamps.
const historyOffset = 5*time.Hour + 30*time.Minute

type saveHistoryRequest struct {
	Object historyObject `json:"object"`
}

type historyObject struct {
	Summary   string `json:"summary"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id"`
}

// HistoryTimestamp formats t the way stored history entries carry it:
// UTC+05:30 wall clock with millisecond precision, followed by "000" and no
// zone designator.
func HistoryTimestamp(t time.Time) string {
	return t.UTC().Add(historyOffset).Format("2006-01-02T15:04:05.000") + "000"
}

func decodeHistory(raw []byte) ([]models.HistoryItem, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("history payload is not JSON")
	}

	doc := gjson.ParseBytes(raw)
	if doc.IsObject() {
		doc = doc.Get("summaries")
	}
	if !doc.IsArray() {
		return []models.HistoryItem{}, nil
	}

	items := make([]models.HistoryItem, 0)
	if err := json.Unmarshal([]byte(doc.Raw), &items); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return items, nil
}
