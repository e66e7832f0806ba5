package session

import (
	"context"

	"github.com/abhisek/wordiz/internal/store"
)

// HistoryRecorder stores finished sessions.
type HistoryRecorder interface {
	RecordSession(ctx context.Context, s Summary) error
}

// StoreHistory records sessions as store session events.
type StoreHistory struct {
	repo store.EventRepo
}

// NewStoreHistory returns a recorder writing to repo.
func NewStoreHistory(repo store.EventRepo) *StoreHistory {
	return &StoreHistory{repo: repo}
}

func (h *StoreHistory) RecordSession(ctx context.Context, s Summary) error {
	return h.repo.AppendSession(ctx, store.SessionEventData{
		SessionID:    s.SessionID,
		Kind:         string(s.Kind),
		Total:        s.Total,
		Correct:      s.Correct,
		Wrong:        s.Wrong,
		DurationSecs: s.ElapsedSeconds(),
	})
}
