package journal

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PRATHVI9607/PaymentAI/internal/domain"
)

// ErrClosed is returned by Append after Close; settlements in flight must
// have their ledger mutation rolled back by the caller.
var ErrClosed = errors.New("journal closed")

// Journal is the append-only log of settled financial events plus the
// per-user activity projection. Entries are never mutated or deleted.
type Journal struct {
	mu           sync.Mutex
	closed       bool
	transactions []domain.Transaction
	activities   map[string][]domain.Activity

	idFn  func() string
	nowFn func() time.Time
}

// New builds an empty journal.
func New() *Journal {
	return &Journal{
		activities: make(map[string][]domain.Activity),
		idFn:       uuid.NewString,
		nowFn:      time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (j *Journal) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		j.nowFn = nowFn
	}
}

// WithIDSource overrides the id generator (used primarily in tests).
func (j *Journal) WithIDSource(idFn func() string) {
	if idFn != nil {
		j.idFn = idFn
	}
}

// Append records a settled transaction, assigning a unique id and timestamp.
// The returned record is the immutable stored form.
func (j *Journal) Append(tx domain.Transaction) (domain.Transaction, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return domain.Transaction{}, ErrClosed
	}

	tx.ID = j.idFn()
	tx.Timestamp = j.nowFn().UTC()
	j.transactions = append(j.transactions, tx)
	return tx, nil
}

// RecordActivity appends one entry to a user's activity feed.
func (j *Journal) RecordActivity(act domain.Activity) domain.Activity {
	j.mu.Lock()
	defer j.mu.Unlock()

	act.ID = j.idFn()
	if act.Timestamp.IsZero() {
		act.Timestamp = j.nowFn().UTC()
	}
	j.activities[act.UserID] = append(j.activities[act.UserID], act)
	return act
}

// ListForUser returns every transaction the user sent or received, in
// chronological ascending order.
func (j *Journal) ListForUser(userID string) []domain.Transaction {
	j.mu.Lock()
	defer j.mu.Unlock()

	var out []domain.Transaction
	for _, tx := range j.transactions {
		if tx.FromUserID == userID || tx.ToUserID == userID {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Timestamp.Before(out[k].Timestamp) })
	return out
}

// ActivitiesForUser returns a user's activity feed, most recent first,
// optionally filtered by activity type.
func (j *Journal) ActivitiesForUser(userID string, activityType domain.ActivityType) []domain.Activity {
	j.mu.Lock()
	defer j.mu.Unlock()

	var out []domain.Activity
	for _, act := range j.activities[userID] {
		if activityType != "" && act.Type != activityType {
			continue
		}
		out = append(out, act)
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Timestamp.After(out[k].Timestamp) })
	return out
}

// Len reports the total number of journaled transactions.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.transactions)
}

// Close stops the journal from accepting further appends. Used on shutdown.
func (j *Journal) Close() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
}
