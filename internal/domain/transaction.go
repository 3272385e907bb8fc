package domain

import "time"

// TransactionType distinguishes the two settlement kinds.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionTransfer TransactionType = "transfer"
)

// Transaction is an immutable record of one settled financial event. It is
// appended to the journal exactly once per successful settlement and never
// mutated or deleted afterwards.
type Transaction struct {
	ID         string
	FromUserID string
	ToUserID   string
	Type       TransactionType
	Amount     Money
	Item       string
	Timestamp  time.Time
}

// ActivityType enumerates the per-user activity feed entries.
type ActivityType string

const (
	ActivityLogin            ActivityType = "login"
	ActivityPurchase         ActivityType = "purchase"
	ActivityTransferSent     ActivityType = "transfer_sent"
	ActivityTransferReceived ActivityType = "transfer_received"
)

// Activity is a denormalized per-user view derived from transactions and
// login events. It is a display projection, not a source of truth.
type Activity struct {
	ID            string
	UserID        string
	Type          ActivityType
	Amount        Money
	Item          string
	Counterparty  string
	TransactionID string
	Timestamp     time.Time
}
