package domain

// IntentAction enumerates the commands the assistant understands.
type IntentAction string

const (
	ActionBalance      IntentAction = "balance"
	ActionSearch       IntentAction = "search"
	ActionBuy          IntentAction = "buy"
	ActionTransfer     IntentAction = "transfer"
	ActionUnrecognized IntentAction = "unrecognized"
)

// SortOrder controls how search results are ordered.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortCheapest
	SortExpensive
)

// Intent is the typed result of classifying free text. It is produced only by
// the intent classifier; optional numeric fields are nil when the model did
// not supply a usable value. The executor re-validates every field against
// ledger/catalog state before acting on it.
type Intent struct {
	Action IntentAction

	// Search / Buy fields.
	Item      string
	PriceMin  *Money
	PriceMax  *Money
	RatingMin *float64
	Sort      SortOrder

	// Transfer fields.
	ToPhone string
	Amount  *Money

	// Reason carries diagnostics for ActionUnrecognized.
	Reason string
}

// Unrecognized builds the terminal fallback intent.
func Unrecognized(reason string) Intent {
	return Intent{Action: ActionUnrecognized, Reason: reason}
}
