package domain

// User is a registered account holder. Phone is the login credential and the
// transfer recipient key; it must be unique across users.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	AccountID    string
}

// Account holds the funds of exactly one user. The live balance is owned by
// the ledger; Balance here carries the seeded opening value or a snapshot
// taken under the ledger lock.
type Account struct {
	ID       string
	UserID   string
	UserName string
	Bank     string
	Balance  Money
}
