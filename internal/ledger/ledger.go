package ledger

import (
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/PRATHVI9607/PaymentAI/internal/domain"
)

var (
	// ErrAccountNotFound indicates the account id is unknown to the ledger.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds indicates a debit would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSameAccount indicates a transfer where both sides are one account.
	ErrSameAccount = errors.New("transfer endpoints must differ")
)

// account pairs a balance with its own lock. Every check-then-mutate sequence
// against the balance runs with this lock held.
type account struct {
	mu   sync.Mutex
	meta domain.Account
}

// Ledger owns all account balances. Balances are mutated only through the
// atomic operations below; no balance is ever observably negative.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[string]*account
}

// New builds a ledger seeded with the provided accounts. Seed balances with
// invalid precision or negative values are rejected up front.
func New(accounts []domain.Account) (*Ledger, error) {
	l := &Ledger{accounts: make(map[string]*account, len(accounts))}
	for _, acc := range accounts {
		if acc.Balance.IsNegative() || !acc.Balance.Equal(acc.Balance.Round(2)) {
			return nil, domain.ErrInvalidAmount
		}
		if _, exists := l.accounts[acc.ID]; exists {
			return nil, errors.New("duplicate account id: " + acc.ID)
		}
		l.accounts[acc.ID] = &account{meta: acc}
	}
	return l, nil
}

func (l *Ledger) lookup(id string) (*account, error) {
	l.mu.RLock()
	acc, ok := l.accounts[id]
	l.mu.RUnlock()
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc, nil
}

// Balance returns the current balance of an account.
func (l *Ledger) Balance(accountID string) (domain.Money, error) {
	acc, err := l.lookup(accountID)
	if err != nil {
		return decimal.Zero, err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	return acc.meta.Balance, nil
}

// Credit adds amount to an account. It cannot fail on funds, only on an
// unknown account or an invalid amount.
func (l *Ledger) Credit(accountID string, amount domain.Money) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	acc, err := l.lookup(accountID)
	if err != nil {
		return err
	}
	acc.mu.Lock()
	defer acc.mu.Unlock()
	acc.meta.Balance = acc.meta.Balance.Add(amount)
	return nil
}

// Debit subtracts amount from an account if funds suffice. The optional
// settle hook runs while the account lock is still held, after the balance
// has been reduced; if it returns an error the debit is reverted before the
// lock is released, so no intermediate state is ever observable.
func (l *Ledger) Debit(accountID string, amount domain.Money, settle func() error) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	acc, err := l.lookup(accountID)
	if err != nil {
		return err
	}

	acc.mu.Lock()
	defer acc.mu.Unlock()

	if acc.meta.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	acc.meta.Balance = acc.meta.Balance.Sub(amount)

	if settle != nil {
		if err := settle(); err != nil {
			acc.meta.Balance = acc.meta.Balance.Add(amount)
			return err
		}
	}
	return nil
}

// Transfer moves amount from one account to another as a single unit: the
// total across both accounts is invariant and no reader can observe the debit
// without the credit. Both account locks are taken in lexicographic id order
// so opposite-direction transfers cannot deadlock. The settle hook follows
// the same contract as in Debit.
func (l *Ledger) Transfer(fromID, toID string, amount domain.Money, settle func() error) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	if fromID == toID {
		return ErrSameAccount
	}

	from, err := l.lookup(fromID)
	if err != nil {
		return err
	}
	to, err := l.lookup(toID)
	if err != nil {
		return err
	}

	locks := []*account{from, to}
	sort.Slice(locks, func(i, j int) bool { return locks[i].meta.ID < locks[j].meta.ID })
	for _, acc := range locks {
		acc.mu.Lock()
	}
	defer func() {
		for _, acc := range locks {
			acc.mu.Unlock()
		}
	}()

	if from.meta.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	from.meta.Balance = from.meta.Balance.Sub(amount)
	to.meta.Balance = to.meta.Balance.Add(amount)

	if settle != nil {
		if err := settle(); err != nil {
			from.meta.Balance = from.meta.Balance.Add(amount)
			to.meta.Balance = to.meta.Balance.Sub(amount)
			return err
		}
	}
	return nil
}

// Snapshot returns a point-in-time copy of every account with its current
// balance, ordered by account id.
func (l *Ledger) Snapshot() []domain.Account {
	l.mu.RLock()
	ids := make([]string, 0, len(l.accounts))
	for id := range l.accounts {
		ids = append(ids, id)
	}
	l.mu.RUnlock()
	sort.Strings(ids)

	out := make([]domain.Account, 0, len(ids))
	for _, id := range ids {
		acc, err := l.lookup(id)
		if err != nil {
			continue
		}
		acc.mu.Lock()
		out = append(out, acc.meta)
		acc.mu.Unlock()
	}
	return out
}
