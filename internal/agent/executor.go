package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PRATHVI9607/PaymentAI/internal/catalog"
	"github.com/PRATHVI9607/PaymentAI/internal/domain"
	"github.com/PRATHVI9607/PaymentAI/internal/ledger"
)

// Ledger is the balance store contract required by the executor.
type Ledger interface {
	Balance(accountID string) (domain.Money, error)
	Debit(accountID string, amount domain.Money, settle func() error) error
	Transfer(fromID, toID string, amount domain.Money, settle func() error) error
}

// Catalog resolves products for search and buy intents.
type Catalog interface {
	Search(f catalog.Filter) []domain.Product
	ResolveByName(query string) (domain.Product, bool)
}

// Journal records settled transactions and activity entries.
type Journal interface {
	Append(tx domain.Transaction) (domain.Transaction, error)
	RecordActivity(act domain.Activity) domain.Activity
}

// Classifier turns free text into a typed intent.
type Classifier interface {
	Classify(ctx context.Context, text string) domain.Intent
}

// UserDirectory resolves transfer recipients.
type UserDirectory interface {
	ByPhone(phone string) (domain.User, bool)
}

// Order summarises a completed purchase for the caller.
type Order struct {
	ID    string
	Item  string
	Price domain.Money
}

// Outcome is the terminal result of handling one chat request. Exactly one
// of Reply or Reason is set, matching OK.
type Outcome struct {
	OK     bool
	Reply  string
	Reason string
	Order  *Order
}

// searchPreviewLimit caps the number of products listed in a search reply.
const searchPreviewLimit = 5

// Executor validates classified intents against ledger, catalog and user
// state and applies settlements atomically. Rejections leave ledger and
// journal untouched; a journal fault rolls the ledger mutation back before
// the request fails.
type Executor struct {
	ledger     Ledger
	catalog    Catalog
	journal    Journal
	classifier Classifier
	users      UserDirectory
	logger     *slog.Logger
}

// NewExecutor wires the settlement engine.
func NewExecutor(led Ledger, cat Catalog, jnl Journal, cls Classifier, users UserDirectory, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		ledger:     led,
		catalog:    cat,
		journal:    jnl,
		classifier: cls,
		users:      users,
		logger:     logger,
	}
}

// Handle classifies one chat message for the acting user and executes the
// resulting intent. The returned error is reserved for internal faults that
// should surface as a server error; every expected outcome, including
// classification failure, is a normal Outcome.
func (e *Executor) Handle(ctx context.Context, user domain.User, message string) (Outcome, error) {
	intent := e.classifier.Classify(ctx, message)
	e.logger.Info("classified chat message", "user_id", user.ID, "action", intent.Action)
	return e.Execute(user, intent)
}

// Execute applies an already-classified intent for the acting user.
func (e *Executor) Execute(user domain.User, intent domain.Intent) (Outcome, error) {
	switch intent.Action {
	case domain.ActionBalance:
		return e.balance(user)
	case domain.ActionSearch:
		return e.search(intent)
	case domain.ActionBuy:
		return e.buy(user, intent)
	case domain.ActionTransfer:
		return e.transfer(user, intent)
	case domain.ActionUnrecognized:
		return reject(intent.Reason), nil
	default:
		return reject("could not understand request"), nil
	}
}

func (e *Executor) balance(user domain.User) (Outcome, error) {
	bal, err := e.ledger.Balance(user.AccountID)
	if err != nil {
		return Outcome{}, fmt.Errorf("balance lookup for account %s: %w", user.AccountID, err)
	}
	return Outcome{OK: true, Reply: fmt.Sprintf("Your current balance is $%s", bal.StringFixed(2))}, nil
}

func (e *Executor) search(intent domain.Intent) (Outcome, error) {
	products := e.catalog.Search(catalog.Filter{
		Item:      intent.Item,
		PriceMin:  intent.PriceMin,
		PriceMax:  intent.PriceMax,
		RatingMin: intent.RatingMin,
		Sort:      intent.Sort,
	})
	if len(products) == 0 {
		return reject("no matching products"), nil
	}

	preview := products
	if len(preview) > searchPreviewLimit {
		preview = preview[:searchPreviewLimit]
	}

	lines := make([]string, 0, len(preview))
	for _, p := range preview {
		lines = append(lines, fmt.Sprintf("%s - $%s (rating %.1f) at %s", p.Name, p.Price.StringFixed(2), p.Rating, p.Store))
	}
	reply := fmt.Sprintf("Found %d products:\n%s", len(products), strings.Join(lines, "\n"))
	return Outcome{OK: true, Reply: reply}, nil
}

func (e *Executor) buy(user domain.User, intent domain.Intent) (Outcome, error) {
	product, ok := e.catalog.ResolveByName(intent.Item)
	if !ok {
		return reject("product not found"), nil
	}

	var tx domain.Transaction
	err := e.ledger.Debit(user.AccountID, product.Price, func() error {
		var appendErr error
		tx, appendErr = e.journal.Append(domain.Transaction{
			FromUserID: user.ID,
			Type:       domain.TransactionPurchase,
			Amount:     product.Price,
			Item:       product.Name,
		})
		if appendErr != nil {
			return appendErr
		}
		e.journal.RecordActivity(domain.Activity{
			UserID:        user.ID,
			Type:          domain.ActivityPurchase,
			Amount:        product.Price,
			Item:          product.Name,
			TransactionID: tx.ID,
			Timestamp:     tx.Timestamp,
		})
		return nil
	})
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return reject("insufficient funds"), nil
	case err != nil:
		e.logger.Error("purchase settlement failed, debit rolled back", "user_id", user.ID, "item", product.Name, "error", err)
		return Outcome{}, fmt.Errorf("purchase settlement: %w", err)
	}

	e.logger.Info("purchase settled", "user_id", user.ID, "item", product.Name, "amount", product.Price.StringFixed(2), "transaction_id", tx.ID)
	return Outcome{
		OK:    true,
		Reply: fmt.Sprintf("Successfully purchased %s for $%s", product.Name, product.Price.StringFixed(2)),
		Order: &Order{ID: tx.ID, Item: product.Name, Price: product.Price},
	}, nil
}

func (e *Executor) transfer(user domain.User, intent domain.Intent) (Outcome, error) {
	recipient, ok := e.users.ByPhone(intent.ToPhone)
	if !ok {
		return reject("recipient not found"), nil
	}

	if intent.Amount == nil || domain.ValidateAmount(*intent.Amount) != nil {
		return reject("invalid amount"), nil
	}
	amount := *intent.Amount

	if recipient.ID == user.ID {
		return reject("cannot transfer to yourself"), nil
	}

	var tx domain.Transaction
	err := e.ledger.Transfer(user.AccountID, recipient.AccountID, amount, func() error {
		var appendErr error
		tx, appendErr = e.journal.Append(domain.Transaction{
			FromUserID: user.ID,
			ToUserID:   recipient.ID,
			Type:       domain.TransactionTransfer,
			Amount:     amount,
		})
		if appendErr != nil {
			return appendErr
		}
		e.journal.RecordActivity(domain.Activity{
			UserID:        user.ID,
			Type:          domain.ActivityTransferSent,
			Amount:        amount,
			Counterparty:  recipient.Name,
			TransactionID: tx.ID,
			Timestamp:     tx.Timestamp,
		})
		e.journal.RecordActivity(domain.Activity{
			UserID:        recipient.ID,
			Type:          domain.ActivityTransferReceived,
			Amount:        amount,
			Counterparty:  user.Name,
			TransactionID: tx.ID,
			Timestamp:     tx.Timestamp,
		})
		return nil
	})
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return reject("insufficient funds"), nil
	case err != nil:
		e.logger.Error("transfer settlement failed, mutation rolled back", "user_id", user.ID, "to_phone", intent.ToPhone, "error", err)
		return Outcome{}, fmt.Errorf("transfer settlement: %w", err)
	}

	e.logger.Info("transfer settled", "from_user_id", user.ID, "to_user_id", recipient.ID, "amount", amount.StringFixed(2), "transaction_id", tx.ID)
	return Outcome{
		OK:    true,
		Reply: fmt.Sprintf("Successfully transferred $%s to %s", amount.StringFixed(2), recipient.Name),
	}, nil
}

func reject(reason string) Outcome {
	if reason == "" {
		reason = "could not understand request"
	}
	return Outcome{OK: false, Reason: reason}
}
