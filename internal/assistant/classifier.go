package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"

	"github.com/PRATHVI9607/PaymentAI/internal/domain"
)

// systemPrompt constrains the model to a single JSON object with the fields
// the executor knows how to validate.
const systemPrompt = `You are a shopping assistant. Parse the user request into a single JSON object with these keys and no other text: action (one of "search", "buy", "transfer", "balance"), item, price_max, price_min, rating_min, prefer_cheap, prefer_expensive, to_phone, amount. Omit keys you cannot fill. Numbers must be JSON numbers, booleans JSON booleans.`

const fallbackReason = "could not understand request"

// Classifier turns free text into a typed intent. The external model is an
// untrusted oracle: every failure mode (transport error, non-JSON reply,
// unknown action, junk field values) resolves to the unrecognized intent,
// never an error. No retries happen at this layer.
type Classifier struct {
	completions CompletionClient
	logger      *slog.Logger
}

// NewClassifier wires the classifier over a completion client.
func NewClassifier(completions CompletionClient, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{completions: completions, logger: logger}
}

// Classify produces the intent for one chat message.
func (c *Classifier) Classify(ctx context.Context, text string) domain.Intent {
	reply, err := c.completions.Complete(ctx, systemPrompt, text)
	if err != nil {
		c.logger.Warn("completion call failed", "error", err)
		return domain.Unrecognized(fallbackReason)
	}
	return parseCommand(reply)
}

// parseCommand decodes the model reply. Fields with unexpected types are
// treated as absent rather than trusted; the executor re-validates anything
// that survives.
func parseCommand(reply string) domain.Intent {
	var fields map[string]any
	if err := json.Unmarshal([]byte(stripFences(reply)), &fields); err != nil {
		return domain.Unrecognized(fallbackReason)
	}

	action, ok := fields["action"].(string)
	if !ok {
		return domain.Unrecognized(fallbackReason)
	}

	switch domain.IntentAction(strings.ToLower(strings.TrimSpace(action))) {
	case domain.ActionBalance:
		return domain.Intent{Action: domain.ActionBalance}

	case domain.ActionSearch:
		intent := domain.Intent{
			Action:    domain.ActionSearch,
			Item:      stringField(fields, "item"),
			PriceMin:  moneyField(fields, "price_min"),
			PriceMax:  moneyField(fields, "price_max"),
			RatingMin: numberField(fields, "rating_min"),
		}
		if boolField(fields, "prefer_cheap") {
			intent.Sort = domain.SortCheapest
		} else if boolField(fields, "prefer_expensive") {
			intent.Sort = domain.SortExpensive
		}
		return intent

	case domain.ActionBuy:
		item := stringField(fields, "item")
		if item == "" {
			return domain.Unrecognized("buy request missing an item")
		}
		return domain.Intent{Action: domain.ActionBuy, Item: item}

	case domain.ActionTransfer:
		toPhone := stringField(fields, "to_phone")
		amount := moneyField(fields, "amount")
		if toPhone == "" || amount == nil {
			return domain.Unrecognized("transfer request missing recipient or amount")
		}
		return domain.Intent{Action: domain.ActionTransfer, ToPhone: toPhone, Amount: amount}
	}

	return domain.Unrecognized(fallbackReason)
}

// stripFences removes a surrounding markdown code fence, which chat models
// add around JSON despite instructions.
func stripFences(reply string) string {
	s := strings.TrimSpace(reply)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// numberField accepts only a finite, non-negative JSON number. Strings,
// negatives and non-finite values come back as absent.
func numberField(fields map[string]any, key string) *float64 {
	v, ok := fields[key].(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

func moneyField(fields map[string]any, key string) *domain.Money {
	v := numberField(fields, key)
	if v == nil {
		return nil
	}
	m, err := domain.NewMoney(*v)
	if err != nil {
		return nil
	}
	return &m
}

func boolField(fields map[string]any, key string) bool {
	v, ok := fields[key].(bool)
	return ok && v
}
