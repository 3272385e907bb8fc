package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PRATHVI9607/PaymentAI/internal/agent"
	"github.com/PRATHVI9607/PaymentAI/internal/catalog"
	"github.com/PRATHVI9607/PaymentAI/internal/domain"
	"github.com/PRATHVI9607/PaymentAI/internal/identity"
	"github.com/PRATHVI9607/PaymentAI/internal/journal"
	"github.com/PRATHVI9607/PaymentAI/internal/ledger"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger   *slog.Logger
	identity *identity.Service
	executor *agent.Executor
	ledger   *ledger.Ledger
	catalog  *catalog.Catalog
	journal  *journal.Journal
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, ids *identity.Service, exec *agent.Executor, led *ledger.Ledger, cat *catalog.Catalog, jnl *journal.Journal) *APIHandlers {
	return &APIHandlers{
		logger:   logger,
		identity: ids,
		executor: exec,
		ledger:   led,
		catalog:  cat,
		journal:  jnl,
	}
}

// --- Request & Response DTOs ---

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Balance float64 `json:"balance"`
}

type agentRequest struct {
	Message string `json:"message"`
}

type agentResponse struct {
	OK     bool           `json:"ok"`
	Reply  string         `json:"reply,omitempty"`
	Reason string         `json:"reason,omitempty"`
	Order  *orderResponse `json:"order,omitempty"`
}

type orderResponse struct {
	ID    string  `json:"id"`
	Item  string  `json:"item"`
	Price float64 `json:"price"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Store       string  `json:"store"`
	Description string  `json:"description"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

type transactionResponse struct {
	ID        string  `json:"id"`
	From      string  `json:"from"`
	To        string  `json:"to,omitempty"`
	FromUser  string  `json:"from_user"`
	ToUser    string  `json:"to_user,omitempty"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Item      string  `json:"item,omitempty"`
	Timestamp string  `json:"timestamp"`
}

type activityResponse struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount,omitempty"`
	Item          string  `json:"item,omitempty"`
	Counterparty  string  `json:"counterparty,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Timestamp     string  `json:"timestamp"`
}

type accountResponse struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	UserName string  `json:"user_name"`
	Bank     string  `json:"bank"`
	Balance  float64 `json:"balance"`
}

type bankResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Accounts     []accountResponse `json:"accounts"`
	TotalBalance float64           `json:"total_balance"`
}

// --- Handlers ---

func (h *APIHandlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var payload loginRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.identity.Login(payload.Phone, payload.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.journal.RecordActivity(domain.Activity{
		UserID: user.ID,
		Type:   domain.ActivityLogin,
	})
	h.logger.Info("user logged in", "user_id", user.ID)

	respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  h.toUserResponse(user),
	})
}

func (h *APIHandlers) handleAgent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	user, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var payload agentRequest
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	outcome, err := h.executor.Handle(r.Context(), user, payload.Message)
	if err != nil {
		h.logger.Error("agent request failed", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "agent request failed")
		return
	}

	resp := agentResponse{OK: outcome.OK, Reply: outcome.Reply, Reason: outcome.Reason}
	if outcome.Order != nil {
		resp.Order = &orderResponse{
			ID:    outcome.Order.ID,
			Item:  outcome.Order.Item,
			Price: outcome.Order.Price.InexactFloat64(),
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if _, ok := h.authenticate(w, r); !ok {
		return
	}

	products := h.catalog.List()
	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, productResponse{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price.InexactFloat64(),
			Rating:      p.Rating,
			Store:       p.Store,
			Description: p.Description,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if _, ok := h.authenticate(w, r); !ok {
		return
	}

	userID := pathParam(r, "/users/")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	user, ok := h.identity.ByID(userID)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, h.toUserResponse(user))
}

func (h *APIHandlers) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if _, ok := h.authenticate(w, r); !ok {
		return
	}

	userID := pathParam(r, "/balances/")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	user, ok := h.identity.ByID(userID)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	balance, err := h.ledger.Balance(user.AccountID)
	if err != nil {
		h.logger.Error("balance lookup failed", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "failed to fetch balance")
		return
	}
	respondJSON(w, http.StatusOK, balanceResponse{Balance: balance.InexactFloat64()})
}

func (h *APIHandlers) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if _, ok := h.authenticate(w, r); !ok {
		return
	}

	userID := pathParam(r, "/transactions/")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	txs := h.journal.ListForUser(userID)
	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		item := transactionResponse{
			ID:        tx.ID,
			From:      tx.FromUserID,
			To:        tx.ToUserID,
			FromUser:  h.userName(tx.FromUserID),
			ToUser:    h.userName(tx.ToUserID),
			Type:      string(tx.Type),
			Amount:    tx.Amount.InexactFloat64(),
			Item:      tx.Item,
			Timestamp: formatTime(tx.Timestamp),
		}
		resp = append(resp, item)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if _, ok := h.authenticate(w, r); !ok {
		return
	}

	userID := pathParam(r, "/activities/")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	activityType := domain.ActivityType(r.URL.Query().Get("type"))
	activities := h.journal.ActivitiesForUser(userID, activityType)
	resp := make([]activityResponse, 0, len(activities))
	for _, act := range activities {
		resp = append(resp, activityResponse{
			ID:            act.ID,
			Type:          string(act.Type),
			Amount:        act.Amount.InexactFloat64(),
			Item:          act.Item,
			Counterparty:  act.Counterparty,
			TransactionID: act.TransactionID,
			Timestamp:     formatTime(act.Timestamp),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handleBanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if _, ok := h.authenticate(w, r); !ok {
		return
	}

	grouped := make(map[string]*bankResponse)
	var order []string
	for _, acc := range h.ledger.Snapshot() {
		bank, ok := grouped[acc.Bank]
		if !ok {
			bank = &bankResponse{ID: acc.Bank, Name: acc.Bank}
			grouped[acc.Bank] = bank
			order = append(order, acc.Bank)
		}
		bank.Accounts = append(bank.Accounts, accountResponse{
			ID:       acc.ID,
			UserID:   acc.UserID,
			UserName: acc.UserName,
			Bank:     acc.Bank,
			Balance:  acc.Balance.InexactFloat64(),
		})
		bank.TotalBalance += acc.Balance.InexactFloat64()
	}

	resp := make([]bankResponse, 0, len(order))
	for _, name := range order {
		resp = append(resp, *grouped[name])
	}
	respondJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

// authenticate resolves the bearer token to the acting user, writing a 401
// response on failure.
func (h *APIHandlers) authenticate(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		writeError(w, http.StatusUnauthorized, "missing or invalid authorization header")
		return domain.User{}, false
	}

	user, err := h.identity.Authenticate(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return domain.User{}, false
	}
	return user, true
}

func (h *APIHandlers) toUserResponse(user domain.User) userResponse {
	balance, err := h.ledger.Balance(user.AccountID)
	if err != nil {
		h.logger.Warn("balance lookup failed for user response", "error", err, "user_id", user.ID)
	}
	return userResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Balance: balance.InexactFloat64(),
	}
}

func (h *APIHandlers) userName(userID string) string {
	if userID == "" {
		return ""
	}
	if user, ok := h.identity.ByID(userID); ok {
		return user.Name
	}
	return ""
}

func pathParam(r *http.Request, prefix string) string {
	return strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
