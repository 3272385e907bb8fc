package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

// Message is one scripted chat line: who speaks and what they say.
type Message struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Text     string `json:"message"`
}

// LoadScript reads a JSON array of messages from disk.
func LoadScript(path string) ([]Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script %s: %w", path, err)
	}
	defer file.Close()

	var msgs []Message
	if err := json.NewDecoder(file).Decode(&msgs); err != nil {
		return nil, fmt.Errorf("decode script %s: %w", path, err)
	}
	return msgs, nil
}

// TaskError accumulates multiple errors produced during a replay run.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Runner drives a script of chat messages against a running backend through
// a bounded worker pool, logging each user in on first use.
type Runner struct {
	baseURL string
	workers int
	client  *http.Client
	logger  *slog.Logger

	mu     sync.Mutex
	tokens map[string]string
}

// NewRunner creates a Runner targeting the given base URL.
func NewRunner(baseURL string, workers int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		baseURL: baseURL,
		workers: workers,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
		tokens:  make(map[string]string),
	}
}

// Run posts every scripted message, at most `workers` in flight at a time.
func (r *Runner) Run(ctx context.Context, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}

	indexCh := make(chan int)
	errCh := make(chan error, len(msgs))
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				errCh <- r.send(ctx, msgs[idx])
			}
		}()
	}

feed:
	for i := range msgs {
		select {
		case <-ctx.Done():
			break feed
		case indexCh <- i:
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	taskErr := &TaskError{}
	for err := range errCh {
		taskErr.append(err)
	}
	taskErr.append(ctx.Err())
	return taskErr.asError()
}

func (r *Runner) send(ctx context.Context, msg Message) error {
	token, err := r.token(ctx, msg.Phone, msg.Password)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{"message": msg.Text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/agent", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post agent message for %s: %w", msg.Phone, err)
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agent returned status %d for %s", resp.StatusCode, msg.Phone)
	}

	r.logger.Info("agent reply", "phone", msg.Phone, "message", msg.Text, "response", string(bytes.TrimSpace(payload)))
	return nil
}

// token logs the user in on first use and caches the session token.
func (r *Runner) token(ctx context.Context, phone, password string) (string, error) {
	r.mu.Lock()
	token, ok := r.tokens[phone]
	r.mu.Unlock()
	if ok {
		return token, nil
	}

	body, err := json.Marshal(map[string]string{"phone": phone, "password": password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("login for %s: %w", phone, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d for %s", resp.StatusCode, phone)
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode login response for %s: %w", phone, err)
	}

	r.mu.Lock()
	r.tokens[phone] = parsed.Token
	r.mu.Unlock()
	return parsed.Token, nil
}
