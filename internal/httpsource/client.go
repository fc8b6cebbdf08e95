package httpsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aliskhannn/quiz-trainer/internal/domain/entities"
	"github.com/aliskhannn/quiz-trainer/internal/repository"
)

const (
	questionsPath  = "/api/questions"
	maxErrorBody   = 4 << 10
	defaultTimeout = 10 * time.Second
)

// Client fetches question banks from a remote question API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL. A zero timeout uses
// the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchQuestions performs GET /api/questions?lang=&filter= and decodes the
// JSON array in the response body.
func (c *Client) FetchQuestions(ctx context.Context, language, filter string) ([]entities.Question, error) {
	q := url.Values{}
	q.Set("lang", language)
	q.Set("filter", filter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+questionsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return repository.DecodeJSONBank(req.URL.Path, data)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("question api: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("question api: %d %s", e.Code, e.Message)
}

func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
