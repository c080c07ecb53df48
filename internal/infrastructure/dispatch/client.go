package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	appErrors "barberbook/internal/pkg/errors"
	"barberbook/internal/pkg/logger"
)

// Client wraps the outbound HTTP contract of the external reminder service.
// The service resolves the appointment set for the given user and day itself
// and is the sole authority that marks individual appointments sent.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

var (
	clientInstance *Client
	once           sync.Once
)

// SendRequest is the body of POST /send_messages.
type SendRequest struct {
	UID      string `json:"uid"`
	Date     string `json:"date"` // YYYY-MM-DD
	Template string `json:"template"`
}

// SendResult is the server-computed summary of one bulk dispatch.
type SendResult struct {
	Sent    int    `json:"sent"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a new singleton instance of the reminder service client.
// It reads the service URL and timeout from environment variables.
func NewClient(log logger.Logger) *Client {
	once.Do(func() {
		baseURL := os.Getenv("REMINDER_SERVICE_URL")
		if baseURL == "" {
			log.Error("REMINDER_SERVICE_URL environment variable must be set", nil)
			os.Exit(1)
		}

		timeout := 30 * time.Second
		if raw := os.Getenv("REMINDER_HTTP_TIMEOUT_SECONDS"); raw != "" {
			if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
				timeout = time.Duration(secs) * time.Second
			}
		}

		clientInstance = &Client{
			baseURL: baseURL,
			http:    &http.Client{Timeout: timeout},
			log:     log,
		}
		log.Info("Reminder service client created.")
	})
	return clientInstance
}

// NewClientWithURL builds a non-singleton client against an explicit base
// URL. Used by tests.
func NewClientWithURL(baseURL string, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

// SendMessages issues the single bulk send call for one day bucket. A
// transport-level failure is classified as ErrDispatchConnectivity; a non-2xx
// response carries the server text wrapped in ErrDispatchServer. The result
// is only ever returned whole, from one complete response.
func (c *Client) SendMessages(ctx context.Context, req SendRequest) (*SendResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send_messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build send request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error(fmt.Sprintf("No response from reminder service for %s/%s", req.UID, req.Date), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDispatchConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrDispatchServer, errResp.Error)
		}
		return nil, fmt.Errorf("%w: status %d", appErrors.ErrDispatchServer, resp.StatusCode)
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.Error(fmt.Sprintf("Malformed summary from reminder service for %s/%s", req.UID, req.Date), err)
		return nil, fmt.Errorf("%w: malformed response", appErrors.ErrDispatchServer)
	}

	c.log.Info(fmt.Sprintf("Dispatch summary for %s/%s: %d/%d sent", req.UID, req.Date, result.Sent, result.Total))
	return &result, nil
}
