package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bistro-kart/internal/model"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBody = 1 << 20

// OrderClient submits orders to the intake service.
type OrderClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewOrderClient creates a client for the service rooted at baseURL
// (for example http://localhost:8080/api).
func NewOrderClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *OrderClient {
	return NewOrderClientWithHTTP(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, logger)
}

// NewOrderClientWithHTTP creates a client that sends requests through hc.
func NewOrderClientWithHTTP(baseURL string, hc *http.Client, logger zerolog.Logger) *OrderClient {
	return &OrderClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    hc,
		logger:  logger.With().Str("client", "order").Logger(),
	}
}

// CreateOrder sends exactly one creation request. It never retries.
func (c *OrderClient) CreateOrder(ctx context.Context, sub *model.OrderSubmission) (*model.OrderCreated, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	url := c.baseURL + "/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", url).Msg("order request failed")
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return c.decodeCreated(res)
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return nil, c.decodeRejected(res)
	default:
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		c.logger.Error().
			Int("status", res.StatusCode).
			Str("body", strings.TrimSpace(string(raw))).
			Msg("unexpected order service response")
		return nil, &UnexpectedError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
}

func (c *OrderClient) decodeCreated(res *http.Response) (*model.OrderCreated, error) {
	var created model.OrderCreated
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		return nil, &UnexpectedError{StatusCode: res.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if created.ID == "" {
		return nil, &UnexpectedError{StatusCode: res.StatusCode, Err: fmt.Errorf("response has no order id")}
	}

	c.logger.Info().Str("order_id", created.ID).Msg("order created")
	return &created, nil
}

func (c *OrderClient) decodeRejected(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))

	rejected := &RejectedError{StatusCode: res.StatusCode}
	var errResp model.ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err == nil {
		rejected.Code = errResp.Error
		rejected.Message = errResp.Message
		rejected.Fields = errResp.Fields
	} else {
		rejected.Message = strings.TrimSpace(string(raw))
	}

	c.logger.Warn().
		Int("status", res.StatusCode).
		Str("code", rejected.Code).
		Interface("fields", rejected.Fields).
		Msg("order rejected")

	return rejected
}
