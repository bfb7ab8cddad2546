// internal/infra/practicum/client.go
package practicum

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"
)

const maxErrorBody = 512

// Config describes how to reach the homework statuses endpoint.
type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client queries the homework statuses endpoint. It keeps no state between calls.
type Client struct {
	c   *http.Client
	cfg Config
}

// New builds a client with its own transport bounded by cfg.Timeout.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout, Transport: transport})
}

// NewWithHTTPClient is New with a caller-supplied http.Client.
func NewWithHTTPClient(cfg Config, hc *http.Client) *Client {
	return &Client{c: hc, cfg: cfg}
}

// FetchStatus asks for every status change since the given Unix timestamp.
// It issues exactly one request and returns the decoded body without
// checking its shape. Every failure is a *homework.RequestError.
func (cl *Client) FetchStatus(ctx context.Context, since int64) (any, error) {
	if cl.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cl.cfg.Timeout)
		defer cancel()
	}

	u, err := url.Parse(cl.cfg.Endpoint)
	if err != nil {
		return nil, &homework.RequestError{Err: fmt.Errorf("invalid endpoint: %w", err)}
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(since, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &homework.RequestError{Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+cl.cfg.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := cl.c.Do(req)
	if err != nil {
		return nil, &homework.RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &homework.RequestError{
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(body)),
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &homework.RequestError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return payload, nil
}
