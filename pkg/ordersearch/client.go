// Package ordersearch is an HTTP client for the order search service.
package ordersearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"userorders/internal/correlation"
	"userorders/internal/models"
)

var ErrUnexpectedStatus = errors.New("ordersearch: unexpected status")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/") + "/orderSearchService",
		userAgent:  "userorders/1.0",
	}
}

// OrdersByPhone calls GET /order/phone?phoneNumber=... and yields every order
// of the JSON array as soon as it is decoded, without waiting for the array to
// end. It stops early if yield returns an error.
func (c *Client) OrdersByPhone(ctx context.Context, phone string, yield func(models.Order) error) error {
	params := url.Values{}
	params.Set("phoneNumber", phone)
	reqURL := fmt.Sprintf("%s/order/phone?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if id := correlation.FromContext(ctx); id != correlation.Absent {
		req.Header.Set(correlation.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	if tok, err := dec.Token(); err != nil {
		return fmt.Errorf("read order list: %w", err)
	} else if d, ok := tok.(json.Delim); !ok || d != '[' {
		return fmt.Errorf("read order list: expected array, got %v", tok)
	}
	for dec.More() {
		var o models.Order
		if err := dec.Decode(&o); err != nil {
			return fmt.Errorf("decode order: %w", err)
		}
		if err := yield(o); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("read order list: %w", err)
	}
	return nil
}
