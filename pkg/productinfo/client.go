// Package productinfo is an HTTP client for the product info service.
package productinfo

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

var ErrUnexpectedStatus = errors.New("productinfo: unexpected status")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/") + "/productInfoService",
		userAgent:  "userorders/1.0",
	}
}

// ProductsByCode calls GET /product/names?productCode=... and returns every
// candidate product.
func (c *Client) ProductsByCode(ctx context.Context, code string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("productCode", code)
	reqURL := fmt.Sprintf("%s/product/names?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if id := correlation.FromContext(ctx); id != correlation.Absent {
		req.Header.Set(correlation.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
