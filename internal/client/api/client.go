// Package api implements the typed HTTP client for the store REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/storeviewer/internal/models"
)

// ErrNoSession is returned when a privileged call is attempted without a
// session token. The request is rejected locally, before any network I/O.
var ErrNoSession = errors.New("no active session")

// TokenSource supplies the bearer token for admin requests.
type TokenSource interface {
	// Token returns the current session token and whether one is present.
	Token() (string, bool)
}

// APIError is a non-2xx response from the backend, carrying the
// server-provided message when the body contained one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Client talks to the store backend. All methods take a context and return
// explicit errors; admin methods inject the bearer token from the TokenSource.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Login exchanges credentials for a session token. A 2xx response without a
// token in the body is treated as a failure.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResult, error) {
	var res models.LoginResult
	creds := models.Credentials{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, false, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "login response is missing a token"}
	}
	return &res, nil
}

// Validate checks a token against the validation endpoint. The token travels
// as a query parameter; the endpoint itself is public.
func (c *Client) Validate(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/auth/validate?token="+url.QueryEscape(token), nil, false, nil)
}

// PublicProducts fetches the full public product list.
func (c *Client) PublicProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/public/products", nil, false, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// PublicProduct fetches a single product by id.
func (c *Client) PublicProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/public/products/%d", id), nil, false, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories fetches the distinct category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/public/products/categories", nil, false, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// AdminProducts fetches the admin-visible product list. It doubles as the
// authorization probe during session restoration.
func (c *Client) AdminProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/admin/products", nil, true, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a new product.
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", p, true, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p models.Product) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/products/%d", id), p, true, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct deletes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/products/%d", id), nil, true, nil)
}

// do performs one request against the backend. admin requests carry the
// bearer token and fail with ErrNoSession when none is available.
func (c *Client) do(ctx context.Context, method, path string, body any, admin bool, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if admin {
		token, ok := c.tokens.Token()
		if !ok {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns a non-2xx response into an APIError, preferring the
// JSON {message} body the backend uses for errors.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body models.ErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
