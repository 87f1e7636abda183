package client

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

	"github.com/dmitrijs2005/sweetshop/internal/client/models"
)

// HTTPClient talks JSON to the storefront API. Every request carries the
// credential held by its Authorization at the moment the request is sent.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

type Option func(*options)

type options struct {
	transport http.RoundTripper
	timeout   time.Duration
}

// WithTransport sets the transport under the authorization layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithTimeout bounds every request; zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func NewHTTPClient(baseURL string, auth *Authorization, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	o := options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: &bearerTransport{auth: auth, base: o.transport}},
		timeout: o.timeout,
	}, nil
}

// envelope is the shape of every catalog response.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type purchaseRequest struct {
	Quantity int `json:"quantity"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListSweets(ctx context.Context) ([]models.Sweet, error) {
	var env envelope[[]models.Sweet]
	if err := c.call(ctx, http.MethodGet, "/sweets", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *HTTPClient) CreateSweet(ctx context.Context, in models.SweetInput) (*models.Sweet, error) {
	var env envelope[models.Sweet]
	if err := c.call(ctx, http.MethodPost, "/sweets", in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *HTTPClient) UpdateSweet(ctx context.Context, id models.ID, upd models.SweetUpdate) (*models.Sweet, error) {
	var env envelope[models.Sweet]
	if err := c.call(ctx, http.MethodPut, sweetPath(id), upd, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (c *HTTPClient) DeleteSweet(ctx context.Context, id models.ID) error {
	// an empty 2xx body counts as success
	env := envelope[json.RawMessage]{Success: true}
	return c.call(ctx, http.MethodDelete, sweetPath(id), nil, &env)
}

func (c *HTTPClient) PurchaseSweet(ctx context.Context, id models.ID, quantity int) (*models.Sweet, error) {
	var env envelope[models.Sweet]
	if err := c.call(ctx, http.MethodPost, sweetPath(id)+"/purchase", purchaseRequest{Quantity: quantity}, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func sweetPath(id models.ID) string {
	return "/sweets/" + url.PathEscape(id.String())
}

// call is do for catalog endpoints: a 2xx envelope with success=false is
// still a failure.
func (c *HTTPClient) call(ctx context.Context, method, path string, body any, env interface {
	ok() (bool, string)
}) error {
	if err := c.do(ctx, method, path, body, env); err != nil {
		return err
	}
	if ok, msg := env.ok(); !ok {
		return &APIError{Status: http.StatusOK, Message: msg}
	}
	return nil
}

func (e *envelope[T]) ok() (bool, string) { return e.Success, e.Message }

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var failure struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &failure) == nil {
			apiErr.Message = failure.Message
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
