// Package accountclient is a caching HTTP client for the accounts API.
package accountclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/cbk-gemmy/finance-platform/pkg/querycache"
	"github.com/cbk-gemmy/finance-platform/pkg/web"
)

const (
	accountsPath = "/api/accounts"

	// AccountsKey caches the account list.
	AccountsKey = "accounts"
	// AccountKeyPrefix prefixes the cache key of a single account.
	AccountKeyPrefix = "account/"
)

// AccountKey returns the cache key of the account with the given id.
func AccountKey(id string) string {
	return AccountKeyPrefix + id
}

// Account is a full account row as returned on create.
type Account struct {
	ID      string  `json:"id"`
	PlaidID *string `json:"plaidId"`
	Name    string  `json:"name"`
	UserID  string  `json:"userId"`
}

// AccountSummary is the projection returned by reads.
type AccountSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeletedAccount identifies an account removed by a bulk delete.
type DeletedAccount struct {
	ID string `json:"id"`
}

// NewAccount is the input of the create mutation.
type NewAccount struct {
	Name string `json:"name"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("accounts api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the accounts API and caches read results.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	staleTime  time.Duration

	cache *querycache.Cache[any]
	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithStaleTime overrides how long read results are served from cache.
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) {
		c.staleTime = d
	}
}

// New returns a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		staleTime:  querycache.DefaultStaleTime,
		inflight:   make(map[string]int),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.cache = querycache.New[any](querycache.DefaultMaxSize, c.staleTime)

	return c
}

// Accounts returns the caller's accounts, refetching when the cached list is stale.
func (c *Client) Accounts(ctx context.Context) Query[[]AccountSummary] {
	return fetch[[]AccountSummary](ctx, c, AccountsKey, accountsPath)
}

// Account returns one account. An empty id yields a disabled query without a request.
func (c *Client) Account(ctx context.Context, id string) Query[AccountSummary] {
	if id == "" {
		return Query[AccountSummary]{}
	}

	return fetch[AccountSummary](ctx, c, AccountKey(id), accountsPath+"/"+url.PathEscape(id))
}

// PeekAccounts returns the cached list, fresh or stale, without fetching.
func (c *Client) PeekAccounts() Query[[]AccountSummary] {
	return peek[[]AccountSummary](c, AccountsKey)
}

// PeekAccount returns the cached account, fresh or stale, without fetching.
func (c *Client) PeekAccount(id string) Query[AccountSummary] {
	if id == "" {
		return Query[AccountSummary]{}
	}

	return peek[AccountSummary](c, AccountKey(id))
}

// CreateAccount returns a mutation creating an account. Success invalidates the list.
func (c *Client) CreateAccount() *Mutation[NewAccount, Account] {
	return newMutation(
		func(ctx context.Context, in NewAccount) (Account, error) {
			var out Account
			err := c.do(ctx, http.MethodPost, accountsPath, in, &out)
			return out, err
		},
		func(Account) {
			c.cache.Invalidate(AccountsKey)
		},
	)
}

// BulkDeleteAccounts returns a mutation deleting accounts by id.
// Success invalidates the list and every cached account.
func (c *Client) BulkDeleteAccounts() *Mutation[[]string, []DeletedAccount] {
	return newMutation(
		func(ctx context.Context, ids []string) ([]DeletedAccount, error) {
			var out []DeletedAccount
			err := c.do(ctx, http.MethodPost, accountsPath+"/bulk-delete", map[string][]string{"ids": ids}, &out)
			return out, err
		},
		func([]DeletedAccount) {
			c.cache.Invalidate(AccountsKey)
			c.cache.InvalidatePrefix(AccountKeyPrefix)
		},
	)
}

// fetch serves key from cache or joins the single in-flight request for it.
// The shared request runs detached from ctx, so one caller giving up does not fail the others.
func fetch[T any](ctx context.Context, c *Client, key, path string) Query[T] {
	if v, ok := c.cache.Get(key); ok {
		if data, ok := v.(T); ok {
			return Query[T]{Data: data, Enabled: true}
		}
	}

	shared := context.WithoutCancel(ctx)

	ch := c.group.DoChan(key, func() (any, error) {
		c.setLoading(key, 1)
		defer c.setLoading(key, -1)

		var out T
		if err := c.do(shared, http.MethodGet, path, nil, &out); err != nil {
			return nil, err
		}

		c.cache.Set(key, out)

		return out, nil
	})

	select {
	case <-ctx.Done():
		return Query[T]{Err: ctx.Err(), IsLoading: c.isLoading(key), Enabled: true}
	case res := <-ch:
		if res.Err != nil {
			return Query[T]{Err: res.Err, Enabled: true}
		}

		return Query[T]{Data: res.Val.(T), Enabled: true}
	}
}

func peek[T any](c *Client, key string) Query[T] {
	q := Query[T]{Enabled: true, IsLoading: c.isLoading(key)}

	if v, ok := c.cache.Peek(key); ok {
		if data, ok := v.(T); ok {
			q.Data = data
		}
	}

	return q
}

func (c *Client) setLoading(key string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight[key] += delta
	if c.inflight[key] <= 0 {
		delete(c.inflight, key)
	}
}

func (c *Client) isLoading(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inflight[key] > 0
}

// do sends a request and decodes the data envelope of a 2xx response into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	l := zerolog.Ctx(ctx)

	var body io.Reader

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("cannot encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("cannot create request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	l.Debug().Str("method", method).Str("path", path).Int("status_code", resp.StatusCode).Msg("accounts api call")

	envelope := web.Response{Data: out}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

		var errBody web.Response
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}

		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("cannot decode response: %w", err)
	}

	return nil
}
