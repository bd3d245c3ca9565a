// Package client is the Go SDK for the portal admin API. It keeps a
// query-keyed cache of the role and user views and coordinates their
// invalidation after every mutation, so the role list, role stats and user
// list converge without manual refresh.
package client

import (
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/htz-portal/portal-api/querycache"
)

// Query keys for the cross-view caches.
var (
	KeyRoleList  = querycache.Key{"roles", "list"}
	KeyRoleStats = querycache.Key{"roles", "stats"}
	KeyUserList  = querycache.Key{"users", "list"}
)

// DefaultTimeout bounds every request so a hung mutation cannot leave the
// caller waiting forever.
const DefaultTimeout = 15 * time.Second

type Client struct {
	http  *resty.Client
	cache *querycache.Cache
}

type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithCache injects a shared query cache, e.g. one driving UI
// subscriptions.
func WithCache(qc *querycache.Cache) Option {
	return func(c *Client) {
		c.cache = qc
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetAuthToken(token).
			SetTimeout(DefaultTimeout).
			SetHeader("Content-Type", "application/json"),
		cache: querycache.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache exposes the query cache for subscriptions and tests.
func (c *Client) Cache() *querycache.Cache {
	return c.cache
}

func (c *Client) Roles() *RoleService {
	return &RoleService{c: c}
}

func (c *Client) Users() *UserService {
	return &UserService{c: c}
}

type apiMessage struct {
	Message string `json:"message"`
}

// apiError maps a response to the client error taxonomy. protectedRole
// marks role mutations, where a 403 means a protected system role rather
// than a missing permission.
func apiError(resp *resty.Response, err error, protectedRole string) error {
	if err != nil {
		return &HTTPError{StatusCode: 0, Message: err.Error()}
	}
	if resp.IsSuccess() {
		return nil
	}

	msg := "request failed"
	var body apiMessage
	if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil && body.Message != "" {
		msg = body.Message
	}

	switch resp.StatusCode() {
	case 409:
		return &ConflictError{Message: msg}
	case 403:
		if protectedRole != "" {
			return &ProtectedRoleError{Role: protectedRole}
		}
		return &HTTPError{StatusCode: 403, Message: msg}
	default:
		return &HTTPError{StatusCode: resp.StatusCode(), Message: msg}
	}
}
