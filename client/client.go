// Package client is the Go counterpart of the storefront's browser session:
// a thin HTTP wrapper around the API plus a session-local cart mirror.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrAuthRequired is returned when a call needs a bearer token and the
// session has none, or when the server rejects the token.
var ErrAuthRequired = errors.New("authentication required")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// CartLine mirrors one row of GET /cart
type CartLine struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImgURL    string  `json:"img_url"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

// Profile mirrors GET /profile
type Profile struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type Client struct {
	baseURL string
	tokens  TokenStore
	client  *http.Client
}

func New(baseURL string, tokens TokenStore) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Tokens exposes the session token store the client was built with
func (c *Client) Tokens() TokenStore { return c.tokens }

// do sends a JSON request. withAuth calls attach the stored bearer token and
// short-circuit with ErrAuthRequired when the session has none; a 401 from
// the server clears the stored token, the session-expiry behavior the
// storefront relies on.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, withAuth bool) error {
	var token string
	if withAuth {
		token = c.tokens.Token()
		if token == "" {
			return ErrAuthRequired
		}
	}

	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewBuffer(b)
	} else {
		buf = new(bytes.Buffer)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
		return ErrAuthRequired
	}
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Register creates an account
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/register", body, nil, false)
}

// Login authenticates and stores the returned token in the session
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out, false); err != nil {
		return err
	}
	c.tokens.SetToken(out.Token)
	return nil
}

// Logout drops the session token
func (c *Client) Logout() {
	c.tokens.Clear()
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchCart returns the server's view of the session cart
func (c *Client) FetchCart(ctx context.Context) ([]CartLine, error) {
	var lines []CartLine
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &lines, true); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddItem adds a product to the cart. Zero quantity means 1; empty size and
// color take the server defaults.
func (c *Client) AddItem(ctx context.Context, productID int64, quantity int, size, color string) error {
	body := map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	}
	if size != "" {
		body["size"] = size
	}
	if color != "" {
		body["color"] = color
	}
	return c.do(ctx, http.MethodPost, "/cart/items", body, nil, true)
}

// AdjustItem applies a quantity delta to a line. The server applies it
// atomically and removes the line when the result drops below 1.
func (c *Client) AdjustItem(ctx context.Context, itemID int64, delta int) error {
	body := map[string]int{"delta": delta}
	return c.do(ctx, http.MethodPut, "/cart/items/"+strconv.FormatInt(itemID, 10), body, nil, true)
}

// SetItemQuantity sets an absolute quantity; zero or less removes the line
func (c *Client) SetItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	body := map[string]int{"quantity": quantity}
	return c.do(ctx, http.MethodPut, "/cart/items/"+strconv.FormatInt(itemID, 10), body, nil, true)
}

func (c *Client) RemoveItem(ctx context.Context, itemID int64) error {
	return c.do(ctx, http.MethodDelete, "/cart/items/"+strconv.FormatInt(itemID, 10), nil, nil, true)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart", nil, nil, true)
}
