package client

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy is returned when a cart operation is already in flight. The UI is
// expected to disable its controls while Loading() is true; this is the same
// contract enforced at the API level.
var ErrBusy = errors.New("cart operation already in flight")

// Cart is the session-local mirror of the server cart. It holds the last
// fetched lines, a loading flag, and the last error, and notifies
// subscribers on every state change so a UI can re-render.
//
// Operations call the server and then refresh the mirror; a failed operation
// leaves the lines untouched and records the error for a manual retry.
type Cart struct {
	api *Client

	mu      sync.Mutex
	items   []CartLine
	loading bool
	err     error
	subs    map[int]func()
	nextSub int

	cancelWatch func()
}

// NewCart builds the mirror and hooks it to the session's token store:
// losing the token (logout, expiry) empties the mirror immediately.
func NewCart(api *Client) *Cart {
	c := &Cart{
		api:  api,
		subs: make(map[int]func()),
	}
	c.cancelWatch = api.Tokens().Watch(func(token string) {
		if token == "" {
			c.mu.Lock()
			c.items = nil
			c.err = nil
			c.mu.Unlock()
			c.notify()
		}
	})
	return c
}

// Close detaches the mirror from the token store
func (c *Cart) Close() {
	if c.cancelWatch != nil {
		c.cancelWatch()
	}
}

// Items returns a copy of the mirrored cart lines
func (c *Cart) Items() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CartLine, len(c.items))
	copy(out, c.items)
	return out
}

// Loading reports whether an operation is in flight
func (c *Cart) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error recorded by the last operation, if any
func (c *Cart) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Subscribe registers a callback fired after every state change
func (c *Cart) Subscribe(fn func()) (cancel func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Cart) notify() {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// begin moves the mirror into the loading state. It fails with ErrBusy when
// an operation is already running and with ErrAuthRequired when the session
// has no token, in which case no network call is made.
func (c *Cart) begin() error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.api.Tokens().Token() == "" {
		c.err = ErrAuthRequired
		c.mu.Unlock()
		c.notify()
		return ErrAuthRequired
	}
	c.loading = true
	c.err = nil
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Cart) finish(err error) {
	c.mu.Lock()
	c.loading = false
	c.err = err
	c.mu.Unlock()
	c.notify()
}

// reload replaces the mirrored lines with the server's current cart
func (c *Cart) reload(ctx context.Context) error {
	lines, err := c.api.FetchCart(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = lines
	c.mu.Unlock()
	return nil
}

// Refresh fetches the cart from the server, replacing local state wholesale
func (c *Cart) Refresh(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	err := c.reload(ctx)
	c.finish(err)
	return err
}

// Add puts a product in the cart and refreshes the mirror
func (c *Cart) Add(ctx context.Context, productID int64, quantity int, size, color string) error {
	if err := c.begin(); err != nil {
		return err
	}
	err := c.api.AddItem(ctx, productID, quantity, size, color)
	if err == nil {
		err = c.reload(ctx)
	}
	c.finish(err)
	return err
}

// Increment raises a line's quantity by one
func (c *Cart) Increment(ctx context.Context, itemID int64) error {
	if err := c.begin(); err != nil {
		return err
	}
	err := c.api.AdjustItem(ctx, itemID, +1)
	if err == nil {
		err = c.reload(ctx)
	}
	c.finish(err)
	return err
}

// Decrement lowers a line's quantity by one; at quantity 1 the line is
// removed instead.
func (c *Cart) Decrement(ctx context.Context, itemID int64) error {
	if err := c.begin(); err != nil {
		return err
	}

	c.mu.Lock()
	qty := 0
	for _, l := range c.items {
		if l.ID == itemID {
			qty = l.Quantity
			break
		}
	}
	c.mu.Unlock()

	var err error
	if qty <= 1 {
		err = c.api.RemoveItem(ctx, itemID)
	} else {
		err = c.api.AdjustItem(ctx, itemID, -1)
	}
	if err == nil {
		err = c.reload(ctx)
	}
	c.finish(err)
	return err
}

// Remove deletes a line and refreshes the mirror
func (c *Cart) Remove(ctx context.Context, itemID int64) error {
	if err := c.begin(); err != nil {
		return err
	}
	err := c.api.RemoveItem(ctx, itemID)
	if err == nil {
		err = c.reload(ctx)
	}
	c.finish(err)
	return err
}

// Clear empties the cart. On success the mirror is emptied directly, without
// a refetch.
func (c *Cart) Clear(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	err := c.api.ClearCart(ctx)
	if err == nil {
		c.mu.Lock()
		c.items = nil
		c.mu.Unlock()
	}
	c.finish(err)
	return err
}
