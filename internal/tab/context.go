package tab

import "github.com/kk-code-lab/rtab/internal/listing"

// Context is the ordered set of open tabs and which one is active.
type Context struct {
	tabs   []*Tab
	active int
	nextID int
	opts   []listing.Option
}

// NewContext returns an empty context. opts are applied to every new tab's
// cache.
func NewContext(opts ...listing.Option) *Context {
	return &Context{opts: opts}
}

// Add opens a tab at dir, makes it active and returns it.
func (c *Context) Add(dir string, sortCfg listing.SortConfig) *Tab {
	t := New(c.nextID, dir, sortCfg, c.opts...)
	c.nextID++
	c.tabs = append(c.tabs, t)
	c.active = len(c.tabs) - 1
	return t
}

// Active returns the active tab, or nil when none is open.
func (c *Context) Active() *Tab {
	if len(c.tabs) == 0 {
		return nil
	}
	return c.tabs[c.active]
}

func (c *Context) ActiveIndex() int { return c.active }

func (c *Context) Len() int { return len(c.tabs) }

// Tabs returns the open tabs in order.
func (c *Context) Tabs() []*Tab { return c.tabs }

// CloseActive closes the active tab and activates its left neighbour. It
// reports whether any tab remains open.
func (c *Context) CloseActive() bool {
	if len(c.tabs) == 0 {
		return false
	}
	c.tabs[c.active].Close()
	c.tabs = append(c.tabs[:c.active], c.tabs[c.active+1:]...)
	if c.active > 0 {
		c.active--
	}
	return len(c.tabs) > 0
}

// Next activates the tab to the right, wrapping around.
func (c *Context) Next() {
	if len(c.tabs) > 0 {
		c.active = (c.active + 1) % len(c.tabs)
	}
}

// Prev activates the tab to the left, wrapping around.
func (c *Context) Prev() {
	if len(c.tabs) > 0 {
		c.active = (c.active - 1 + len(c.tabs)) % len(c.tabs)
	}
}

// Select activates the tab at idx when it exists.
func (c *Context) Select(idx int) {
	if idx >= 0 && idx < len(c.tabs) {
		c.active = idx
	}
}
