// Package selection tracks keyboard focus over the launcher's ordered set of
// workspace items.
package selection

import (
	"codelaunch/internal/catalog"
	"codelaunch/pkg/types"
)

// Column is the button column an item is placed in.
type Column int

const (
	Left Column = iota
	Right
)

func (c Column) String() string {
	if c == Right {
		return "right"
	}
	return "left"
}

// Item is one focusable entry with its fixed position in the grid.
type Item struct {
	Entry  types.WorkspaceEntry
	Column Column
	// Row is the index within the item's column.
	Row int
}

// Arrange returns the items in focus order: virtualized left column,
// virtualized right column, native left column, native right column. Within
// an environment, even catalog indices go left and odd go right.
func Arrange(cat catalog.Catalog) []Item {
	items := make([]Item, 0, cat.Len())
	for _, env := range types.Environments {
		left, right := Split(cat.Bucket(env))
		items = append(items, left...)
		items = append(items, right...)
	}
	return items
}

// Split assigns entries alternately to the left and right columns.
func Split(entries []types.WorkspaceEntry) (left, right []Item) {
	for i, entry := range entries {
		if i%2 == 0 {
			left = append(left, Item{Entry: entry, Column: Left, Row: len(left)})
		} else {
			right = append(right, Item{Entry: entry, Column: Right, Row: len(right)})
		}
	}
	return left, right
}

// Controller holds the current items and the focus index. The index is
// reduced modulo the item count whenever it is used, so it stays valid
// after the set shrinks.
type Controller struct {
	items []Item
	focus int
}

// New returns a controller over items with focus on the first one.
func New(items []Item) *Controller {
	return &Controller{items: items}
}

// SetItems replaces the item set. The focus index is kept as is.
func (c *Controller) SetItems(items []Item) {
	c.items = items
}

// Items returns the current item set.
func (c *Controller) Items() []Item {
	return c.items
}

// Count returns the number of items.
func (c *Controller) Count() int {
	return len(c.items)
}

// Index returns the effective focus index, or -1 when there are no items.
func (c *Controller) Index() int {
	if len(c.items) == 0 {
		return -1
	}
	return mod(c.focus, len(c.items))
}

// Focused returns the focused item.
func (c *Controller) Focused() (Item, bool) {
	i := c.Index()
	if i < 0 {
		return Item{}, false
	}
	return c.items[i], true
}

// MoveFocus steps the focus one item in dir, wrapping at either end, and
// returns the newly focused item. It does nothing when there are no items.
func (c *Controller) MoveFocus(dir types.Direction) (Item, bool) {
	if len(c.items) == 0 {
		return Item{}, false
	}
	c.focus = mod(c.focus+dir.Step(), len(c.items))
	return c.items[c.focus], true
}

// Activate calls fn with the focused item. It returns false without
// calling fn when there are no items.
func (c *Controller) Activate(fn func(Item)) bool {
	item, ok := c.Focused()
	if !ok {
		return false
	}
	fn(item)
	return true
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
