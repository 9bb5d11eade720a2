// Package app holds the launcher's application state and turns front-end
// events into catalog scans, focus changes, launches and config updates.
// Both the desktop and the terminal front ends drive the same Controller.
package app

import (
	"fmt"
	"sync"

	"codelaunch/internal/catalog"
	"codelaunch/internal/config"
	"codelaunch/internal/errors"
	"codelaunch/internal/launch"
	"codelaunch/internal/log"
	"codelaunch/internal/selection"
	"codelaunch/pkg/types"
)

// Instructions is the key help shown under every status message.
const Instructions = "Q/X/Escape: exit        N/I: Stable/Insiders        Tab: navigate        Enter/Space: select"

// View is implemented by a front end. Calls are made with the controller
// lock held, so a View must not call back into the Controller from inside
// one of these methods.
type View interface {
	// ShowItems replaces the displayed items.
	ShowItems(items []selection.Item)
	// Highlight marks item index as selected and every other item as
	// normal. A negative index clears the highlight.
	Highlight(index int)
	// SetStatus replaces the status text.
	SetStatus(text string)
	// SetEdition reflects the selected editor edition.
	SetEdition(edition types.Edition)
	// Relayout applies new panel and button sizes.
	Relayout(m Metrics)
}

// Scanner produces the catalog for a configuration.
type Scanner func(cfg *config.Config) catalog.Catalog

// Option configures a Controller.
type Option func(*Controller)

// WithScanner replaces catalog.Load as the item source.
func WithScanner(scan Scanner) Option {
	return func(c *Controller) { c.scan = scan }
}

// Controller owns all mutable launcher state. Every front-end event maps
// to one method.
type Controller struct {
	mu sync.Mutex

	store *config.Store
	gate  *launch.Gate
	view  View
	scan  Scanner
	sel   *selection.Controller

	width, height int
	status        string
}

// New creates a controller. Call Refresh to load the initial item set.
func New(store *config.Store, gate *launch.Gate, view View, opts ...Option) *Controller {
	if view == nil {
		view = nopView{}
	}
	c := &Controller{
		store:  store,
		gate:   gate,
		view:   view,
		scan:   catalog.Load,
		sel:    selection.New(nil),
		status: Instructions,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh rescans the workspace root and replaces the item set.
func (c *Controller) Refresh() {
	cat := c.scan(c.Config())
	c.ItemSetChanged(selection.Arrange(cat))
}

// ItemSetChanged replaces the items without resetting the focus index.
func (c *Controller) ItemSetChanged(items []selection.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sel.SetItems(items)
	c.view.ShowItems(items)
	c.view.SetEdition(c.store.Current().LastSelectedEdition)
	if item, ok := c.sel.Focused(); ok {
		c.view.Highlight(c.sel.Index())
		c.setStatus(selectedStatus(item))
	} else {
		c.view.Highlight(-1)
		c.setStatus(Instructions)
	}
	log.LogWithFields(log.F("items", len(items))).Debug("item set changed")
}

// MoveFocus moves the highlight one item in dir. It returns false when
// there is nothing to focus.
func (c *Controller) MoveFocus(dir types.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.sel.MoveFocus(dir)
	if !ok {
		return false
	}
	c.view.Highlight(c.sel.Index())
	c.setStatus(selectedStatus(item))
	return true
}

// Activate launches the focused workspace. It returns false without
// launching when there are no items.
func (c *Controller) Activate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sel.Activate(func(item selection.Item) {
		c.launch(item.Entry)
	})
}

// ActivateAt launches the item at index i, as a click on its button does.
// Focus is not moved.
func (c *Controller) ActivateAt(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.sel.Items()
	if i < 0 || i >= len(items) {
		return false
	}
	c.launch(items[i].Entry)
	return true
}

func (c *Controller) launch(entry types.WorkspaceEntry) {
	cfg := c.store.Current()
	req := launch.Request{
		FileName:    entry.FileName,
		Environment: entry.Environment,
		Edition:     cfg.LastSelectedEdition,
	}
	if _, err := c.gate.Launch(req, cfg); err != nil {
		c.setStatus(errors.StatusMessage(err))
	}
}

// SetEdition selects and persists the editor edition.
func (c *Controller) SetEdition(edition types.Edition) {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.store.Update(func(cfg *config.Config) {
		cfg.LastSelectedEdition = edition
	})
	if err != nil {
		log.LogWithError(err).Error("failed to save edition")
	}
	c.view.SetEdition(edition)
	c.setStatus(fmt.Sprintf("Editor edition set to: %s\n%s", edition.Label(), Instructions))
	log.Infof("edition set to %s", edition)
}

// Edition returns the selected editor edition.
func (c *Controller) Edition() types.Edition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Current().LastSelectedEdition
}

// Resize handles a frame at width x height. Nothing happens when the size
// equals the previous frame. Otherwise the layout is recomputed, and the
// size is persisted when it differs from the saved size by more than the
// configured threshold. It reports whether the layout was recomputed.
func (c *Controller) Resize(width, height int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if width == c.width && height == c.height {
		return false
	}
	c.width, c.height = width, height
	c.view.Relayout(MetricsFor(width, height))

	cfg := c.store.Current()
	if !significant(cfg.WindowSize, width, height, cfg.ResizeThreshold) {
		return true
	}
	err := c.store.Update(func(cfg *config.Config) {
		cfg.WindowSize = config.WindowSize{Width: width, Height: height}
	})
	if err != nil {
		log.LogWithError(err).Error("failed to save window size")
	} else {
		log.Debugf("saved window size: %dx%d", width, height)
	}
	return true
}

// Close persists the final window size.
func (c *Controller) Close(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}
	err := c.store.Update(func(cfg *config.Config) {
		cfg.WindowSize = config.WindowSize{Width: width, Height: height}
	})
	if err != nil {
		log.LogWithError(err).Error("failed to save window size on close")
		return
	}
	log.Debugf("saved window size on close: %dx%d", width, height)
}

// Status returns the current status text.
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Items returns the current item set.
func (c *Controller) Items() []selection.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Items()
}

// FocusIndex returns the effective focus index, -1 without items.
func (c *Controller) FocusIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Index()
}

// Config returns a copy of the current configuration.
func (c *Controller) Config() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Current()
}

func (c *Controller) setStatus(text string) {
	c.status = text
	c.view.SetStatus(text)
}

func selectedStatus(item selection.Item) string {
	return fmt.Sprintf("Selected: %s\n%s", item.Entry.DisplayName, Instructions)
}

func significant(saved config.WindowSize, width, height, threshold int) bool {
	return abs(width-saved.Width) > threshold || abs(height-saved.Height) > threshold
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

type nopView struct{}

func (nopView) ShowItems([]selection.Item) {}
func (nopView) Highlight(int) {}
func (nopView) SetStatus(string) {}
func (nopView) SetEdition(types.Edition) {}
func (nopView) Relayout(Metrics) {}
