// Package palette implements the search palette: a keyboard-driven state
// machine over a navsearch.Searcher that hands the chosen entry to a
// navsearch.Navigator, plus a render model for whatever draws it.
package palette

import (
	"context"
	"strings"

	"github.com/fwojciec/navsearch"
)

// TriggerKey opens and closes the palette together with Meta or Ctrl.
const TriggerKey = "k"

// Key names handled by the palette.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
)

// Key is a key press with its modifier state.
type Key struct {
	Name string
	Meta bool
	Ctrl bool
}

// State is a snapshot of the palette.
type State struct {
	Open     bool
	Query    string
	Results  []navsearch.IndexEntry
	Selected int
}

// Controller owns the palette state. It is driven from a single event loop
// and is not safe for concurrent use.
type Controller struct {
	searcher  navsearch.Searcher
	navigator navsearch.Navigator
	state     State
}

// NewController returns a closed palette.
func NewController(searcher navsearch.Searcher, navigator navsearch.Navigator) *Controller {
	return &Controller{searcher: searcher, navigator: navigator}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// IsOpen reports whether the palette is open.
func (c *Controller) IsOpen() bool {
	return c.state.Open
}

// Open shows the palette with an empty query and no results.
func (c *Controller) Open() {
	c.state = State{Open: true}
}

// Close hides the palette. The last query and results are kept until the
// next Open.
func (c *Controller) Close() {
	c.state.Open = false
}

// Toggle opens a closed palette and closes an open one.
func (c *Controller) Toggle() {
	if c.state.Open {
		c.Close()
		return
	}
	c.Open()
}

// SetQuery replaces the query, re-runs the search and resets the selection.
// It is ignored while the palette is closed.
func (c *Controller) SetQuery(query string) {
	if !c.state.Open {
		return
	}
	c.state.Query = query
	c.state.Results = c.searcher.Search(strings.TrimSpace(query))
	c.state.Selected = 0
}

// MoveDown selects the next result, wrapping to the first.
func (c *Controller) MoveDown() {
	if n := len(c.state.Results); c.state.Open && n > 0 {
		c.state.Selected = (c.state.Selected + 1) % n
	}
}

// MoveUp selects the previous result, wrapping to the last.
func (c *Controller) MoveUp() {
	if n := len(c.state.Results); c.state.Open && n > 0 {
		c.state.Selected = (c.state.Selected - 1 + n) % n
	}
}

// Hover selects the result at index without navigating.
func (c *Controller) Hover(index int) {
	if c.state.Open && index >= 0 && index < len(c.state.Results) {
		c.state.Selected = index
	}
}

// Enter navigates to the selected result. It reports false when there is
// nothing to select.
func (c *Controller) Enter(ctx context.Context) (bool, error) {
	return c.Click(ctx, c.state.Selected)
}

// Click navigates to the result at index. The palette is closed before the
// navigator is invoked. It reports false when index names no result.
func (c *Controller) Click(ctx context.Context, index int) (bool, error) {
	if !c.state.Open || index < 0 || index >= len(c.state.Results) {
		return false, nil
	}
	entry := c.state.Results[index]
	c.Close()
	return true, c.navigator.Navigate(ctx, entry.Route())
}

// ClickOutside closes the palette, as a click on its backdrop does.
func (c *Controller) ClickOutside() {
	c.Close()
}

// HandleKey applies a key press and reports whether the palette consumed it.
//
// Meta+k or Ctrl+k toggles the palette from anywhere and Escape closes it.
// While open, ArrowDown and ArrowUp move the selection and Enter navigates;
// they are consumed only when there are results.
func (c *Controller) HandleKey(ctx context.Context, key Key) (bool, error) {
	if (key.Meta || key.Ctrl) && strings.EqualFold(key.Name, TriggerKey) {
		c.Toggle()
		return true, nil
	}
	if !c.state.Open {
		return false, nil
	}

	switch key.Name {
	case KeyEscape:
		c.Close()
		return true, nil
	case KeyArrowDown:
		if len(c.state.Results) == 0 {
			return false, nil
		}
		c.MoveDown()
		return true, nil
	case KeyArrowUp:
		if len(c.state.Results) == 0 {
			return false, nil
		}
		c.MoveUp()
		return true, nil
	case KeyEnter:
		return c.Enter(ctx)
	}
	return false, nil
}
