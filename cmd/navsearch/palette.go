package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/navsearch"
	"github.com/fwojciec/navsearch/indexer"
	"github.com/fwojciec/navsearch/palette"
)

// Run executes the palette command. Each stdin line is one event:
//
//	open | close | toggle | outside
//	type <query>
//	down | up | enter | escape
//	hover <n> | click <n>      (n counts from 1)
//	key <combo>                (e.g. "key meta+k", "key Escape")
//	wait                       (block until the index is ready)
//	view
//
// The palette is printed after every event. Failed events are reported on
// stderr and skipped, so a site that cannot be indexed leaves a palette that
// opens and accepts queries but finds nothing.
func (c *PaletteCmd) Run(deps *Dependencies) error {
	builder, err := selectBuilder(deps, c.Offline)
	if err != nil {
		return err
	}

	idx := indexer.NewIndex(builder,
		indexer.WithBuildDelay(c.Delay),
		indexer.WithIndexLogger(deps.Logger),
	)
	defer idx.Close()
	idx.Start(deps.Ctx)

	navigator := deps.Navigator
	if navigator == nil {
		navigator = &routePrinter{w: deps.Stdout}
	}
	ctrl := palette.NewController(idx, navigator)

	scanner := bufio.NewScanner(deps.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		// A failed build or navigation leaves the palette usable; only
		// cancellation ends the session.
		if err := applyEvent(deps, idx, ctrl, line); err != nil {
			if ctxErr := deps.Ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", line, describeError(err))
			continue
		}
		fmt.Fprint(deps.Stdout, ctrl.View().String())
	}
	return scanner.Err()
}

func applyEvent(deps *Dependencies, idx *indexer.Index, ctrl *palette.Controller, line string) error {
	name, arg, _ := strings.Cut(line, " ")

	switch name {
	case "open":
		ctrl.Open()
	case "close":
		ctrl.Close()
	case "toggle":
		ctrl.Toggle()
	case "outside":
		ctrl.ClickOutside()
	case "type":
		ctrl.SetQuery(arg)
	case "down":
		ctrl.MoveDown()
	case "up":
		ctrl.MoveUp()
	case "enter":
		_, err := ctrl.Enter(deps.Ctx)
		return err
	case "escape":
		_, err := ctrl.HandleKey(deps.Ctx, palette.Key{Name: palette.KeyEscape})
		return err
	case "hover", "click":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 1 {
			return navsearch.Errorf(navsearch.EINVALID, "%s needs a result number", name)
		}
		if name == "hover" {
			ctrl.Hover(n - 1)
			return nil
		}
		_, err = ctrl.Click(deps.Ctx, n-1)
		return err
	case "key":
		key, err := ParseKey(arg)
		if err != nil {
			return err
		}
		_, err = ctrl.HandleKey(deps.Ctx, key)
		return err
	case "wait":
		if err := idx.Build(deps.Ctx); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "index %s: %d entries\n", idx.Status(), len(idx.Entries()))
	case "view":
	default:
		return navsearch.Errorf(navsearch.EINVALID, "unknown event %q", name)
	}
	return nil
}

// ParseKey parses a key combination such as "meta+k", "ctrl+K" or
// "ArrowDown". Modifier names are case-insensitive.
func ParseKey(s string) (palette.Key, error) {
	var key palette.Key
	parts := strings.Split(strings.TrimSpace(s), "+")
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "meta", "cmd":
			key.Meta = true
		case "ctrl":
			key.Ctrl = true
		default:
			return palette.Key{}, navsearch.Errorf(navsearch.EINVALID, "unknown modifier %q", mod)
		}
	}
	key.Name = parts[len(parts)-1]
	if key.Name == "" {
		return palette.Key{}, navsearch.Errorf(navsearch.EINVALID, "missing key in %q", s)
	}
	return key, nil
}
