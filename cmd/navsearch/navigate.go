package main

import (
	"fmt"

	"github.com/fwojciec/navsearch"
)

// Run executes the navigate command.
func (c *NavigateCmd) Run(deps *Dependencies) error {
	if deps.Navigator == nil {
		fmt.Fprintln(deps.Stderr, "error: set --base-url or --dir to choose a documentation site")
		return navsearch.Errorf(navsearch.EINVALID, "no documentation site configured")
	}

	if err := deps.Navigator.Navigate(deps.Ctx, navsearch.ParseRoute(c.Route)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}
	return nil
}
