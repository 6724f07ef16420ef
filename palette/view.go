package palette

import (
	"fmt"
	"strings"

	"github.com/fwojciec/navsearch"
)

// NoResultsMessage is shown for a non-blank query without results.
const NoResultsMessage = "No results found."

// Row is one rendered result.
type Row struct {
	Title       string
	SubSection  bool
	Snippet     string
	ContextPath string
	Route       string
	Selected    bool
}

// View is the render model of the palette.
type View struct {
	Open    bool
	Query   string
	Rows    []Row
	Message string
}

// View returns the render model for the current state.
func (c *Controller) View() View {
	v := View{Open: c.state.Open, Query: c.state.Query}
	if !v.Open {
		return v
	}

	if len(c.state.Results) == 0 {
		if strings.TrimSpace(c.state.Query) != "" {
			v.Message = NoResultsMessage
		}
		return v
	}

	v.Rows = make([]Row, len(c.state.Results))
	for i := range c.state.Results {
		e := &c.state.Results[i]
		v.Rows[i] = Row{
			Title:       e.Title,
			SubSection:  e.IsSubSection,
			Snippet:     navsearch.Snippet(e.Content, c.state.Query),
			ContextPath: navsearch.ContextPath(e),
			Route:       e.Route().Hash(),
			Selected:    i == c.state.Selected,
		}
	}
	return v
}

// String renders the view as plain text, one result per block with the
// selected row marked by ">".
func (v View) String() string {
	if !v.Open {
		return "[closed]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "search: %s\n", v.Query)
	if v.Message != "" {
		fmt.Fprintf(&b, "  %s\n", v.Message)
	}
	for _, r := range v.Rows {
		marker := " "
		if r.Selected {
			marker = ">"
		}
		title := r.Title
		if r.SubSection {
			title = "# " + title
		}
		fmt.Fprintf(&b, "%s %s  %s\n", marker, title, r.Route)
		if r.Snippet != "" {
			fmt.Fprintf(&b, "    %s\n", r.Snippet)
		}
		if r.ContextPath != "" {
			fmt.Fprintf(&b, "    %s\n", r.ContextPath)
		}
	}
	return b.String()
}
