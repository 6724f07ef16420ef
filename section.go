package navsearch

import (
	"regexp"
	"strings"
)

var (
	headingRe     = regexp.MustCompile(`^#{1,3}\s`)
	headingMarkRe = regexp.MustCompile(`^#+\s+`)
	slugStripRe   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`)

	markupReplacer = strings.NewReplacer("`", "", "*", "", "_", "", "-", "")
)

// SplitSections parses a markdown page into index entries.
//
// The first entry always represents the page itself (IsHeader, empty anchor).
// Every H1-H3 heading then opens a section that becomes one entry with the
// heading slug as its anchor. Text before the first heading belongs to the
// page entry. A section whose heading repeats the page title and which has no
// content is dropped, so a document starting with its own title does not
// produce a duplicate entry.
//
// Anchors are not de-duplicated: two headings with the same text share a slug.
func SplitSections(markdown string, ref PageRef) []IndexEntry {
	page := newEntry(ref, ref.Title, "")
	page.IsHeader = true
	entries := []IndexEntry{page}

	var (
		header   = ref.Title
		anchor   = ""
		content  []string
		preamble = true
	)

	flush := func() {
		defer func() { content = nil }()

		if preamble {
			entries[0].Content = NormalizeContent(strings.Join(content, " "))
			return
		}
		if len(content) == 0 && header == ref.Title {
			return
		}
		text := NormalizeContent(strings.Join(content, " "))
		if text == "" && header == "" {
			return
		}
		e := newEntry(ref, header, anchor)
		e.Content = text
		e.IsSubSection = anchor != ""
		entries = append(entries, e)
	}

	for _, line := range strings.Split(markdown, "\n") {
		if !headingRe.MatchString(line) {
			content = append(content, line)
			continue
		}

		flush()
		preamble = false

		header = strings.TrimSpace(headingMarkRe.ReplaceAllString(line, ""))
		anchor = Slugify(header)
	}
	flush()

	return entries
}

func newEntry(ref PageRef, title, anchor string) IndexEntry {
	return IndexEntry{
		Type:       EntryPage,
		ID:         ref.ID,
		Title:      title,
		Category:   ref.Category,
		Section:    ref.Section,
		Page:       ref.Page,
		URL:        ref.ID,
		Anchor:     anchor,
		TitleLower: strings.ToLower(title),
	}
}

// Slugify creates the anchor for a heading: lowercase, characters other than
// word characters, whitespace and hyphens removed, whitespace runs replaced
// by a single hyphen.
func Slugify(heading string) string {
	s := strings.ToLower(heading)
	s = slugStripRe.ReplaceAllString(s, "")
	return whitespaceRe.ReplaceAllString(s, "-")
}

// NormalizeContent reduces markdown to searchable plain text: links are
// replaced by their text, emphasis and code markers are removed, whitespace
// is collapsed and the result is lowercased.
func NormalizeContent(markdown string) string {
	s := linkRe.ReplaceAllString(markdown, "${1}")
	s = markupReplacer.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
