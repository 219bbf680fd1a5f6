package extract

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

const (
	// bodyStartMinLen is the minimum trimmed length for a line to mark
	// where document body text begins.
	bodyStartMinLen = 100

	// bodyKeepMinLen is the minimum trimmed length for a line to be
	// kept once the body has started.
	bodyKeepMinLen = 40
)

// boilerplateKeywords mark affiliation-block lines in scraped papers.
var boilerplateKeywords = []string{
	"university",
	"lab",
	"department",
	"institute",
	"corresponding author",
}

// nbspArtifact is the mis-decoded non-breaking space that scraped HTML
// leaves behind in extracted text.
const nbspArtifact = "Â"

// BodyText returns the cleaned line-oriented body text of a document,
// skipping leading boilerplate (titles, author blocks, affiliations).
//
// The scan looks for the first long, punctuated, affiliation-free line
// and treats it as the start of the body. When no line qualifies the
// whole text is used; the filter still applies line by line. The
// thresholds and keyword list are empirically tuned — keep them stable.
func BodyText(markup string) string {
	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	body := htmlquery.FindOne(doc, "//body")
	if body == nil {
		return ""
	}

	var parts []string
	collectText(body, &parts)
	lines := strings.Split(strings.Join(parts, "\n"), "\n")

	start := 0
	for i, line := range lines {
		clean := strings.TrimSpace(line)
		if len(clean) < bodyStartMinLen {
			continue
		}
		if validBodyLine(clean, bodyStartMinLen) {
			start = i
			break
		}
	}

	var kept []string
	for _, line := range lines[start:] {
		clean := strings.TrimSpace(line)
		if len(clean) < bodyKeepMinLen || !validBodyLine(clean, bodyKeepMinLen) {
			continue
		}
		kept = append(kept, strings.ReplaceAll(clean, nbspArtifact, " "))
	}

	return strings.Join(kept, "\n")
}

// validBodyLine reports whether a trimmed line looks like body prose
// rather than boilerplate. Lines with an '@' (author emails), an
// affiliation keyword, too little length, or no sentence punctuation
// are rejected.
func validBodyLine(line string, minLen int) bool {
	if strings.ContainsRune(line, '@') {
		return false
	}

	lower := strings.ToLower(line)
	for _, kw := range boilerplateKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	if len(line) < minLen {
		return false
	}

	return strings.ContainsRune(line, '.')
}

// collectText gathers text nodes in document order.
func collectText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		*out = append(*out, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}

// StripHTML flattens a markup fragment to its concatenated text.
func StripHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var parts []string
	collectText(doc, &parts)
	return strings.Join(parts, "")
}
