package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"

	"github.com/IshaanNene/DigestGoat/internal/config"
)

// Validate checks that a rule's selector can be compiled. A rule that
// fails here is a structural error and must fail the task; a rule that
// compiles but matches nothing is a normal empty result.
func Validate(rule config.SelectorRule) error {
	switch rule.Type {
	case "xpath":
		_, err := xpath.Compile(rule.Selector)
		return err
	default: // css
		_, err := cascadia.ParseGroup(rule.Selector)
		return err
	}
}

// Each invokes fn for every match of rule in the document, in document
// order.
func Each(doc *goquery.Document, rule config.SelectorRule, fn func(*goquery.Selection)) {
	if rule.Type == "xpath" {
		for _, node := range doc.Nodes {
			matches, err := htmlquery.QueryAll(node, rule.Selector)
			if err != nil {
				return
			}
			for _, m := range matches {
				fn(goquery.NewDocumentFromNode(m).Selection)
			}
		}
		return
	}

	doc.Find(rule.Selector).Each(func(_ int, sel *goquery.Selection) {
		fn(sel)
	})
}

// Value extracts the first match of rule scoped under sel, honoring the
// rule's Attribute ("" or "text" for trimmed text, otherwise the named
// attribute). The second return is false when nothing matched.
func Value(sel *goquery.Selection, rule config.SelectorRule) (string, bool) {
	if rule.Type == "xpath" {
		for _, node := range sel.Nodes {
			match, err := htmlquery.Query(node, rule.Selector)
			if err != nil || match == nil {
				continue
			}
			switch rule.Attribute {
			case "", "text":
				return strings.TrimSpace(htmlquery.InnerText(match)), true
			default:
				return htmlquery.SelectAttr(match, rule.Attribute), true
			}
		}
		return "", false
	}

	found := sel.Find(rule.Selector).First()
	if found.Length() == 0 {
		return "", false
	}
	switch rule.Attribute {
	case "", "text":
		return strings.TrimSpace(found.Text()), true
	default:
		return found.Attr(rule.Attribute)
	}
}

// Digits filters a mixed text fragment down to its digit characters and
// parses the result, for metrics rendered like "1,234 stars". Returns 0
// when no digits are present or the run is too long to represent.
func Digits(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
