// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minUsefulLength is the shortest extracted text worth keeping. Anything
// shorter is noise (cookie banners, nav fragments, empty meta tags).
const minUsefulLength = 50

// A pageStrategy extracts candidate abstract text from a parsed page.
// Strategies are tried in order of reliability and the first useful result
// wins.
type pageStrategy struct {
	name    string
	extract func(doc *goquery.Document) string
}

var pageStrategies = []pageStrategy{
	{"arxiv-abstract", extractArxivAbstract},
	{"meta-description", extractMetaDescription},
	{"semantic-class", extractSemanticClass},
	{"first-paragraph", extractFirstParagraph},
}

var arxivLabelRe = regexp.MustCompile(`(?i)^abstract[:.\s]*`)

// extractArxivAbstract reads the abstract blockquote on an arXiv abs page.
func extractArxivAbstract(doc *goquery.Document) string {
	text := strings.TrimSpace(doc.Find("blockquote.abstract").First().Text())
	return arxivLabelRe.ReplaceAllString(text, "")
}

// extractMetaDescription checks the standard description meta tags, most
// specific first.
func extractMetaDescription(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="description"]`,
		`meta[property="og:description"]`,
		`meta[name="twitter:description"]`,
	}
	for _, sel := range selectors {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if text := strings.TrimSpace(content); text != "" {
				return text
			}
		}
	}
	return ""
}

// semanticClasses are class names publishers commonly use for a summary
// block, in rough order of specificity.
var semanticClasses = []string{
	"abstract", "paper-abstract", "summary", "entry-summary",
	"article-summary", "post-excerpt", "description",
}

func extractSemanticClass(doc *goquery.Document) string {
	for _, class := range semanticClasses {
		for _, tag := range []string{"div", "p", "section", "span", "blockquote"} {
			text := strings.TrimSpace(doc.Find(tag + "." + class).First().Text())
			if len(text) >= minUsefulLength {
				return text
			}
		}
	}
	return ""
}

// extractFirstParagraph falls back to the first substantial paragraph in the
// page's main content area.
func extractFirstParagraph(doc *goquery.Document) string {
	for _, scope := range []string{"article p", "main p", "body p"} {
		var found string
		doc.Find(scope).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.Text())
			if len(text) >= 80 {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// extractFromPage runs the strategy chain over a parsed page and returns the
// first useful cleaned result, or "" if no strategy produced one.
func extractFromPage(doc *goquery.Document) string {
	for _, strat := range pageStrategies {
		text := Clean(strat.extract(doc))
		if len(text) >= minUsefulLength {
			return text
		}
	}
	return ""
}
