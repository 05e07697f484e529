package docmeta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// articleTitleMetaKeys is probed, in order, against every meta element's
// name/property/itemprop attribute (§6).
var articleTitleMetaKeys = []string{
	"og:title", "twitter:title", "dc:title", "dcterm:title",
	"weibo:article:title", "weibo:webpage:title",
}

var bylineMetaKeys = []string{
	"author", "dc:creator", "dcterm:creator", "og:article:author", "article:author", "byl",
}

var descriptionMetaKeys = []string{
	"description", "dc:description", "dcterm:description", "og:description",
	"weibo:article:description", "weibo:webpage:description", "twitter:description",
}

var siteNameMetaKeys = []string{"og:site_name", "application-name"}

var publishedTimeMetaKeys = []string{"article:published_time", "datePublished"}

// Extract walks doc (a parsed document, or a fragment with a meta/head
// section reachable from it) and gathers the §6 Metadata bundle. Every
// field is a first-match-in-document-order lookup; Extract does no
// scoring and never touches the content tree the engine mutates.
func Extract(doc *html.Node) Metadata {
	q := goquery.NewDocumentFromNode(doc)

	titleTagText := strings.TrimSpace(q.Find("title").First().Text())
	metaTitle := firstMetaMatch(q, articleTitleMetaKeys)

	articleTitle := metaTitle
	if articleTitle == "" {
		articleTitle = singleElementText(q, "h1")
	}
	if articleTitle == "" {
		articleTitle = singleElementText(q, "h2")
	}

	pageTitle := titleTagText
	if pageTitle == "" {
		pageTitle = metaTitle
	}
	if pageTitle == "" {
		pageTitle = articleTitle
	}

	// §6: "If page_title is absent but article_title is present, copy;
	// and vice versa."
	if pageTitle == "" && articleTitle != "" {
		pageTitle = articleTitle
	}
	if articleTitle == "" && pageTitle != "" {
		articleTitle = pageTitle
	}

	byline := firstMetaMatch(q, bylineMetaKeys)

	description := firstMetaMatch(q, descriptionMetaKeys)
	if description == "" {
		description = strings.TrimSpace(q.Find("p").First().Text())
	}

	siteName := firstMetaMatch(q, siteNameMetaKeys)
	publishedTime := firstMetaMatch(q, publishedTimeMetaKeys)

	return NewMetadata(pageTitle, articleTitle, byline, description, siteName, publishedTime)
}

// firstMetaMatch scans meta elements in document order. For each, it
// checks the name attribute against keys, then property, then itemprop
// (§6's probe order), and returns the content of the first element where
// any of the three matches.
func firstMetaMatch(q *goquery.Document, keys []string) string {
	var found string
	q.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		key, ok := matchedKey(s, "name", keys)
		if !ok {
			key, ok = matchedKey(s, "property", keys)
		}
		if !ok {
			key, ok = matchedKey(s, "itemprop", keys)
		}
		if !ok {
			return true
		}
		_ = key
		content, exists := s.Attr("content")
		if !exists {
			return true
		}
		found = strings.TrimSpace(content)
		return false
	})
	return found
}

func matchedKey(s *goquery.Selection, attrName string, keys []string) (string, bool) {
	val, exists := s.Attr(attrName)
	if !exists {
		return "", false
	}
	for _, k := range keys {
		if strings.EqualFold(val, k) {
			return k, true
		}
	}
	return "", false
}

// singleElementText returns the text of tag's sole occurrence in doc, or
// "" if there are zero or more than one (§6's "none if multiple").
func singleElementText(q *goquery.Document, tag string) string {
	sel := q.Find(tag)
	if sel.Length() != 1 {
		return ""
	}
	return strings.TrimSpace(sel.First().Text())
}
