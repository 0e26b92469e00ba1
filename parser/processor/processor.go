// Package processor rewrites article content before it is stored.
package processor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/urandom/feedkeeper/content"
)

// Article processors modify the given articles in place and return them.
type Article interface {
	Process([]content.Article) []content.Article
}

// Process runs the articles through every processor in order.
func Process(articles []content.Article, processors ...Article) []content.Article {
	for _, p := range processors {
		articles = p.Process(articles)
	}

	return articles
}

func parseFragment(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// renderFragment returns the html inside the body element that goquery
// wraps every fragment with.
func renderFragment(d *goquery.Document) (string, error) {
	return d.Find("body").Html()
}
