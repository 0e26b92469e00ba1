package processor

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/log"
	"golang.org/x/net/html"
)

// Cleanup removes scripts, comments, event handler attributes and
// javascript urls from article content.
type Cleanup struct {
	log log.Log
}

func NewCleanup(log log.Log) Cleanup {
	return Cleanup{log: log}
}

func (p Cleanup) Process(articles []content.Article) []content.Article {
	for i := range articles {
		body := strings.TrimSpace(articles[i].Content)
		if body == "" {
			continue
		}

		d, err := parseFragment(body)
		if err != nil {
			p.log.Debugf("Error parsing content of article %s: %v", articles[i].ID, err)
			continue
		}

		if !cleanupNodes(d) {
			continue
		}

		if body, err = renderFragment(d); err == nil {
			articles[i].Content = body
		}
	}

	return articles
}

func cleanupNodes(d *goquery.Document) bool {
	changed := false

	scripts := d.Find("script")
	if scripts.Length() > 0 {
		scripts.Remove()
		changed = true
	}

	for _, root := range d.Nodes {
		if removeComments(root) {
			changed = true
		}
	}

	d.Find("*").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)

		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if strings.HasPrefix(strings.ToLower(a.Key), "on") || isJavascriptURL(a.Val) {
				changed = true
				continue
			}

			attrs = append(attrs, a)
		}
		n.Attr = attrs
	})

	return changed
}

func removeComments(n *html.Node) bool {
	changed := false

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
			changed = true
		} else if removeComments(c) {
			changed = true
		}
		c = next
	}

	return changed
}

func isJavascriptURL(val string) bool {
	val = strings.TrimLeftFunc(val, unicode.IsSpace)
	return strings.HasPrefix(strings.ToLower(val), "javascript:")
}
