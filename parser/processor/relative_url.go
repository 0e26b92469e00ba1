package processor

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/log"
)

// AbsoluteURL resolves relative src and href attributes of article content
// against the article link.
type AbsoluteURL struct {
	log log.Log
}

func NewAbsoluteURL(log log.Log) AbsoluteURL {
	return AbsoluteURL{log: log}
}

func (p AbsoluteURL) Process(articles []content.Article) []content.Article {
	for i := range articles {
		base, err := url.Parse(articles[i].Link)
		if err != nil || !base.IsAbs() || articles[i].Content == "" {
			continue
		}

		d, err := parseFragment(articles[i].Content)
		if err != nil {
			p.log.Debugf("Error parsing content of article %s: %v", articles[i].ID, err)
			continue
		}

		if !absolutizeLinks(d, base) {
			continue
		}

		if body, err := renderFragment(d); err == nil {
			articles[i].Content = body
		}
	}

	return articles
}

func absolutizeLinks(d *goquery.Document, base *url.URL) bool {
	changed := false

	for _, attr := range []string{"src", "href"} {
		d.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			val, _ := s.Attr(attr)

			u, err := url.Parse(val)
			if err != nil || u.IsAbs() || val == "" || val[0] == '#' {
				return
			}

			s.SetAttr(attr, base.ResolveReference(u).String())
			changed = true
		})
	}

	return changed
}
