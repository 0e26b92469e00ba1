package feed

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

var bodyLinkTokens = []string{"feed", "xml", "rss", "atom", "json"}

// htmlCandidates extracts the feed candidates of an html page. Alternate
// links in the head come first, followed by body anchors that look like
// feed links.
func htmlCandidates(pageURL string, data []byte) (Candidates, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing html of %s", pageURL)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing page url %s", pageURL)
	}

	if href, ok := doc.Find("head base[href]").First().Attr("href"); ok {
		if u, err := base.Parse(strings.TrimSpace(href)); err == nil {
			base = u
		}
	}

	candidates := Candidates{}
	order := 0

	doc.Find("head link[rel]").Each(func(_ int, s *goquery.Selection) {
		if !hasToken(s.AttrOr("rel", ""), "alternate") || !isFeedType(s.AttrOr("type", "")) {
			return
		}

		link, ok := resolveLink(base, s.AttrOr("href", ""))
		if !ok {
			return
		}

		order++
		candidates.Add(Candidate{
			Title:      strings.TrimSpace(s.AttrOr("title", "")),
			URL:        link,
			Source:     HTMLHead,
			OrderFound: order,
		})
	})

	doc.Find("body a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if !looksLikeFeedLink(href) {
			return
		}

		link, ok := resolveLink(base, href)
		if !ok {
			return
		}

		title := strings.TrimSpace(s.AttrOr("title", ""))
		if title == "" {
			title = strings.TrimSpace(s.Text())
		}

		order++
		candidates.Add(Candidate{
			Title:      title,
			URL:        link,
			Source:     HTMLLink,
			OrderFound: order,
		})
	})

	return candidates, nil
}

func isFeedType(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.IndexByte(t, ';'); i != -1 {
		t = strings.TrimSpace(t[:i])
	}

	return strings.HasSuffix(t, "/rss+xml") || strings.HasSuffix(t, "/atom+xml") || strings.HasSuffix(t, "/json") ||
		strings.HasSuffix(t, "/feed+json")
}

// looksLikeFeedLink checks a body href for one of the feed tokens, ignoring
// buzzfeed urls.
func looksLikeFeedLink(href string) bool {
	href = strings.ReplaceAll(strings.ToLower(href), "buzzfeed", "_")

	for _, token := range bodyLinkTokens {
		if strings.Contains(href, token) {
			return true
		}
	}

	return false
}

func hasToken(attr, token string) bool {
	for _, f := range strings.Fields(strings.ToLower(attr)) {
		if f == token {
			return true
		}
	}

	return false
}

func resolveLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}

	u, err := base.Parse(href)
	if err != nil {
		return "", false
	}

	if u.Scheme == "feed" {
		// feed://example.com/rss and feed:https://example.com/rss
		if u.Opaque != "" {
			if inner, err := url.Parse(u.Opaque); err == nil && inner.IsAbs() {
				u = inner
			}
		} else {
			u.Scheme = "http"
		}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	u.Fragment = ""

	return u.String(), true
}
