package parser

import (
	"encoding/xml"
	"strings"

	"github.com/pkg/errors"
)

type Opml struct {
	Feeds []OpmlFeed
}

type OpmlFeed struct {
	Title string
	URL   string
	Tags  []string
}

type opmlXml struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title string `xml:"title"`
}

type opmlBody struct {
	Outline []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Type     string        `xml:"type,attr,omitempty"`
	Text     string        `xml:"text,attr,omitempty"`
	Title    string        `xml:"title,attr,omitempty"`
	XmlUrl   string        `xml:"xmlUrl,attr,omitempty"`
	HtmlUrl  string        `xml:"htmlUrl,attr,omitempty"`
	Url      string        `xml:"url,attr,omitempty"`
	Category string        `xml:"category,attr,omitempty"`
	Outline  []opmlOutline `xml:"outline"`
}

// ParseOpml extracts the feed subscriptions of an opml document. Nested
// outlines become tags of the feeds they contain.
func ParseOpml(content []byte) (Opml, error) {
	var o opmlXml
	opml := Opml{}

	if err := xml.Unmarshal(content, &o); err != nil {
		return opml, errors.Wrap(err, "decoding opml")
	}

	processOutline(&opml, o.Body.Outline, nil)

	return opml, nil
}

func processOutline(opml *Opml, outlines []opmlOutline, tags []string) {
	for _, outline := range outlines {
		if len(outline.Outline) > 0 {
			processOutline(opml, outline.Outline, append(tags[:len(tags):len(tags)], splitTags(outline.Text)...))
			continue
		}

		feed := OpmlFeed{Title: outline.Text, URL: outline.Url, Tags: []string{}}
		if feed.URL == "" {
			feed.URL = outline.XmlUrl
		}
		if feed.Title == "" {
			feed.Title = outline.Title
		}
		if feed.URL == "" {
			continue
		}

		feed.Tags = append(feed.Tags, tags...)
		feed.Tags = append(feed.Tags, splitTags(outline.Category)...)
		opml.Feeds = append(opml.Feeds, feed)
	}
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return tags
}
