package parser

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	"github.com/ssor/bom"
	"github.com/urandom/feedkeeper/content"
)

var ErrNotAFeed = errors.New("data is not a feed")

type Feed struct {
	Type     Type
	Title    string
	SiteLink string
	FeedLink string
	Items    []Item
}

type Item struct {
	UniqueID      string
	URL           string
	ExternalURL   string
	Title         string
	ContentHTML   string
	ContentText   string
	Summary       string
	DatePublished time.Time
	DateModified  time.Time
	Authors       []Author
	Attachments   []Attachment
}

type Author struct {
	Name  string
	Email string
}

type Attachment struct {
	URL      string
	MimeType string
	Size     int64
}

// Parse turns a complete feed document into a Feed. Every returned item
// has a non-empty UniqueID.
func Parse(feedURL string, data []byte) (Feed, error) {
	data = bom.CleanBom(data)

	t := Sniff(data, false)
	var feed Feed
	var err error

	switch {
	case t == RSSInJSON:
		feed, err = parseRSSInJSON(data)
	case t.IsFeed():
		feed, err = parseWithGofeed(data)
	case len(data) < MinSniffLength:
		// Too short to sniff, a tiny but valid feed is still possible.
		feed, err = parseWithGofeed(data)
		if err != nil {
			err = ErrNotAFeed
		}
	default:
		err = ErrNotAFeed
	}

	if err != nil {
		return Feed{}, errors.WithMessagef(err, "parsing feed %s", feedURL)
	}

	if feed.Type == Unknown {
		feed.Type = t
	}
	if feed.FeedLink == "" {
		feed.FeedLink = feedURL
	}

	items := feed.Items[:0]
	for _, item := range feed.Items {
		if item.UniqueID == "" {
			item.UniqueID = calculateUniqueID(item)
		}

		if item.UniqueID != "" {
			items = append(items, item)
		}
	}
	feed.Items = items

	return feed, nil
}

func parseWithGofeed(data []byte) (Feed, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return Feed{}, errors.Wrap(err, "decoding feed")
	}

	feed := Feed{
		Title:    strings.TrimSpace(parsed.Title),
		SiteLink: parsed.Link,
		FeedLink: parsed.FeedLink,
		Items:    make([]Item, 0, len(parsed.Items)),
	}

	switch parsed.FeedType {
	case "rss":
		feed.Type = RSS
	case "atom":
		feed.Type = Atom
	case "json":
		feed.Type = JSONFeed
	}

	for _, i := range parsed.Items {
		if i == nil {
			continue
		}

		item := Item{
			UniqueID:    strings.TrimSpace(i.GUID),
			URL:         i.Link,
			Title:       strings.TrimSpace(i.Title),
			ContentHTML: i.Content,
			Summary:     i.Description,
		}

		if item.ContentHTML == "" {
			item.ContentHTML, item.Summary = i.Description, ""
		}

		if len(i.Links) > 1 && i.Links[1] != i.Link {
			item.ExternalURL = i.Links[1]
		}

		item.DatePublished = parseDate(i.PublishedParsed, i.Published)
		item.DateModified = parseDate(i.UpdatedParsed, i.Updated)
		if item.DatePublished.IsZero() {
			item.DatePublished = item.DateModified
		}

		for _, p := range i.Authors {
			if p != nil {
				item.Authors = append(item.Authors, Author{Name: p.Name, Email: p.Email})
			}
		}

		for _, e := range i.Enclosures {
			if e == nil || e.URL == "" {
				continue
			}

			a := Attachment{URL: e.URL, MimeType: e.Type}
			fmt.Sscan(e.Length, &a.Size)
			item.Attachments = append(item.Attachments, a)
		}

		feed.Items = append(feed.Items, item)
	}

	return feed, nil
}

func parseDate(parsed *time.Time, raw string) time.Time {
	if parsed != nil {
		return *parsed
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	if t, err := dateparse.ParseAny(raw); err == nil {
		return t
	}

	return time.Time{}
}

// calculateUniqueID derives an id for items without a guid from the
// fields least likely to change between fetches.
func calculateUniqueID(item Item) string {
	var b strings.Builder

	if !item.DatePublished.IsZero() {
		fmt.Fprintf(&b, "%d", item.DatePublished.Unix())
	}
	b.WriteString(item.Title)
	b.WriteString(item.ExternalURL)
	if item.ExternalURL == "" {
		b.WriteString(item.URL)
	}
	if len(item.Authors) > 0 {
		b.WriteString(item.Authors[0].Email)
	}
	if len(item.Attachments) > 0 {
		b.WriteString(item.Attachments[0].URL)
	}

	s := b.String()
	if s == "" {
		s = item.ContentHTML
		if item.ContentText != "" {
			s = item.ContentText
		}
	}

	if s == "" {
		return ""
	}

	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Article converts the item to the stored article of the given feed.
func (i Item) Article(feedID content.FeedID) content.Article {
	link := i.URL
	if link == "" {
		link = i.ExternalURL
	}

	body := i.ContentHTML
	if body == "" {
		body = i.ContentText
	}
	if body == "" {
		body = i.Summary
	}

	return content.Article{
		ID:       content.NewArticleID(feedID, i.UniqueID),
		FeedID:   feedID,
		UniqueID: i.UniqueID,
		Title:    i.Title,
		Link:     link,
		Content:  body,
		Date:     i.DatePublished,
	}
}
