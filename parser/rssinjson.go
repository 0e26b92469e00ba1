package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type jsonObject = map[string]interface{}

// parseRSSInJSON decodes the rss-in-json format, a literal translation of
// an rss document into json objects. Real feeds are lax about where the
// items live, so several locations are tried.
func parseRSSInJSON(data []byte) (Feed, error) {
	var root jsonObject
	if err := json.Unmarshal(data, &root); err != nil {
		return Feed{}, errors.Wrap(err, "decoding rss in json")
	}

	rss, ok := root["rss"].(jsonObject)
	if !ok {
		return Feed{}, errors.New("rss in json: no rss object")
	}

	channel, ok := rss["channel"].(jsonObject)
	if !ok {
		return Feed{}, errors.New("rss in json: no channel object")
	}

	var items []interface{}
	for _, candidate := range []interface{}{channel["item"], root["item"], channel["items"], root["items"]} {
		if list, ok := candidate.([]interface{}); ok {
			items = list
			break
		}
	}

	if items == nil {
		return Feed{}, errors.New("rss in json: no items")
	}

	feed := Feed{
		Type:     RSSInJSON,
		Title:    stringValue(channel, "title"),
		SiteLink: stringValue(channel, "link"),
	}

	for _, raw := range items {
		obj, ok := raw.(jsonObject)
		if !ok {
			continue
		}

		if item, ok := rssInJSONItem(obj); ok {
			feed.Items = append(feed.Items, item)
		}
	}

	return feed, nil
}

func rssInJSONItem(obj jsonObject) (Item, bool) {
	item := Item{
		UniqueID:    stringValue(obj, "guid"),
		ExternalURL: stringValue(obj, "link"),
		Title:       stringValue(obj, "title"),
	}

	description := stringValue(obj, "description")
	if strings.Contains(description, "<") {
		item.ContentHTML = description
	} else {
		item.ContentText = description
	}

	if description == "" && item.Title == "" {
		return Item{}, false
	}

	item.DatePublished = parseDate(nil, stringValue(obj, "pubDate"))

	if email := stringValue(obj, "author"); email != "" {
		item.Authors = []Author{{Email: email}}
	}

	if enclosure, ok := obj["enclosure"].(jsonObject); ok {
		if u := stringValue(enclosure, "url"); u != "" {
			a := Attachment{URL: u, MimeType: stringValue(enclosure, "type")}
			switch l := enclosure["length"].(type) {
			case float64:
				a.Size = int64(l)
			case string:
				a.Size, _ = strconv.ParseInt(l, 10, 64)
			}
			item.Attachments = []Attachment{a}
		}
	}

	return item, true
}

func stringValue(obj jsonObject, key string) string {
	s, _ := obj[key].(string)
	return strings.TrimSpace(s)
}
