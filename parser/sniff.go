package parser

import (
	"bytes"

	"github.com/ssor/bom"
)

// Type is the syndication format of a byte buffer, as far as it can be
// told without a full parse.
type Type int

const (
	// Unknown means more data is needed before deciding.
	Unknown Type = iota
	// NotAFeed means the complete buffer matched no known format.
	NotAFeed
	RSS
	Atom
	JSONFeed
	RSSInJSON
)

// MinSniffLength is the number of bytes below which Sniff always returns
// Unknown.
const MinSniffLength = 128

var typeNames = map[Type]string{
	Unknown:   "unknown",
	NotAFeed:  "not a feed",
	RSS:       "rss",
	Atom:      "atom",
	JSONFeed:  "json feed",
	RSSInJSON: "rss in json",
}

func (t Type) String() string {
	return typeNames[t]
}

// IsFeed reports whether t is one of the feed formats.
func (t Type) IsFeed() bool {
	return t >= RSS
}

var (
	jsonFeedMarker        = []byte("://jsonfeed.org/version/")
	jsonFeedEscapedMarker = []byte(`:\/\/jsonfeed.org\/version\/`)

	rssInJSONMarkers = [][]byte{[]byte(`"rss"`), []byte(`"channel"`), []byte(`"item`)}

	rssMarker     = []byte("<rss")
	rdfMarker     = []byte("<rdf:RDF")
	channelMarker = []byte("<channel>")
	pubDateMarker = []byte("<pubDate>")
	atomMarker    = []byte("<feed")
)

// Sniff classifies data by looking for format markers. When partial is
// true, data is the prefix of a download that is still in progress, and
// Unknown is returned instead of NotAFeed if nothing has matched yet.
func Sniff(data []byte, partial bool) Type {
	if len(data) < MinSniffLength {
		return Unknown
	}

	data = bom.CleanBom(data)

	if isJSON(data) {
		return sniffJSON(data, partial)
	}

	switch {
	case bytes.Contains(data, rssMarker), bytes.Contains(data, rdfMarker):
		return RSS
	case bytes.Contains(data, channelMarker) && bytes.Contains(data, pubDateMarker):
		return RSS
	case bytes.Contains(data, atomMarker):
		return Atom
	}

	if partial {
		return Unknown
	}

	return NotAFeed
}

// IsProbablyJSON reports whether data starts like a json object. Such
// buffers are never rejected early: a JSON Feed may carry html content
// before its version marker.
func IsProbablyJSON(data []byte) bool {
	return isJSON(bom.CleanBom(data))
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func sniffJSON(data []byte, partial bool) Type {
	if bytes.Contains(data, jsonFeedMarker) || bytes.Contains(data, jsonFeedEscapedMarker) {
		return JSONFeed
	}

	rssInJSON := true
	for _, m := range rssInJSONMarkers {
		if !bytes.Contains(data, m) {
			rssInJSON = false
			break
		}
	}

	if rssInJSON {
		return RSSInJSON
	}

	// The version of a json feed may appear at the very end.
	if partial {
		return Unknown
	}

	return NotAFeed
}
