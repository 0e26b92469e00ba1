package feed

import (
	"os"
	"strings"

	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/log"
)

var logger = log.WithStd(os.Stderr, "testing", 0)

func finderConfig() config.Finder {
	cfg := config.Finder{CacheTTL: "1m", CacheCleanup: "5m"}
	cfg.Convert()

	return cfg
}

const rssFeed = `<?xml version="1.0"?>
<rss version="2.0">
	<channel>
		<title>Liftoff News</title>
		<link>http://liftoff.msfc.nasa.gov/</link>
		<description>Liftoff to Space Exploration.</description>
		<item>
			<title>Star City</title>
			<link>http://liftoff.msfc.nasa.gov/news/2003/news-starcity.asp</link>
			<description>How do Americans get ready to work with Russians aboard the &lt;a href="/iss"&gt;ISS&lt;/a&gt;?</description>
			<pubDate>Tue, 03 Jun 2003 09:39:21 GMT</pubDate>
			<guid>http://liftoff.msfc.nasa.gov/2003/06/03.html#item573</guid>
		</item>
		<item>
			<description>Sky watchers in Europe will experience a partial eclipse of the Sun on Saturday.</description>
			<pubDate>Fri, 30 May 2003 11:06:42 GMT</pubDate>
			<guid>http://liftoff.msfc.nasa.gov/2003/05/30.html#item572</guid>
		</item>
	</channel>
</rss>
`

func htmlPage(head, body string) string {
	return `<!DOCTYPE html>
<html>
<head>
	<title>Example</title>
	` + head + `
</head>
<body>
	` + body + `
	<p>` + strings.Repeat("Lorem ipsum dolor sit amet. ", 10) + `</p>
</body>
</html>`
}
