package feed

import (
	"context"
	"io"
	"net/http"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/log"
	"github.com/urandom/feedkeeper/pool"
)

const maxBodySize = 32 << 20

// Response is a downloaded, fully read http response.
type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Data       []byte
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Downloader fetches urls through a response cache shared by every feed
// lookup.
type Downloader struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
	log       log.Log
}

func NewDownloader(client *http.Client, finder config.Finder, download config.Download, log log.Log) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}

	return &Downloader{
		client:    client,
		cache:     cache.New(finder.Converted.CacheTTL, finder.Converted.CacheCleanup),
		userAgent: download.UserAgent,
		log:       log,
	}
}

// Get returns the cached response for the url, downloading it if needed.
func (d *Downloader) Get(ctx context.Context, url string) (Response, error) {
	if cached, ok := d.cache.Get(url); ok {
		d.log.Debugf("Using cached response for %s", url)
		return cached.(Response), nil
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, errors.Wrapf(err, "creating request for %s", url)
	}

	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	d.log.Debugf("Downloading %s", url)
	resp, err := d.client.Do(req.WithContext(ctx))
	if err != nil {
		return Response{}, errors.Wrapf(err, "downloading %s", url)
	}
	defer resp.Body.Close()

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodySize)); err != nil {
		return Response{}, errors.Wrapf(err, "reading body of %s", url)
	}

	r := Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       pool.Copy(buf),
	}

	d.Store(url, r)

	return r, nil
}

// Store caches a response obtained elsewhere.
func (d *Downloader) Store(url string, r Response) {
	d.cache.Set(url, r, cache.DefaultExpiration)
}
