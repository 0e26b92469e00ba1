package download

import (
	"net/http"
)

// ConditionalGetInfo holds the validators of a previous response.
type ConditionalGetInfo struct {
	ETag         string
	LastModified string
}

// ConditionalGetInfoFrom extracts the validators from a response.
func ConditionalGetInfoFrom(resp *http.Response) ConditionalGetInfo {
	if resp == nil {
		return ConditionalGetInfo{}
	}

	return ConditionalGetInfo{
		ETag:         resp.Header.Get("ETag"),
		LastModified: resp.Header.Get("Last-Modified"),
	}
}

// IsEmpty reports whether no validator is known.
func (c ConditionalGetInfo) IsEmpty() bool {
	return c.ETag == "" && c.LastModified == ""
}

// AddRequestHeaders turns the request into a conditional one.
func (c ConditionalGetInfo) AddRequestHeaders(req *http.Request) {
	if c.ETag != "" {
		req.Header.Set("If-None-Match", c.ETag)
	}

	if c.LastModified != "" {
		req.Header.Set("If-Modified-Since", c.LastModified)
	}
}
