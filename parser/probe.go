package parser

import (
	"bytes"
)

const htmlProbeLength = 8 * 1024

var htmlMarkers = [][]byte{[]byte("<html"), []byte("<body"), []byte("<!doctype html")}

// IsProbablyHTML reports whether the start of data looks like an html
// document.
func IsProbablyHTML(data []byte) bool {
	if len(data) > htmlProbeLength {
		data = data[:htmlProbeLength]
	}

	lower := bytes.ToLower(data)
	for _, m := range htmlMarkers {
		if bytes.Contains(lower, m) {
			return true
		}
	}

	return false
}

var imageSignatures = [][]byte{
	{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
	{0xff, 0xd8, 0xff},
	[]byte("GIF87a"),
	[]byte("GIF89a"),
}

// IsImage reports whether data starts with a png, jpeg, gif or webp
// signature.
func IsImage(data []byte) bool {
	for _, sig := range imageSignatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}

	return len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP"))
}
