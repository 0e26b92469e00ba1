package content_test

import (
	"testing"

	"github.com/urandom/feedkeeper/content"
)

func TestFeed_Validate(t *testing.T) {
	tests := []struct {
		name    string
		feed    content.Feed
		wantErr bool
	}{
		{"valid", content.NewFeed("http://sugr.org/feed", "sugr"), false},
		{"link not absolute", content.Feed{ID: "sugr.org", Link: "sugr.org"}, true},
		{"no link", content.Feed{ID: "http://sugr.org"}, true},
		{"no id", content.Feed{Link: "http://sugr.org"}, true},
		{"nothing", content.Feed{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.feed.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Feed.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
