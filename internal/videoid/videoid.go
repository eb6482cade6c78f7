// Package videoid extracts YouTube video identifiers from URLs.
package videoid

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoVideoID is returned when a URL does not name a YouTube video.
var ErrNoVideoID = errors.New("no YouTube video ID in URL")

var videoIDRe = regexp.MustCompile(`(?:https?://)?(?:www\.|m\.)?(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([^&\n?#/]+)`)

// Extract returns the video ID from a watch, embed, shorts or youtu.be URL.
func Extract(url string) (string, error) {
	m := videoIDRe.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil {
		return "", ErrNoVideoID
	}
	return m[1], nil
}

// WatchURL returns the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
